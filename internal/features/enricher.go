package features

import (
	"fmt"
	"sort"

	"FeatureMill/internal/model"
)

// Base feature columns present for every configuration, in vector order.
var baseNames = []string{
	"open", "high", "low", "close", "volume",
	"day_of_week", "day_of_month",
	"daily_return", "price_diff", "volume_change",
}

// FeatureNames returns the column order produced by Enrich for the given
// rolling window sizes.
func FeatureNames(windows []int) []string {
	names := append([]string(nil), baseNames...)
	for _, w := range sortedWindows(windows) {
		names = append(names,
			fmt.Sprintf("sma_%d", w),
			fmt.Sprintf("vol_%d", w),
			fmt.Sprintf("ema_%d", w),
			fmt.Sprintf("volume_sma_%d", w),
		)
	}
	return names
}

// Enrich derives the per-day feature vectors for a dense series: calendar
// features, day-over-day deltas, and trailing statistics for each configured
// window size. The input is not mutated; the result has the same length with
// FeatureNames set.
//
// No feature for day t reads past t. Days with fewer than w prior points get
// their trailing statistics over the prefix available so far rather than a
// back-filled value, which would leak the future.
func Enrich(dense model.DenseSeries, windows []int, policy model.ImputationPolicy) (model.DenseSeries, error) {
	switch policy {
	case model.PolicyAll, model.PolicyObservedOnly:
	default:
		return model.DenseSeries{}, &model.ConfigError{Field: "imputation_policy",
			Reason: fmt.Sprintf("unknown policy %q", policy)}
	}
	for _, w := range windows {
		if w <= 0 {
			return model.DenseSeries{}, &model.ConfigError{Field: "rolling_windows",
				Reason: fmt.Sprintf("window size must be positive, got %d", w)}
		}
	}
	sizes := sortedWindows(windows)

	n := dense.Len()
	closes := make([]float64, n)
	volumes := make([]float64, n)
	var observedMask []bool
	if policy == model.PolicyObservedOnly {
		observedMask = make([]bool, n)
	}
	for i, p := range dense.Points {
		closes[i] = p.Close
		volumes[i] = p.Volume
		if observedMask != nil {
			observedMask[i] = p.Provenance == model.Observed
		}
	}

	// EMA is recursive over the whole series, so it is precomputed per size.
	// The imputation policy applies to windowed statistics only.
	emas := make(map[int][]float64, len(sizes))
	for _, w := range sizes {
		emas[w] = emaSeries(closes, w)
	}

	names := FeatureNames(sizes)
	points := make([]model.DensePoint, n)
	for i, p := range dense.Points {
		vec := make([]float64, 0, len(names))
		vec = append(vec, p.Open, p.High, p.Low, p.Close, p.Volume)
		vec = append(vec, float64(p.Date.Weekday()), float64(p.Date.Day()))
		vec = append(vec, dayOverDay(closes, i, true), dayOverDay(closes, i, false), dayOverDay(volumes, i, true))
		for _, w := range sizes {
			vec = append(vec,
				mean(trailing(closes, observedMask, i, w)),
				stdDev(trailing(closes, observedMask, i, w)),
				emas[w][i],
				mean(trailing(volumes, observedMask, i, w)),
			)
		}
		points[i] = p
		points[i].Features = vec
	}

	return model.DenseSeries{Ticker: dense.Ticker, Points: points, FeatureNames: names}, nil
}

// dayOverDay returns the change from the previous value, relative when
// asPercent is set. The first day, and relative changes off a zero base,
// report 0.
func dayOverDay(vals []float64, i int, asPercent bool) float64 {
	if i == 0 {
		return 0
	}
	diff := vals[i] - vals[i-1]
	if !asPercent {
		return diff
	}
	if vals[i-1] == 0 {
		return 0
	}
	return diff / vals[i-1]
}

// sortedWindows returns the distinct window sizes in ascending order, so the
// column layout is deterministic regardless of config ordering.
func sortedWindows(windows []int) []int {
	seen := make(map[int]bool, len(windows))
	out := make([]int, 0, len(windows))
	for _, w := range windows {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	sort.Ints(out)
	return out
}
