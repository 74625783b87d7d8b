package features

import "math"

// mean returns the arithmetic mean, or 0 for an empty slice.
func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// stdDev returns the sample standard deviation. With fewer than two values
// there is no spread to measure, so it returns 0.
func stdDev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	sum := 0.0
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

// emaSeries computes a recursive exponential moving average with smoothing
// 2/(period+1), seeded with the first value. Each output depends only on
// values at or before its index.
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// trailing collects vals[max(0, i-size+1) .. i], optionally keeping only
// indexes where keep is true. When masking empties the window it falls back
// to the unmasked values, so the statistic is always defined.
func trailing(vals []float64, keep []bool, i, size int) []float64 {
	lo := i - size + 1
	if lo < 0 {
		lo = 0
	}
	window := vals[lo : i+1]
	if keep == nil {
		return window
	}
	kept := make([]float64, 0, len(window))
	for j := lo; j <= i; j++ {
		if keep[j] {
			kept = append(kept, vals[j])
		}
	}
	if len(kept) == 0 {
		return window
	}
	return kept
}
