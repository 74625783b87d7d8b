package calendar

import (
	"time"

	"FeatureMill/internal/model"
)

// Normalize repairs calendar gaps in a raw series, producing exactly one
// point per business day in [start, end]:
//
//   - observed days are copied through with Provenance Observed
//   - leading gaps are back-filled with the first observation's values
//   - trailing gaps are forward-filled with the last observation's values
//   - interior gaps, single or multi-day, are linearly interpolated across
//     the whole span, every numeric column proportionally
//
// Leading and trailing fills run independently of interior interpolation, so
// a leading gap abutting an interior gap cannot borrow interpolated values.
// The output is a pure function of the input.
func Normalize(raw model.RawSeries, start, end time.Time) (model.DenseSeries, error) {
	from, to := model.Day(start), model.Day(end)
	if to.Before(from) {
		return model.DenseSeries{}, &model.ConfigError{Field: "date_range", Reason: "end_date before start_date"}
	}

	days := BusinessDays(from, to)
	if len(days) == 0 {
		return model.DenseSeries{}, &model.ConfigError{Field: "date_range", Reason: "range contains no business days"}
	}

	byDate, err := indexObservations(raw, from, to)
	if err != nil {
		return model.DenseSeries{}, err
	}
	if len(byDate) == 0 {
		return model.DenseSeries{}, &model.GapUnrepairableError{Ticker: raw.Ticker, From: from, To: to}
	}

	points := make([]model.DensePoint, len(days))
	observed := make([]bool, len(days))
	for i, d := range days {
		if obs, ok := byDate[d]; ok {
			points[i] = model.DensePoint{
				Date:       d,
				Open:       obs.Open,
				High:       obs.High,
				Low:        obs.Low,
				Close:      obs.Close,
				Volume:     obs.Volume,
				Provenance: model.Observed,
			}
			observed[i] = true
		}
	}

	first, last := observedBounds(observed)

	// Leading gap: back-fill from the first observation.
	for i := 0; i < first; i++ {
		points[i] = fillFrom(points[first], days[i])
	}
	// Trailing gap: forward-fill from the last observation.
	for i := last + 1; i < len(points); i++ {
		points[i] = fillFrom(points[last], days[i])
	}
	// Interior gaps: interpolate between each flanking observed pair.
	prev := first
	for i := first + 1; i <= last; i++ {
		if !observed[i] {
			continue
		}
		if i-prev > 1 {
			interpolateSpan(points, days, prev, i)
		}
		prev = i
	}

	return model.DenseSeries{Ticker: raw.Ticker, Points: points}, nil
}

// indexObservations validates each raw record and maps it by date. Exact
// duplicate records collapse silently; conflicting duplicates are rejected.
func indexObservations(raw model.RawSeries, from, to time.Time) (map[time.Time]model.RawObservation, error) {
	byDate := make(map[time.Time]model.RawObservation, len(raw.Observations))
	for i, obs := range raw.Observations {
		d := model.Day(obs.Date)
		if obs.Ticker != "" && obs.Ticker != raw.Ticker {
			return nil, &model.ValidationError{Ticker: raw.Ticker, Index: i, Date: d,
				Reason: "record belongs to ticker " + obs.Ticker}
		}
		if d.Before(from) || d.After(to) {
			return nil, &model.ValidationError{Ticker: raw.Ticker, Index: i, Date: d,
				Reason: "date outside requested range"}
		}
		if !IsBusinessDay(d) {
			return nil, &model.ValidationError{Ticker: raw.Ticker, Index: i, Date: d,
				Reason: "date falls on a weekend"}
		}
		if dup, ok := byDate[d]; ok {
			if !sameValues(dup, obs) {
				return nil, &model.ValidationError{Ticker: raw.Ticker, Index: i, Date: d,
					Reason: "conflicting duplicate date"}
			}
			continue
		}
		byDate[d] = obs
	}
	return byDate, nil
}

func sameValues(a, b model.RawObservation) bool {
	return a.Open == b.Open && a.High == b.High && a.Low == b.Low &&
		a.Close == b.Close && a.Volume == b.Volume
}

// observedBounds returns the first and last observed indexes. Callers ensure
// at least one index is observed.
func observedBounds(observed []bool) (first, last int) {
	first, last = -1, -1
	for i, ok := range observed {
		if ok {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	return first, last
}

// fillFrom copies src's values onto a new imputed point for date d.
func fillFrom(src model.DensePoint, d time.Time) model.DensePoint {
	return model.DensePoint{
		Date:       d,
		Open:       src.Open,
		High:       src.High,
		Low:        src.Low,
		Close:      src.Close,
		Volume:     src.Volume,
		Provenance: model.Imputed,
	}
}

// interpolateSpan fills points (lo, hi) linearly between the observed points
// at lo and hi.
func interpolateSpan(points []model.DensePoint, days []time.Time, lo, hi int) {
	a, b := points[lo], points[hi]
	span := float64(hi - lo)
	for k := lo + 1; k < hi; k++ {
		frac := float64(k-lo) / span
		points[k] = model.DensePoint{
			Date:       days[k],
			Open:       lerp(a.Open, b.Open, frac),
			High:       lerp(a.High, b.High, frac),
			Low:        lerp(a.Low, b.Low, frac),
			Close:      lerp(a.Close, b.Close, frac),
			Volume:     lerp(a.Volume, b.Volume, frac),
			Provenance: model.Imputed,
		}
	}
}

func lerp(a, b, frac float64) float64 {
	return a + (b-a)*frac
}
