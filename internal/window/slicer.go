package window

import (
	"fmt"

	"FeatureMill/internal/model"
)

// Slice cuts an enriched dense series into fixed-length lookback windows
// paired with next-day close targets. Window i starts at index i*step, covers
// seqLen consecutive days, and its target is the close at the index right
// after the window. Windows whose target would fall past the end of the
// series are dropped, never padded: padding would fabricate labels.
func Slice(enriched model.DenseSeries, seqLen, step int) (*model.Dataset, error) {
	if seqLen <= 0 {
		return nil, &model.ConfigError{Field: "sequence_length",
			Reason: fmt.Sprintf("must be positive, got %d", seqLen)}
	}
	if step <= 0 {
		return nil, &model.ConfigError{Field: "step_size",
			Reason: fmt.Sprintf("must be positive, got %d", step)}
	}
	n := enriched.Len()
	if seqLen > n {
		return nil, &model.ConfigError{Field: "sequence_length",
			Reason: fmt.Sprintf("%d exceeds series length %d", seqLen, n)}
	}
	if len(enriched.FeatureNames) == 0 {
		return nil, fmt.Errorf("slice: series has not been enriched")
	}

	ds := &model.Dataset{
		Ticker:         enriched.Ticker,
		FeatureNames:   append([]string(nil), enriched.FeatureNames...),
		SequenceLength: seqLen,
		DenseLength:    n,
		ImputedDays:    enriched.ImputedCount(),
	}

	for start := 0; start+seqLen < n; start += step {
		target := start + seqLen // index of the label day
		rows := make([][]float64, seqLen)
		for j := 0; j < seqLen; j++ {
			rows[j] = append([]float64(nil), enriched.Points[start+j].Features...)
		}
		ds.Windows = append(ds.Windows, model.FeatureWindow{
			Start: enriched.Points[start].Date,
			End:   enriched.Points[target-1].Date,
			Rows:  rows,
		})
		ds.Targets = append(ds.Targets, enriched.Points[target].Close)
		ds.TargetDates = append(ds.TargetDates, enriched.Points[target].Date)
	}

	return ds, nil
}
