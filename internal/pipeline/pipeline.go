// Package pipeline composes the raw-series-to-dataset transform: calendar
// normalization, feature enrichment, and window slicing. The transform is
// referentially transparent, so callers may run it concurrently for
// independent tickers.
package pipeline

import (
	"FeatureMill/internal/calendar"
	"FeatureMill/internal/features"
	"FeatureMill/internal/model"
	"FeatureMill/internal/window"
)

// BuildDataset turns one ticker's raw series into windowed feature/target
// pairs. The first failure from any stage propagates verbatim; no partial
// dataset is ever returned. Identical inputs always yield identical outputs.
func BuildDataset(raw model.RawSeries, opts Options) (*model.Dataset, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	dense, err := calendar.Normalize(raw, opts.StartDate, opts.EndDate)
	if err != nil {
		return nil, err
	}

	enriched, err := features.Enrich(dense, opts.RollingWindows, opts.ImputationPolicy)
	if err != nil {
		return nil, err
	}

	return window.Slice(enriched, opts.SequenceLength, opts.StepSize)
}
