package model

import "time"

// Provenance distinguishes real market data from values produced by gap
// repair, so later stages and audits can tell them apart.
type Provenance string

const (
	Observed Provenance = "observed"
	Imputed  Provenance = "imputed"
)

// ImputationPolicy controls which points rolling statistics are computed
// over.
type ImputationPolicy string

const (
	// PolicyAll computes rolling statistics over every point, observed or
	// imputed.
	PolicyAll ImputationPolicy = "all"
	// PolicyObservedOnly restricts rolling statistics to observed points.
	PolicyObservedOnly ImputationPolicy = "observed_only"
)

// DensePoint is one business day of the gap-free series. Features is nil
// until enrichment; afterwards it holds the full per-day feature vector in
// DenseSeries.FeatureNames order.
type DensePoint struct {
	Date       time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
	Provenance Provenance
	Features   []float64
}

// DenseSeries is a gap-free daily series: exactly one point per business day
// in its range. FeatureNames is set by enrichment.
type DenseSeries struct {
	Ticker       string
	Points       []DensePoint
	FeatureNames []string
}

// Len returns the number of business days in the series.
func (s DenseSeries) Len() int { return len(s.Points) }

// ImputedCount returns how many points were produced by gap repair.
func (s DenseSeries) ImputedCount() int {
	n := 0
	for _, p := range s.Points {
		if p.Provenance == Imputed {
			n++
		}
	}
	return n
}
