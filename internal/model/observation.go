package model

import "time"

// RawObservation is a single daily price record as delivered by a market-data
// source. Immutable once read.
type RawObservation struct {
	Date   time.Time // UTC midnight
	Ticker string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// RawSeries holds the raw daily records for one ticker, sorted ascending by
// date. It may contain business-day gaps; sources are not trusted to be
// complete.
type RawSeries struct {
	Ticker       string
	Observations []RawObservation
}

// Len returns the number of raw observations.
func (s RawSeries) Len() int { return len(s.Observations) }

// Day truncates a timestamp to UTC midnight so dates compare exactly.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
