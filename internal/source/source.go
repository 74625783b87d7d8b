package source

import (
	"time"

	"FeatureMill/internal/calendar"
	"FeatureMill/internal/model"
)

// Source supplies raw daily observations for a ticker over a date range. A
// source may return fewer records than the range holds; callers must never
// assume completeness.
type Source interface {
	FetchDaily(ticker string, start, end time.Time) ([]model.RawObservation, error)
	Name() string
}

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	BasePrice    float64
	Observations []model.RawObservation // used verbatim when set
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchDaily(ticker string, start, end time.Time) ([]model.RawObservation, error) {
	if m.Observations != nil {
		return m.Observations, nil
	}
	return generateMockObservations(ticker, m.BasePrice, start, end), nil
}

func generateMockObservations(ticker string, basePrice float64, start, end time.Time) []model.RawObservation {
	days := calendar.BusinessDays(start, end)
	obs := make([]model.RawObservation, len(days))
	for i, d := range days {
		p := basePrice * (1 + float64(i-len(days)/2)*0.001)
		obs[i] = model.RawObservation{
			Date:   d,
			Ticker: ticker,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return obs
}
