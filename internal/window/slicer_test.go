package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"FeatureMill/internal/calendar"
	"FeatureMill/internal/features"
	"FeatureMill/internal/model"
)

// enrichedFixture builds an enriched dense series of n business days from
// Monday 2024-01-01, close = 100+i.
func enrichedFixture(t *testing.T, n int) model.DenseSeries {
	t.Helper()
	d := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.DensePoint, n)
	for i := range points {
		for !calendar.IsBusinessDay(d) {
			d = d.AddDate(0, 0, 1)
		}
		c := 100.0 + float64(i)
		points[i] = model.DensePoint{
			Date: d, Open: c - 1, High: c + 1, Low: c - 2, Close: c, Volume: 1000,
			Provenance: model.Observed,
		}
		d = d.AddDate(0, 0, 1)
	}
	dense := model.DenseSeries{Ticker: "AAPL", Points: points}
	enriched, err := features.Enrich(dense, []int{3}, model.PolicyAll)
	require.NoError(t, err)
	return enriched
}

func TestSlice_TenDayScenario(t *testing.T) {
	enriched := enrichedFixture(t, 10)
	ds, err := Slice(enriched, 3, 1)
	require.NoError(t, err)

	// 10 days, length-3 windows, stride 1: 7 windows.
	numWindows, seqLen, numFeatures := ds.Shape()
	require.Equal(t, 7, numWindows)
	require.Equal(t, 3, seqLen)
	require.Equal(t, len(enriched.FeatureNames), numFeatures)
	require.Len(t, ds.Targets, 7)

	// Window 0 covers days 0..2; its target is day 3's close.
	w0 := ds.Windows[0]
	require.Equal(t, enriched.Points[0].Date, w0.Start)
	require.Equal(t, enriched.Points[2].Date, w0.End)
	require.Equal(t, enriched.Points[0].Features, w0.Rows[0])
	require.Equal(t, enriched.Points[2].Features, w0.Rows[2])
	require.Equal(t, 103.0, ds.Targets[0])
	require.Equal(t, enriched.Points[3].Date, ds.TargetDates[0])

	// Last window covers days 6..8, target day 9.
	require.Equal(t, enriched.Points[6].Date, ds.Windows[6].Start)
	require.Equal(t, 109.0, ds.Targets[6])
}

func TestSlice_StepSize(t *testing.T) {
	enriched := enrichedFixture(t, 10)
	ds, err := Slice(enriched, 3, 2)
	require.NoError(t, err)

	// Starts 0, 2, 4, 6; start 8 would need a target at index 11.
	require.Equal(t, 4, ds.NumWindows())
	require.Equal(t, enriched.Points[2].Date, ds.Windows[1].Start)
	require.Equal(t, 105.0, ds.Targets[1]) // close at index 5
}

func TestSlice_Alignment(t *testing.T) {
	enriched := enrichedFixture(t, 12)
	ds, err := Slice(enriched, 4, 3)
	require.NoError(t, err)
	require.Greater(t, ds.NumWindows(), 0)

	for i, w := range ds.Windows {
		require.Equal(t, calendar.NextBusinessDay(w.End), ds.TargetDates[i],
			"target %d must be exactly one business day after its window", i)
		require.Len(t, w.Rows, 4)
	}
	require.Equal(t, len(ds.Windows), len(ds.Targets))
}

func TestSlice_DropsTrailingPartialWindow(t *testing.T) {
	enriched := enrichedFixture(t, 10)

	// seqLen equal to the series length leaves no room for a target.
	ds, err := Slice(enriched, 10, 1)
	require.NoError(t, err)
	require.Equal(t, 0, ds.NumWindows())

	// Stride jumping past the last valid start drops the tail, not pads it.
	ds, err = Slice(enriched, 4, 5)
	require.NoError(t, err)
	require.Equal(t, 2, ds.NumWindows()) // starts 0 and 5
}

func TestSlice_ConfigErrors(t *testing.T) {
	enriched := enrichedFixture(t, 5)
	var cfgErr *model.ConfigError

	_, err := Slice(enriched, 6, 1)
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "sequence_length", cfgErr.Field)

	_, err = Slice(enriched, 0, 1)
	require.ErrorAs(t, err, &cfgErr)

	_, err = Slice(enriched, 3, 0)
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "step_size", cfgErr.Field)

	_, err = Slice(enriched, 3, -2)
	require.ErrorAs(t, err, &cfgErr)
}

func TestSlice_RequiresEnrichedSeries(t *testing.T) {
	bare := model.DenseSeries{Ticker: "AAPL", Points: enrichedFixture(t, 5).Points}
	bare.FeatureNames = nil
	_, err := Slice(bare, 2, 1)
	require.Error(t, err)
}

func TestSlice_RowsAreCopies(t *testing.T) {
	enriched := enrichedFixture(t, 6)
	ds, err := Slice(enriched, 2, 1)
	require.NoError(t, err)

	ds.Windows[0].Rows[0][0] = -1
	require.NotEqual(t, -1.0, enriched.Points[0].Features[0])
}
