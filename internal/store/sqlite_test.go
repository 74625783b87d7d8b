package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"FeatureMill/internal/model"
)

func testDataset() *model.Dataset {
	day := func(d int) time.Time {
		return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
	}
	return &model.Dataset{
		Ticker:         "AAPL",
		FeatureNames:   []string{"open", "close", "sma_5"},
		SequenceLength: 2,
		DenseLength:    4,
		ImputedDays:    1,
		Windows: []model.FeatureWindow{
			{Start: day(1), End: day(2), Rows: [][]float64{{99, 100, 100}, {100, 101, 100.5}}},
			{Start: day(2), End: day(3), Rows: [][]float64{{100, 101, 100.5}, {101, 102, 101}}},
		},
		Targets:     []float64{102, 103},
		TargetDates: []time.Time{day(3), day(4)},
	}
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "features.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	run := NewRunKey()
	want := testDataset()

	require.NoError(t, s.SaveDataset("AAPL", run, want))

	got, err := s.LoadDataset("AAPL", run.RunID)
	require.NoError(t, err)

	require.Equal(t, want.Ticker, got.Ticker)
	require.Equal(t, want.FeatureNames, got.FeatureNames)
	require.Equal(t, want.SequenceLength, got.SequenceLength)
	require.Equal(t, want.DenseLength, got.DenseLength)
	require.Equal(t, want.ImputedDays, got.ImputedDays)
	require.Equal(t, want.Windows, got.Windows)
	require.Equal(t, want.Targets, got.Targets)
	require.Equal(t, want.TargetDates, got.TargetDates)
}

func TestSQLiteStore_WriteOnce(t *testing.T) {
	s := openTestStore(t)
	run := NewRunKey()
	ds := testDataset()

	require.NoError(t, s.SaveDataset("AAPL", run, ds))
	require.Error(t, s.SaveDataset("AAPL", run, ds), "a run key is write-once")

	// A fresh key for the same ticker is fine.
	require.NoError(t, s.SaveDataset("AAPL", NewRunKey(), ds))
}

func TestSQLiteStore_LoadMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadDataset("AAPL", "no-such-run")
	require.Error(t, err)

	// Saved under one ticker, queried under another.
	run := NewRunKey()
	require.NoError(t, s.SaveDataset("AAPL", run, testDataset()))
	_, err = s.LoadDataset("MSFT", run.RunID)
	require.Error(t, err)
}

func TestNewRunKey(t *testing.T) {
	a, b := NewRunKey(), NewRunKey()
	require.NotEmpty(t, a.RunID)
	require.NotEqual(t, a.RunID, b.RunID)
	require.False(t, a.StartedAt.IsZero())
}
