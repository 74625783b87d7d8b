package source

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"FeatureMill/internal/model"
)

var (
	testStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
)

func TestMockSource_GeneratesBusinessDays(t *testing.T) {
	src := &MockSource{BasePrice: 100}
	obs, err := src.FetchDaily("AAPL", testStart, time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, obs, 10) // two full weeks, weekends skipped

	for i := 1; i < len(obs); i++ {
		require.True(t, obs[i-1].Date.Before(obs[i].Date))
	}
	require.Equal(t, "AAPL", obs[0].Ticker)
}

func TestMockSource_FixedObservations(t *testing.T) {
	fixed := []model.RawObservation{{Date: testStart, Ticker: "AAPL", Close: 42}}
	src := &MockSource{Observations: fixed}
	obs, err := src.FetchDaily("AAPL", testStart, testEnd)
	require.NoError(t, err)
	require.Equal(t, fixed, obs)
}

func TestPolygonSource_FetchDaily(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "/v2/aggs/ticker/AAPL/range/1/day/2024-01-01/2024-01-05")
		require.Equal(t, "test-key", r.URL.Query().Get("apiKey"))

		day2 := time.Date(2024, time.January, 2, 14, 30, 0, 0, time.UTC).UnixMilli()
		day4 := time.Date(2024, time.January, 4, 14, 30, 0, 0, time.UTC).UnixMilli()
		fmt.Fprintf(w, `{"status":"OK","results":[
			{"t":%d,"o":99,"h":101,"l":98,"c":100,"v":5000},
			{"t":%d,"o":101,"h":103,"l":100,"c":102,"v":6000}
		]}`, day4, day2)
	}))
	defer ts.Close()

	src := NewPolygonSource("test-key", "")
	src.BaseURL = ts.URL

	obs, err := src.FetchDaily("AAPL", testStart, testEnd)
	require.NoError(t, err)
	require.Len(t, obs, 2)

	// Sorted ascending regardless of response order.
	require.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), obs[0].Date)
	require.Equal(t, 102.0, obs[0].Close)
	require.Equal(t, time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC), obs[1].Date)
	require.Equal(t, 100.0, obs[1].Close)
	require.Equal(t, "AAPL", obs[0].Ticker)
}

func TestPolygonSource_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ERROR","error":"Unknown API Key"}`)
	}))
	defer ts.Close()

	src := NewPolygonSource("bad-key", "")
	src.BaseURL = ts.URL

	_, err := src.FetchDaily("AAPL", testStart, testEnd)
	require.ErrorContains(t, err, "Unknown API Key")
}

func TestYahooSource_FetchDaily(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "/v8/finance/chart/^GSPC") // SPX maps to ^GSPC

		day2 := time.Date(2024, time.January, 2, 14, 30, 0, 0, time.UTC).Unix()
		day3 := time.Date(2024, time.January, 3, 14, 30, 0, 0, time.UTC).Unix()
		fmt.Fprintf(w, `{"chart":{"result":[{"timestamp":[%d,%d],
			"indicators":{"quote":[{"open":[99,null],"high":[101,null],"low":[98,null],
			"close":[100,null],"volume":[5000,null]}]}}]}}`, day2, day3)
	}))
	defer ts.Close()

	src := NewYahooSource("")
	src.BaseURL = ts.URL

	obs, err := src.FetchDaily("SPX", testStart, testEnd)
	require.NoError(t, err)
	require.Len(t, obs, 1) // null bar skipped
	require.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), obs[0].Date)
	require.Equal(t, 100.0, obs[0].Close)
	require.Equal(t, "SPX", obs[0].Ticker)
}
