package source

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"FeatureMill/internal/model"
)

// PolygonSource implements Source using the polygon.io v2 aggregates API.
type PolygonSource struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewPolygonSource creates a polygon.io source with optional proxy support.
func NewPolygonSource(apiKey, proxyURL string) *PolygonSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &PolygonSource{
		BaseURL: "https://api.polygon.io",
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (s *PolygonSource) Name() string { return "polygon" }

// polygonAggs is the response shape of the v2 aggregates endpoint.
type polygonAggs struct {
	Status  string `json:"status"`
	Results []struct {
		Timestamp int64   `json:"t"` // milliseconds since epoch
		Open      float64 `json:"o"`
		High      float64 `json:"h"`
		Low       float64 `json:"l"`
		Close     float64 `json:"c"`
		Volume    float64 `json:"v"`
	} `json:"results"`
	Error string `json:"error"`
}

func (s *PolygonSource) FetchDaily(ticker string, start, end time.Time) ([]model.RawObservation, error) {
	from, to := model.Day(start), model.Day(end)
	endpoint := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/day/%s/%s?adjusted=true&sort=asc&apiKey=%s",
		s.BaseURL, url.PathEscape(ticker),
		from.Format("2006-01-02"), to.Format("2006-01-02"), url.QueryEscape(s.APIKey))

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("polygon fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("polygon read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("polygon: status %d, body: %s", resp.StatusCode, string(body))
	}

	var aggs polygonAggs
	if err := json.Unmarshal(body, &aggs); err != nil {
		return nil, fmt.Errorf("polygon decode: %w", err)
	}
	if aggs.Error != "" {
		return nil, fmt.Errorf("polygon api error: %s", aggs.Error)
	}

	obs := make([]model.RawObservation, 0, len(aggs.Results))
	for _, r := range aggs.Results {
		d := model.Day(time.UnixMilli(r.Timestamp))
		if d.Before(from) || d.After(to) {
			continue
		}
		if r.Open == 0 && r.High == 0 && r.Low == 0 && r.Close == 0 {
			continue // null bars (holidays etc.)
		}
		obs = append(obs, model.RawObservation{
			Date:   d,
			Ticker: ticker,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}
	sort.Slice(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })
	return obs, nil
}
