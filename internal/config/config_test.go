package config

import (
	"os"
	"path/filepath"
	"testing"

	"FeatureMill/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataSource.Provider != "yahoo" {
		t.Errorf("expected default provider yahoo, got %s", cfg.DataSource.Provider)
	}
	if len(cfg.Tickers) != 1 || cfg.Tickers[0] != "AAPL" {
		t.Errorf("expected default ticker AAPL, got %v", cfg.Tickers)
	}
	if cfg.Pipeline.SequenceLength != 30 || cfg.Pipeline.StepSize != 1 {
		t.Errorf("unexpected pipeline defaults: %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.StartDate == "" || cfg.Pipeline.EndDate == "" {
		t.Error("expected default date range to be filled in")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
data_source:
  provider: polygon
  api_key: from-yaml
tickers: ["MSFT", "GOOG"]
pipeline:
  start_date: "2022-08-02"
  end_date: "2024-08-02"
  sequence_length: 14
  step_size: 2
  rolling_windows: [5, 20]
  imputation_policy: observed_only
store:
  sqlite_path: data/test.db
`)
	t.Setenv("POLYGON_API_KEY", "from-env")
	t.Setenv("TICKERS", "AAPL , TSLA")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataSource.APIKey != "from-env" {
		t.Errorf("env should override yaml, got %s", cfg.DataSource.APIKey)
	}
	if len(cfg.Tickers) != 2 || cfg.Tickers[0] != "AAPL" || cfg.Tickers[1] != "TSLA" {
		t.Errorf("expected env ticker list, got %v", cfg.Tickers)
	}
	if cfg.Pipeline.SequenceLength != 14 {
		t.Errorf("expected sequence_length 14, got %d", cfg.Pipeline.SequenceLength)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config should validate: %v", err)
	}

	opts, err := cfg.PipelineOptions()
	if err != nil {
		t.Fatalf("pipeline options: %v", err)
	}
	if opts.ImputationPolicy != model.PolicyObservedOnly {
		t.Errorf("expected observed_only policy, got %s", opts.ImputationPolicy)
	}
	if opts.StartDate.Format("2006-01-02") != "2022-08-02" {
		t.Errorf("unexpected start date: %s", opts.StartDate)
	}
}

func TestValidate_PolygonRequiresKey(t *testing.T) {
	path := writeConfig(t, `
data_source:
  provider: polygon
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure for polygon without api key")
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	path := writeConfig(t, `
data_source:
  provider: carrier-pigeon
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure for unknown provider")
	}
}

func TestPipelineOptions_BadValues(t *testing.T) {
	path := writeConfig(t, `
pipeline:
  start_date: "not-a-date"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := cfg.PipelineOptions(); err == nil {
		t.Error("expected error for malformed start date")
	}

	path = writeConfig(t, `
pipeline:
  start_date: "2024-02-01"
  end_date: "2024-01-01"
`)
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := cfg.PipelineOptions(); err == nil {
		t.Error("expected error for inverted date range")
	}
}
