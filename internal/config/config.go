package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"FeatureMill/internal/model"
	"FeatureMill/internal/pipeline"
)

const dateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider string `yaml:"provider"` // polygon | yahoo | mock
		APIKey   string `yaml:"api_key"`
	} `yaml:"data_source"`
	Tickers  []string `yaml:"tickers"`
	Pipeline struct {
		StartDate        string `yaml:"start_date"`
		EndDate          string `yaml:"end_date"`
		SequenceLength   int    `yaml:"sequence_length"`
		StepSize         int    `yaml:"step_size"`
		RollingWindows   []int  `yaml:"rolling_windows"`
		ImputationPolicy string `yaml:"imputation_policy"`
	} `yaml:"pipeline"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Store struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"store"`
	StateFile string `yaml:"state_file"`
	Notify    struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"notify"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("TICKERS"); v != "" {
		cfg.Tickers = splitList(v)
	}
	if v := os.Getenv("START_DATE"); v != "" {
		cfg.Pipeline.StartDate = v
	}
	if v := os.Getenv("END_DATE"); v != "" {
		cfg.Pipeline.EndDate = v
	}
	if v := os.Getenv("SEQUENCE_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.SequenceLength = n
		}
	}
	if v := os.Getenv("STEP_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.StepSize = n
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.StateFile = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		cfg.Notify.WebhookURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if len(cfg.Tickers) == 0 {
		cfg.Tickers = []string{"AAPL"}
	}
	if cfg.Pipeline.EndDate == "" {
		cfg.Pipeline.EndDate = time.Now().UTC().Format(dateLayout)
	}
	if cfg.Pipeline.StartDate == "" {
		end, err := time.ParseInLocation(dateLayout, cfg.Pipeline.EndDate, time.UTC)
		if err == nil {
			cfg.Pipeline.StartDate = end.AddDate(-2, 0, 0).Format(dateLayout)
		}
	}
	if cfg.Pipeline.SequenceLength == 0 {
		cfg.Pipeline.SequenceLength = 30
	}
	if cfg.Pipeline.StepSize == 0 {
		cfg.Pipeline.StepSize = 1
	}
	if len(cfg.Pipeline.RollingWindows) == 0 {
		cfg.Pipeline.RollingWindows = []int{5, 20}
	}
	if cfg.Pipeline.ImputationPolicy == "" {
		cfg.Pipeline.ImputationPolicy = string(model.PolicyAll)
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 22 * * 1-5"
	}
	if cfg.StateFile == "" {
		cfg.StateFile = "data/run_state.json"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "polygon":
		if c.DataSource.APIKey == "" {
			return fmt.Errorf("data_source.api_key is required for the polygon provider")
		}
	case "yahoo", "mock":
	default:
		return fmt.Errorf("data_source.provider must be polygon, yahoo, or mock")
	}
	if len(c.Tickers) == 0 {
		return fmt.Errorf("tickers must list at least one symbol")
	}
	if _, err := c.PipelineOptions(); err != nil {
		return err
	}
	return nil
}

// PipelineOptions converts the pipeline section into validated core options.
func (c *Config) PipelineOptions() (pipeline.Options, error) {
	start, err := time.ParseInLocation(dateLayout, c.Pipeline.StartDate, time.UTC)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("pipeline.start_date: %w", err)
	}
	end, err := time.ParseInLocation(dateLayout, c.Pipeline.EndDate, time.UTC)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("pipeline.end_date: %w", err)
	}
	opts := pipeline.Options{
		StartDate:        start,
		EndDate:          end,
		SequenceLength:   c.Pipeline.SequenceLength,
		StepSize:         c.Pipeline.StepSize,
		RollingWindows:   append([]int(nil), c.Pipeline.RollingWindows...),
		ImputationPolicy: model.ImputationPolicy(c.Pipeline.ImputationPolicy),
	}
	if err := opts.Validate(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
