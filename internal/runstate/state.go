package runstate

import (
	"encoding/json"
	"os"
	"time"
)

// TickerRun records the outcome of the most recent pipeline run for one
// ticker.
type TickerRun struct {
	RunID          string    `json:"run_id"`
	LastRunAt      time.Time `json:"last_run_at"`
	WindowCount    int       `json:"window_count"`
	DenseLength    int       `json:"dense_length"`
	ImputedDays    int       `json:"imputed_days"`
	LastTargetDate time.Time `json:"last_target_date"`
	LastError      string    `json:"last_error,omitempty"`
}

// State is the on-disk journal of per-ticker runs.
type State struct {
	Runs      map[string]TickerRun `json:"runs"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// LoadState reads the journal from a JSON file. Returns a zero state if the
// file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Runs: make(map[string]TickerRun)}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Runs == nil {
		state.Runs = make(map[string]TickerRun)
	}
	return &state, nil
}

// SaveState writes the journal to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
