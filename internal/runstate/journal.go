package runstate

import (
	"log"
	"sync"
	"time"

	"FeatureMill/internal/model"
)

// Journal tracks per-ticker run outcomes with concurrency safety; ticker
// runs report from parallel goroutines.
type Journal struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewJournal creates a Journal, loading or initializing state from disk.
func NewJournal(filePath string) (*Journal, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	j := &Journal{state: state, filePath: filePath}
	if err := j.save(); err != nil {
		return nil, err
	}
	return j, nil
}

// RecordSuccess journals a completed run for a ticker.
func (j *Journal) RecordSuccess(ticker, runID string, ds *model.Dataset) {
	j.mu.Lock()
	defer j.mu.Unlock()

	run := TickerRun{
		RunID:       runID,
		LastRunAt:   time.Now().UTC(),
		WindowCount: ds.NumWindows(),
		DenseLength: ds.DenseLength,
		ImputedDays: ds.ImputedDays,
	}
	if n := len(ds.TargetDates); n > 0 {
		run.LastTargetDate = ds.TargetDates[n-1]
	}
	j.state.Runs[ticker] = run

	if err := j.save(); err != nil {
		log.Printf("[ERROR] failed to save run state: %v", err)
	}
}

// RecordFailure journals a failed run, keeping the previous success fields so
// the last good run stays visible.
func (j *Journal) RecordFailure(ticker string, runErr error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	run := j.state.Runs[ticker]
	run.LastRunAt = time.Now().UTC()
	run.LastError = runErr.Error()
	j.state.Runs[ticker] = run

	if err := j.save(); err != nil {
		log.Printf("[ERROR] failed to save run state: %v", err)
	}
}

// Snapshot returns a copy of the current journal state.
func (j *Journal) Snapshot() State {
	j.mu.Lock()
	defer j.mu.Unlock()

	runs := make(map[string]TickerRun, len(j.state.Runs))
	for k, v := range j.state.Runs {
		runs[k] = v
	}
	return State{Runs: runs, UpdatedAt: j.state.UpdatedAt}
}

func (j *Journal) save() error {
	return SaveState(j.filePath, j.state)
}
