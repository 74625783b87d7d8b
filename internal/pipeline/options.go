package pipeline

import (
	"fmt"
	"time"

	"FeatureMill/internal/model"
)

// Options configures one pipeline invocation. All fields are explicit; the
// core holds no process-wide state.
type Options struct {
	StartDate        time.Time
	EndDate          time.Time
	SequenceLength   int
	StepSize         int
	RollingWindows   []int
	ImputationPolicy model.ImputationPolicy
}

// Validate surfaces bad options before any computation runs.
func (o Options) Validate() error {
	if o.StartDate.IsZero() {
		return &model.ConfigError{Field: "start_date", Reason: "required"}
	}
	if o.EndDate.IsZero() {
		return &model.ConfigError{Field: "end_date", Reason: "required"}
	}
	if model.Day(o.EndDate).Before(model.Day(o.StartDate)) {
		return &model.ConfigError{Field: "date_range", Reason: "end_date before start_date"}
	}
	if o.SequenceLength <= 0 {
		return &model.ConfigError{Field: "sequence_length",
			Reason: fmt.Sprintf("must be positive, got %d", o.SequenceLength)}
	}
	if o.StepSize <= 0 {
		return &model.ConfigError{Field: "step_size",
			Reason: fmt.Sprintf("must be positive, got %d", o.StepSize)}
	}
	for _, w := range o.RollingWindows {
		if w <= 0 {
			return &model.ConfigError{Field: "rolling_windows",
				Reason: fmt.Sprintf("window size must be positive, got %d", w)}
		}
	}
	switch o.ImputationPolicy {
	case model.PolicyAll, model.PolicyObservedOnly:
	default:
		return &model.ConfigError{Field: "imputation_policy",
			Reason: fmt.Sprintf("must be %q or %q", model.PolicyAll, model.PolicyObservedOnly)}
	}
	return nil
}
