package model

import (
	"fmt"
	"time"
)

// ValidationError reports a malformed, out-of-range, or wrong-ticker raw
// record. Fatal for the ticker's run; never retried by the pipeline.
type ValidationError struct {
	Ticker string
	Index  int // position of the offending record in the raw series
	Date   time.Time
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: ticker %s record %d (%s): %s",
		e.Ticker, e.Index, e.Date.Format("2006-01-02"), e.Reason)
}

// ConfigError reports invalid pipeline options. Surfaced before any
// computation begins.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// GapUnrepairableError reports a gap spanning the entire requested range,
// leaving no observed value to interpolate or fill from.
type GapUnrepairableError struct {
	Ticker string
	From   time.Time
	To     time.Time
}

func (e *GapUnrepairableError) Error() string {
	return fmt.Sprintf("gap unrepairable: ticker %s has no observations in %s..%s",
		e.Ticker, e.From.Format("2006-01-02"), e.To.Format("2006-01-02"))
}
