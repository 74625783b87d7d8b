package notifier

import (
	"fmt"
	"strings"
	"time"
)

// RunResult summarizes one ticker's pipeline run for reporting.
type RunResult struct {
	Ticker      string
	RunID       string
	Windows     int
	DenseLength int
	ImputedDays int
	Err         error
}

// FormatRunSummary formats a batch of ticker results into a plain-text
// report.
func FormatRunSummary(results []RunResult, startedAt time.Time) string {
	var b strings.Builder

	ok, failed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			ok++
		}
	}

	b.WriteString(fmt.Sprintf("FeatureMill run | %s\n", startedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("%d ok, %d failed\n\n", ok, failed))

	for _, r := range results {
		if r.Err != nil {
			b.WriteString(fmt.Sprintf("  %s: FAILED: %v\n", r.Ticker, r.Err))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %d windows from %d days (%d imputed) run=%s\n",
			r.Ticker, r.Windows, r.DenseLength, r.ImputedDays, r.RunID))
	}

	return b.String()
}
