package calendar

import (
	"time"

	"FeatureMill/internal/model"
)

// IsBusinessDay reports whether t falls on a weekday (Mon-Fri). Exchange
// holidays are treated as business days and repaired like any other gap.
func IsBusinessDay(t time.Time) bool {
	switch t.UTC().Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// NextBusinessDay returns the first business day strictly after t.
func NextBusinessDay(t time.Time) time.Time {
	d := model.Day(t).AddDate(0, 0, 1)
	for !IsBusinessDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// BusinessDays returns every business day in [start, end] inclusive, in
// ascending order. Returns nil when the range contains none.
func BusinessDays(start, end time.Time) []time.Time {
	from, to := model.Day(start), model.Day(end)
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days
}
