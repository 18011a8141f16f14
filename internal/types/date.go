package types

import (
	"time"

	ierr "github.com/maka2016/maka-stats/internal/errors"
)

// DateFormat is the canonical day format used across the statistics tables
// and the CLI surface.
const DateFormat = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string in UTC. The zero time is never
// returned alongside a nil error.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("Invalid date %q, expected YYYY-MM-DD", s).
			Mark(ierr.ErrValidation)
	}
	return t, nil
}

// FormatDate renders the calendar day of t in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateFormat)
}

// StartOfDay truncates t to local midnight in UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DayWindow returns the [start, end] bounds of the calendar day of t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	return StartOfDay(t), EndOfDay(t)
}

// DaysBetween returns the number of calendar days from a to b, both
// normalized to midnight. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)) / (24 * time.Hour))
}

// InDayWindow reports whether ts falls inside the half-open window of
// windowDays calendar days anchored at the day of anchor. A window of N days
// spans [startOfDay(anchor), startOfDay(anchor)+N days).
func InDayWindow(anchor, ts time.Time, windowDays int) bool {
	if windowDays <= 0 {
		return false
	}
	start := StartOfDay(anchor)
	end := start.AddDate(0, 0, windowDays)
	return !ts.Before(start) && ts.Before(end)
}
