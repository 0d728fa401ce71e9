package model

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DateOnly strips the time of day, keeping the calendar date in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDate renders the calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as a date in the local time zone.
func ParseDate(raw string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidateDue accepts the empty string (no due date) or a YYYY-MM-DD date.
func ValidateDue(raw string) error {
	if raw == "" {
		return nil
	}
	if _, ok := ParseDate(raw); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidDue, raw)
	}
	return nil
}

// NextDays returns n consecutive dates starting at today.
func NextDays(today time.Time, n int) []string {
	start := DateOnly(today)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, FormatDate(start.AddDate(0, 0, i)))
	}
	return out
}
