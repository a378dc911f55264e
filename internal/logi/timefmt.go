package logi

import (
	"strings"
	"time"
)

const (
	// LoadTimeLayout is the operator-facing format for load timestamps.
	LoadTimeLayout = "2006-01-02 15:04"
	// DateLayout is the operator-facing format for calendar dates.
	DateLayout = "2006-01-02"
)

// NormalizeLoadTime truncates t to the minute and pins it to UTC while
// keeping its wall-clock fields, so that every stored timestamp matches
// what the operator types back in.
func NormalizeLoadTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// asStoredZone relabels t's wall-clock reading as UTC without truncating
// it, matching how load times are stored.
func asStoredZone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ParseLoadTime parses a "YYYY-MM-DD HH:MM" timestamp.
func ParseLoadTime(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(LoadTimeLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, invalidInput("timestamp must be YYYY-MM-DD HH:MM: %q", raw)
	}
	return t, nil
}

// ParseDate parses a "YYYY-MM-DD" date.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, invalidInput("date must be YYYY-MM-DD: %q", raw)
	}
	return t, nil
}

// FormatLoadTime renders t in LoadTimeLayout.
func FormatLoadTime(t time.Time) string {
	return t.Format(LoadTimeLayout)
}
