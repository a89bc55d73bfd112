package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date form used for day bucketing and
// range filters.
const DateLayout = "2006-01-02"

// timestampLayouts are the accepted measured_at forms, most specific
// first. Layouts without a zone are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
}

// DateOf returns the UTC calendar date of t as YYYY-MM-DD.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseTimestamp parses a measured_at value: full ISO-8601 or a bare
// YYYY-MM-DD date.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
