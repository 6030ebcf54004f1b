package tracker

import (
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"

	// used by HTML datetime-local inputs
	dateTimeLocalLayout = "2006-01-02T15:04"
)

// NormalizeTimestamp parses a training timestamp and returns its canonical
// stored form together with the calendar day it falls on.
func NormalizeTimestamp(value string) (timestamp string, day string, err error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", "", newValidationError("date", "empty")
	}

	if t, err := time.Parse(DateLayout, value); err == nil {
		d := t.Format(DateLayout)
		return d, d, nil
	}

	for _, layout := range []string{DateTimeLayout, dateTimeLocalLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(DateTimeLayout), t.Format(DateLayout), nil
		}
	}

	return "", "", newValidationError("date", "%q is not YYYY-MM-DD or YYYY-MM-DD HH:MM", value)
}

// NormalizeDate validates a calendar date and returns it zero-padded.
func NormalizeDate(value string) (string, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return "", newValidationError("date", "%q is not YYYY-MM-DD", value)
	}
	return t.Format(DateLayout), nil
}

// Day returns the calendar date of t as stored in the database.
func Day(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDay parses a stored calendar date in the given location.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, day, loc)
}
