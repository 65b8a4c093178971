// Package timeutil parses transaction timestamps into one canonical form.
//
// Every timestamp the engine compares is a UTC time.Time. Inputs carrying an
// explicit offset ("Z", "+02:00", "-0300") are converted to UTC; inputs with no
// offset at all are read as UTC wall-clock time.
package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmpty is returned for a blank timestamp
var ErrEmpty = errors.New("timestamp is empty")

// zoned layouts carry their own offset
var zoned = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-0700",
	"2006-01-02T15:04Z07:00",
}

// naive layouts have no offset and are interpreted as UTC
var naive = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse converts an ISO-8601 timestamp to UTC
func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrEmpty
	}

	for _, layout := range zoned {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range naive {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised ISO-8601 timestamp %q", value)
}

// Valid reports whether Parse would accept the value
func Valid(value string) bool {
	_, err := Parse(value)
	return err == nil
}

// Format renders a time in the canonical UTC form used in responses and events
func Format(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
