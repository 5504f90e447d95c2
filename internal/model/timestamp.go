package model

import (
	"errors"
	"strings"
	"time"
)

// ErrBadTimestamp is returned by ParseTimestamp for unsupported input.
var ErrBadTimestamp = errors.New("invalid ISO-8601 timestamp")

// zone-less layouts are read in the local zone, like a naive wall clock
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339 timestamps and the common zone-less
// ISO-8601 forms.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrBadTimestamp
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadTimestamp
}
