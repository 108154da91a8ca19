package model

import (
	"fmt"
	"time"
)

// InstantPrecision is the resolution at which booking instants are stored.
// Mongo dates carry milliseconds, so anything finer would not survive a
// round trip through the store.
const InstantPrecision = time.Millisecond

// ParseInstant parses an ISO-8601 / RFC 3339 instant and normalizes it to UTC
// at storage precision.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q: %w", s, err)
	}
	return NormalizeInstant(t), nil
}

func NormalizeInstant(t time.Time) time.Time {
	return t.UTC().Truncate(InstantPrecision)
}

const (
	instantLayout       = "2006-01-02T15:04:05Z"
	instantLayoutMillis = "2006-01-02T15:04:05.000Z"
)

// FormatInstant renders t the way every timestamp leaves the service:
// whole seconds as 2024-01-15T10:30:00Z, anything else with three
// millisecond digits, e.g. 2024-01-15T10:30:00.250Z.
func FormatInstant(t time.Time) string {
	t = NormalizeInstant(t)
	if t.Nanosecond() == 0 {
		return t.Format(instantLayout)
	}
	return t.Format(instantLayoutMillis)
}
