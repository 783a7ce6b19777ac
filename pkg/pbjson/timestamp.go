package pbjson

import (
	"fmt"
	"time"
)

// Timestamp's valid range is 0001-01-01T00:00:00Z through
// 9999-12-31T23:59:59Z, expressed as seconds relative to the Unix
// epoch (spec §9, resolving the UTC-only Open Question).
const (
	timestampMinSeconds = -62135596800
	timestampMaxSeconds = 253402300799
)

// parseTimestamp parses an RFC-3339 Timestamp literal. Both the "Z"
// designator and a numeric "+HH:MM"/"-HH:MM" offset are accepted; either
// way the zone's hours/minutes are folded into the instant directly from
// the parsed offset, never by consulting the local system timezone
// database (the rewrite's UTC-only resolution for this Open Question).
func parseTimestamp(text string) (seconds int64, nanos int32, err error) {
	t, perr := time.Parse(time.RFC3339Nano, text)
	if perr != nil {
		return 0, 0, fmt.Errorf("timestamp %q: %w", text, perr)
	}
	secs := t.Unix()
	if secs < timestampMinSeconds || secs > timestampMaxSeconds {
		return 0, 0, fmt.Errorf("timestamp %q is outside the representable range", text)
	}
	return secs, int32(t.Nanosecond()), nil
}
