package pbjson

import (
	"fmt"
	"strconv"
	"strings"
)

// durationMaxSeconds bounds google.protobuf.Duration per its .proto
// comment: approximately 10,000 years in either direction.
const durationMaxSeconds = 315576000000

// parseDuration parses the proto3 JSON Duration literal
// "<int>(.<frac>)?s", optionally signed, into its wire-level
// seconds/nanos pair.
func parseDuration(text string) (seconds int64, nanos int32, err error) {
	if !strings.HasSuffix(text, "s") {
		return 0, 0, fmt.Errorf("duration %q must end in 's'", text)
	}
	body := text[:len(text)-1]
	neg := false
	if len(body) > 0 && (body[0] == '-' || body[0] == '+') {
		neg = body[0] == '-'
		body = body[1:]
	}
	if body == "" {
		return 0, 0, fmt.Errorf("duration %q has no digits", text)
	}
	intPart := body
	fracPart := ""
	if idx := strings.IndexByte(body, '.'); idx >= 0 {
		intPart, fracPart = body[:idx], body[idx+1:]
	}
	if intPart == "" || !allDigits(intPart) {
		return 0, 0, fmt.Errorf("duration %q has a malformed integer part", text)
	}
	if fracPart != "" && (!allDigits(fracPart) || len(fracPart) > 9) {
		return 0, 0, fmt.Errorf("duration %q has a malformed fractional part", text)
	}
	secs, convErr := strconv.ParseInt(intPart, 10, 64)
	if convErr != nil {
		return 0, 0, fmt.Errorf("duration %q: seconds out of range", text)
	}
	if secs > durationMaxSeconds {
		return 0, 0, fmt.Errorf("duration %q exceeds the %ds bound", text, durationMaxSeconds)
	}
	nanosStr := fracPart
	for len(nanosStr) < 9 {
		nanosStr += "0"
	}
	nanos64, _ := strconv.ParseInt(nanosStr, 10, 32)
	nanos = int32(nanos64)
	if neg {
		secs, nanos = -secs, -nanos
	}
	return secs, nanos, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
