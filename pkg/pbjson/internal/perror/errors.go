// Package perror defines the error taxonomy used by the pbjson decoding
// engine, in the same spirit as pkg/provider/errors: a closed set of
// typed error values, each with its own constructor and an Error()
// that renders enough context to act on, rather than one catch-all
// error string. perror trades that package's open struct-per-failure
// shape for a single Kind enum, since a decoder has a fixed, small set
// of failure categories instead of one per upstream provider.
package perror

import (
	"fmt"
	"strings"
)

// Kind is an enum for decode error categories.
type Kind string

// Error kind constants.
const (
	KindLexical       Kind = "lexical"        // FSM reached a dead state
	KindUnknownField  Kind = "unknown_field"  // member name not in the JSON-name table
	KindTypeMismatch  Kind = "type_mismatch"  // JSON token shape incompatible with field type
	KindNumericParse  Kind = "numeric_parse"  // malformed/out-of-range numeric literal
	KindEnumUnknown   Kind = "enum_unknown"   // symbolic enum value not found
	KindBase64        Kind = "base64"         // invalid bytes encoding
	KindDuration      Kind = "duration"       // malformed/out-of-range Duration literal
	KindTimestamp     Kind = "timestamp"      // malformed/out-of-range Timestamp literal
	KindDepthExceeded Kind = "depth_exceeded" // stack limit reached
	KindInternal      Kind = "internal"       // invariant violation
	KindOutOfMemory   Kind = "out_of_memory"  // accumulator growth failed
)

// Error represents a single decode error with path information.
type Error struct {
	// Path is the frame trail leading to the error: message full names
	// and field names, e.g. ["pbjson.samples.Order", "shipping_address",
	// "pbjson.samples.Address", "street"].
	Path    []string
	Message string
	Kind    Kind
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return string(e.Kind) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %s", strings.Join(e.Path, "."), e.Kind, e.Message)
}

// New builds an *Error with no path. The driver fills in the whole frame
// trail at once when it reports the error; Prefix adds a single segment.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Prefix returns a copy of e with seg prepended to its path.
func (e *Error) Prefix(seg string) *Error {
	path := make([]string, 0, len(e.Path)+1)
	path = append(path, seg)
	path = append(path, e.Path...)
	return &Error{Path: path, Message: e.Message, Kind: e.Kind}
}

// Errors is an aggregate of decode errors. The driver itself halts on the
// first error (spec: errors are never masked or retried internally), so a
// driver-produced Errors slice is always length <= 1 in practice; the
// aggregate exists so callers that fold in descriptor/registry lookup
// failures alongside a decode error have one reporting shape to use.
type Errors []*Error

// Error implements the error interface.
func (es Errors) Error() string {
	if len(es) == 0 {
		return "decode errors: (none)"
	}
	if len(es) == 1 {
		return es[0].Error()
	}
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("decode errors (%d): %s", len(es), strings.Join(msgs, "; "))
}

// Unwrap supports errors.Is/errors.As over the aggregate.
func (es Errors) Unwrap() []error {
	out := make([]error, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

// Is reports whether target is a *Error with the same Kind, so callers can
// do errors.Is(err, perror.New(perror.KindBase64, "")) style checks... in
// practice callers compare Kind directly via errors.As, this exists for
// symmetry with the standard library error-matching idiom.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}
