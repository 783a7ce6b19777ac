// Package numeric implements the proto3-JSON numeric literal parsing
// rules (spec §4.5): integer-literal-first for integer targets, double
// parsing with full-string consumption for float targets, and the
// float32/float64 special literals Infinity/-Infinity.
//
// The control flow here (classify the accumulated text, then dispatch by
// target kind) is grounded on pkg/internal/jsonutil/repair.go's
// ParsePartialJSON, which likewise scans an accumulated token and tries
// a sequence of interpretations (direct parse, then a repaired parse,
// then a bracket-balanced parse) before giving up; this package swaps
// "repair truncated JSON" for "convert to the exact Go numeric type a
// protobuf field declares", so the fallback chain here classifies a
// number's shape once instead of retrying parse strategies.
package numeric

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the numeric field width/signedness a literal is being
// parsed for. Proto field kinds that share a JSON numeric range collapse
// onto one Kind: int32/sint32/sfixed32 -> KindInt32, uint32/fixed32 ->
// KindUint32, int64/sint64/sfixed64 -> KindInt64, uint64/fixed64 ->
// KindUint64.
type Kind int

const (
	KindInt32 Kind = iota
	KindInt64
	KindUint32
	KindUint64
	KindFloat
	KindDouble
)

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool {
	return k == KindFloat || k == KindDouble
}

// Error describes why a numeric literal was rejected.
type Error struct {
	Text string
}

func (e *Error) Error() string { return e.Text }

func errf(format string, args ...any) *Error {
	return &Error{Text: fmt.Sprintf(format, args...)}
}

// Value holds a parsed numeric literal. Exactly one field is populated,
// selected by the Kind passed to Parse.
type Value struct {
	Int32   int32
	Int64   int64
	Uint32  uint32
	Uint64  uint64
	Float32 float32
	Float64 float64
}

// Parse interprets raw (the accumulated literal, unquoted JSON content --
// the caller strips the surrounding quotes before calling this, since
// quoting is legal for every numeric field but never part of the literal
// itself) as kind. quoted tells Parse the literal arrived inside JSON
// quotes, which proto3 JSON permits for every numeric kind but for
// non-float kinds still requires the quoted content to be an integer
// literal (spec §4.5's tie-break policy).
func Parse(raw []byte, quoted bool, kind Kind) (Value, error) {
	text := string(raw)
	if text == "" {
		return Value{}, errf("empty numeric literal")
	}

	if kind.IsFloat() {
		return parseFloatTarget(text, kind)
	}
	return parseIntTarget(text, quoted, kind)
}

func parseIntTarget(text string, quoted bool, kind Kind) (Value, error) {
	if v, ok, err := tryParseIntegerLiteral(text, kind); ok {
		return v, err
	}
	if quoted {
		return Value{}, errf("quoted %q is not an integer literal", text)
	}
	// Not an integer literal shape (has '.', 'e'/'E', or similar) --
	// decimal forms are only accepted for integer targets when they are
	// integrally valued and in range (spec §4.5 tie-break policy).
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, errf("invalid numeric literal %q for integer field: %v", text, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, errf("%q is not a valid integer literal", text)
	}
	if math.Floor(f) != f {
		return Value{}, errf("%q has a non-zero fractional part for an integer field", text)
	}
	return fromFloatExact(f, kind)
}

// tryParseIntegerLiteral attempts to read text as a plain (no '.', no
// exponent) signed/unsigned integer. ok is false when text is not
// shaped like an integer literal at all (the caller should fall back to
// the decimal-forms path); when ok is true, err is non-nil only for an
// out-of-range literal, which is a hard failure -- it must never fall
// back to the float path (spec §4.5: "if out of range for the target
// width, hard fail").
func tryParseIntegerLiteral(text string, kind Kind) (Value, bool, error) {
	if strings.ContainsAny(text, ".eE") {
		return Value{}, false, nil
	}
	switch kind {
	case KindInt32, KindInt64:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return Value{}, true, errf("%q overflows int64", text)
			}
			return Value{}, false, nil
		}
		if kind == KindInt64 {
			return Value{Int64: n}, true, nil
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return Value{}, true, errf("%q overflows int32", text)
		}
		return Value{Int32: int32(n)}, true, nil
	case KindUint32, KindUint64:
		if strings.HasPrefix(text, "-") {
			return Value{}, true, errf("%q is negative for an unsigned field", text)
		}
		n, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return Value{}, true, errf("%q overflows uint64", text)
			}
			return Value{}, false, nil
		}
		if kind == KindUint64 {
			return Value{Uint64: n}, true, nil
		}
		if n > math.MaxUint32 {
			return Value{}, true, errf("%q overflows uint32", text)
		}
		return Value{Uint32: uint32(n)}, true, nil
	}
	return Value{}, false, nil
}

// fromFloatExact converts an integrally-valued float64 into the target
// integer kind, range-checking it.
func fromFloatExact(f float64, kind Kind) (Value, error) {
	switch kind {
	case KindInt32:
		if f < math.MinInt32 || f > math.MaxInt32 {
			return Value{}, errf("%v overflows int32", f)
		}
		return Value{Int32: int32(f)}, nil
	case KindInt64:
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return Value{}, errf("%v overflows int64", f)
		}
		return Value{Int64: int64(f)}, nil
	case KindUint32:
		if f < 0 || f > math.MaxUint32 {
			return Value{}, errf("%v overflows uint32", f)
		}
		return Value{Uint32: uint32(f)}, nil
	case KindUint64:
		if f < 0 || f >= math.MaxUint64 {
			return Value{}, errf("%v overflows uint64", f)
		}
		return Value{Uint64: uint64(f)}, nil
	}
	return Value{}, errf("unreachable integer kind")
}

func parseFloatTarget(text string, kind Kind) (Value, error) {
	switch text {
	case "NaN":
		return floatValue(math.NaN(), kind), nil
	case "Infinity":
		return floatValue(math.Inf(1), kind), nil
	case "-Infinity":
		return floatValue(math.Inf(-1), kind), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, errf("invalid numeric literal %q: %v", text, err)
	}
	if kind == KindFloat && !math.IsInf(f, 0) && (f > math.MaxFloat32 || f < -math.MaxFloat32) {
		return Value{}, errf("%v overflows float32", f)
	}
	return floatValue(f, kind), nil
}

func floatValue(f float64, kind Kind) Value {
	if kind == KindFloat {
		return Value{Float32: float32(f)}
	}
	return Value{Float64: f}
}
