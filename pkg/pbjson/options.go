package pbjson

import "fmt"

// Options configures a Driver (spec §6). Like pkg/ai/repair.go's
// RepairOptions, this is a plain struct with a small, fixed set of
// knobs rather than a functional-options builder: a decoder has few
// enough settings that a struct literal (or a DefaultOptions-style
// zero value) is clearer than chained With* calls, and Options is
// validated once, at Driver construction, the same place
// RepairOptions' MaxAttempts gets its floor applied.
type Options struct {
	// IgnoreJSONUnknown, when true, makes an unresolvable member name
	// a soft error: the member (and its entire value subtree) is
	// silently skipped instead of halting the parse (spec §4.9, §7).
	IgnoreJSONUnknown bool

	// MaxDepth overrides the default 64-frame nesting ceiling (spec
	// §6). It may only be set *lower* than the hard ceiling -- asking
	// for a deeper stack than the engine guarantees bounded recursion
	// for is rejected at construction time, not silently clamped.
	MaxDepth int

	// AllowUnpaddedBase64 relaxes `bytes` field decoding to accept a
	// final base64 group without its trailing '=' padding (spec §9
	// Open Question: "decide whether the rewrite retains this
	// strictness"). Default false: padding is required, matching the
	// canonical proto3 JSON encoder's own output.
	AllowUnpaddedBase64 bool
}

// DefaultMaxDepth is the spec's hard nesting ceiling.
const DefaultMaxDepth = 64

// normalize returns a validated copy of o with MaxDepth defaulted, or an
// error if the caller asked for something the engine cannot honor.
func (o Options) normalize() (Options, error) {
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxDepth < 0 {
		return o, fmt.Errorf("pbjson: MaxDepth must be positive, got %d", o.MaxDepth)
	}
	if o.MaxDepth > DefaultMaxDepth {
		return o, fmt.Errorf("pbjson: MaxDepth %d exceeds the engine's hard ceiling of %d", o.MaxDepth, DefaultMaxDepth)
	}
	return o, nil
}
