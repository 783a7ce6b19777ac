// Package accum implements the sliding text accumulator and capture-region
// machinery the pbjson engine uses to coalesce multi-segment and
// escape-rewritten string/number text across feed() calls.
//
// The shape of this package is grounded on pkg/internal/jsonutil's
// streaming parsers (streaming.go): StreamingParser and
// ObjectStreamingParser both hold an "accumulated" buffer across Append
// calls and re-derive the current value from it on demand. That package
// always reallocates and re-parses the whole buffer on every call since
// it is repairing truncated JSON text, not decoding bytes that must
// stay aliased to their caller. Accumulator adapts the same
// carry-state-across-calls shape to pbjson's tighter budget: it starts
// by aliasing the caller's slice directly and only copies into an
// owned buffer once a value must survive past the call that produced
// it (crossing a feed() boundary, or needing escape-rewritten bytes).
package accum

// state is the accumulator's internal storage mode.
type state int

const (
	stateEmpty state = iota
	stateAliased
	stateOwned
)

const ownedFloor = 128

// Accumulator is a sliding, append-only byte buffer with two observable
// states: empty, or holding a contiguous region exposed via Get. The
// region may alias external memory (valid only until the next Append) or
// live in an owned buffer that Accumulator grows by doubling.
type Accumulator struct {
	state  state
	owned  []byte // owned backing storage, reused across Clear calls
	alias  []byte // borrowed view into the caller's most recent input
}

// New returns an empty Accumulator.
func New() *Accumulator {
	return &Accumulator{state: stateEmpty}
}

// Len reports the length of the currently held region, or 0 if empty.
func (a *Accumulator) Len() int {
	switch a.state {
	case stateAliased:
		return len(a.alias)
	case stateOwned:
		return len(a.owned)
	default:
		return 0
	}
}

// Get returns the currently held contiguous region. The returned slice is
// valid only until the next Append or Clear call.
func (a *Accumulator) Get() []byte {
	switch a.state {
	case stateAliased:
		return a.alias
	case stateOwned:
		return a.owned
	default:
		return nil
	}
}

// Clear returns the accumulator to the empty state. The owned backing
// array is retained (but zero-length) so repeated Clear/Append cycles do
// not re-allocate on every value.
func (a *Accumulator) Clear() {
	a.state = stateEmpty
	a.alias = nil
	a.owned = a.owned[:0]
}

// Append adds b to the held region. If the accumulator is empty and
// canAlias is true, b is recorded as a borrowed view with no copy; any
// other case (already holding data, or canAlias is false) forces or
// extends an owned buffer, first copying across a previously-aliased
// view so the two ranges end up contiguous.
//
// Reports a non-nil error only if growing the owned buffer overflows
// (OutOfMemory in the engine's error taxonomy); callers should treat
// that as a hard fail-out per the spec's allocation policy.
func (a *Accumulator) Append(b []byte, canAlias bool) error {
	if len(b) == 0 && a.state != stateEmpty {
		return nil
	}
	switch a.state {
	case stateEmpty:
		if canAlias {
			a.alias = b
			a.state = stateAliased
			return nil
		}
		if err := a.own(len(b)); err != nil {
			return err
		}
		a.owned = append(a.owned, b...)
		a.state = stateOwned
		return nil
	case stateAliased:
		prev := a.alias
		if err := a.own(len(prev) + len(b)); err != nil {
			return err
		}
		a.owned = append(a.owned[:0], prev...)
		a.owned = append(a.owned, b...)
		a.alias = nil
		a.state = stateOwned
		return nil
	default: // stateOwned
		if err := a.own(len(a.owned) + len(b)); err != nil {
			return err
		}
		a.owned = append(a.owned, b...)
		return nil
	}
}

// own ensures the owned backing array has capacity for at least need
// bytes, growing by doubling from a 128-byte floor. Capacity growth
// saturates rather than overflowing: once doubling would wrap around, own
// reports OutOfMemory instead of silently truncating.
func (a *Accumulator) own(need int) error {
	if cap(a.owned) >= need {
		return nil
	}
	newCap := cap(a.owned)
	if newCap == 0 {
		newCap = ownedFloor
	}
	for newCap < need {
		doubled := newCap * 2
		if doubled <= newCap { // overflow
			return errOutOfMemory
		}
		newCap = doubled
	}
	grown := make([]byte, len(a.owned), newCap)
	copy(grown, a.owned)
	a.owned = grown
	return nil
}
