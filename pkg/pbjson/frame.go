package pbjson

import "github.com/deepankarm/pbjson/pkg/pbjson/internal/fsm"

// containerState is the JSON-syntax sub-state of one frame: what the
// scanner is expecting next inside the object/array this frame
// represents. JSON's container nesting and the engine's semantic
// nesting coincide one-for-one (every '{'/'[' pushes exactly one
// Frame), so this sub-state rides along on the same stack entry that
// carries the semantic message/field context -- there is no separate
// FSM call stack distinct from the Frame stack (spec §8: "depth of the
// semantic stack never exceeds the FSM call-stack depth + 1"; here it
// is equal, since object/array entry is the only form of nesting in
// this grammar and a Frame is pushed for exactly that).
type containerState int

const (
	csScalar             containerState = iota // frame not yet known to be object or array
	csObjectAwaitingKey                        // '{' just consumed, or after ','
	csObjectAwaitingColon
	csObjectAwaitingValue
	csObjectAwaitingComma
	csArrayAwaitingValue // '[' just consumed, or after ','; also covers the first element
	csArrayAwaitingComma
)

// Frame is one entry of the semantic stack (spec §3).
type Frame struct {
	// Msg is the current message descriptor. Unused (nil) on a
	// suppressed frame or a plain array sequence frame; on a map
	// sequence frame it is the mapentry type (see IsMap).
	Msg Message
	// Field is the field currently being populated within Msg, or nil
	// when the parser is awaiting a member name. On an array sequence
	// frame it stays bound to the repeated field for every element.
	Field Field

	// IsMap marks a frame as the synthetic "repeated mapentry"
	// sequence around a map field (spec §4.7): Msg is the mapentry
	// message type.
	IsMap bool
	// IsMapEntry marks a frame as a single mapentry whose lifetime
	// ends when its value field finishes parsing. Set only after the
	// key has been emitted (spec §4.7), so the key-emission code path
	// -- which shares the value-emission handlers -- does not pop the
	// frame prematurely.
	IsMapEntry bool
	// MapField is the enclosing map field, populated on both the
	// IsMap sequence frame and the IsMapEntry frames nested under it.
	MapField Field

	// isSeq marks a frame closed with EndSeq rather than EndMsg: set
	// by both enterArrayValue (plain repeated fields) and enterMapValue
	// (IsMap is also isSeq -- the "repeated mapentry" sequence really
	// is a sequence).
	isSeq bool
	// suppressed marks an unknown subtree being structurally skipped
	// (spec §4.9/§4.10): nested start/end tokens balance normally but
	// produce no Sink calls at all.
	suppressed bool
	// wrapped records whether this frame's StartMsg/EndMsg pair is
	// itself bracketed by a StartSubMsg/EndSubMsg pair on the parent
	// field (true for every message frame except the document root).
	wrapped bool
	// closeAfterValue marks a frame with exactly one field to
	// populate -- a mapentry, or a synthetic wrapper/Value/Struct/
	// ListValue frame -- so that once that field's value completes the
	// frame closes immediately rather than awaiting a ',' or '}'.
	closeAfterValue bool

	// container is this frame's JSON-syntax state.
	container containerState
}

// frameStack is the bounded semantic/container stack (spec §6: 64
// frames).
type frameStack struct {
	s *fsm.Stack[Frame]
}

func newFrameStack(maxDepth int) *frameStack {
	return &frameStack{s: fsm.NewStack[Frame](maxDepth)}
}

func (fs *frameStack) push(f Frame) error {
	if err := fs.s.Push(f); err != nil {
		return newDepthError(err)
	}
	return nil
}

func (fs *frameStack) pop() (Frame, bool) {
	return fs.s.Pop()
}

func (fs *frameStack) top() *Frame {
	return fs.s.Top()
}

func (fs *frameStack) len() int {
	return fs.s.Len()
}

// path builds an error-reporting path (message full name + field name
// per frame) by walking the stack from bottom to top.
func (fs *frameStack) path() []string {
	var segs []string
	for i := 0; i < fs.s.Len(); i++ {
		f := fs.s.At(i)
		if f == nil {
			continue
		}
		if f.Msg != nil {
			segs = append(segs, f.Msg.FullName())
		}
		if f.Field != nil {
			segs = append(segs, f.Field.Name())
		}
	}
	return segs
}
