package pbjson

// unknownFieldSentinel is bound to Frame.Field when a member name failed
// to resolve and Options.IgnoreJSONUnknown allows the parser to carry on
// (spec §4.9). Every dispatch function checks for it before doing any
// Sink work, so an unknown member's value -- scalar or container -- is
// fully lexed (still has to be well-formed JSON) and then discarded.
var unknownFieldSentinel = &unknownField{}

type unknownField struct{}

func (*unknownField) Kind() FieldKind                    { return KindInvalid }
func (*unknownField) Name() string                       { return "" }
func (*unknownField) IsRepeated() bool                   { return false }
func (*unknownField) IsMap() bool                        { return false }
func (*unknownField) Message() Message                   { return nil }
func (*unknownField) EnumValue(string) (int32, bool)     { return 0, false }

func isUnknown(f Field) bool { return f == nil || f == unknownFieldSentinel }

// dispatchFieldValue is entered once a member name (or array slot) has
// resolved to f and the scanner is positioned at the first byte of its
// value. It decides, from f and the lookahead byte b, which of
// map/array/message/scalar handling applies.
func (d *Driver) dispatchFieldValue(f Field, b byte) error {
	if isUnknown(f) {
		return d.beginSkipValue(b)
	}
	if f.IsMap() {
		if b != '{' {
			return d.fail(d.typeMismatch(f, "expected object for map field"))
		}
		return d.enterMapValue(f)
	}
	if f.IsRepeated() {
		if b != '[' {
			return d.fail(d.typeMismatch(f, "expected array for repeated field"))
		}
		return d.enterArrayValue(f)
	}
	return d.dispatchScalarOrMessage(f, b, true)
}

// dispatchElementValue is the per-element counterpart used inside an
// array frame: f is the repeated field, already bound, and must not be
// re-checked for IsRepeated/IsMap (that would re-enter array/map
// handling per element instead of per field).
func (d *Driver) dispatchElementValue(f Field, b byte) error {
	if isUnknown(f) {
		return d.beginSkipValue(b)
	}
	return d.dispatchScalarOrMessage(f, b, true)
}

// dispatchScalarOrMessage handles one value slot bound to field f,
// neither map nor (outer) repeated. wrapped tells message handling
// whether an enclosing StartSubMsg/EndSubMsg pair brackets the message
// this value might open (true for every case except the synthetic root
// slot).
func (d *Driver) dispatchScalarOrMessage(f Field, b byte, wrapped bool) error {
	if f.Kind() == KindMessage {
		return d.beginMessageValue(f, b, wrapped)
	}
	switch b {
	case '"':
		return d.beginStringValue(f)
	case 't', 'f':
		return d.beginBoolLiteral(f, b)
	case 'n':
		return d.beginNullLiteral(func() error { return d.afterValue() })
	case '-', '+', '.', 'I', 'N', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		switch f.Kind() {
		case KindBool, KindString, KindBytes, KindMessage:
			return d.fail(d.typeMismatch(f, "unexpected numeric literal"))
		default:
			return d.beginNumberLiteral(f)
		}
	default:
		return d.fail(d.lexError("unexpected character %q", b))
	}
}

// afterValue is called once a value slot's Sink emission (if any) is
// complete, with the frame that held that value still on top of the
// stack. It restores the enclosing frame to the state it needs to
// accept the next member/element/terminator, or -- if that frame is
// itself marked closeAfterValue (a mapentry, or a synthetic
// wrapper/Value/Struct/ListValue frame with exactly one field) -- pops
// and closes it via closeFrame instead.
func (d *Driver) afterValue() error {
	top := d.frames.top()
	if top == nil {
		d.ended = true
		return nil
	}
	if top.closeAfterValue {
		popped, _ := d.frames.pop()
		return d.closeFrame(popped)
	}
	switch top.container {
	case csObjectAwaitingValue:
		top.Field = nil
		top.container = csObjectAwaitingComma
	case csArrayAwaitingValue:
		top.container = csArrayAwaitingComma
	default:
		return d.fail(d.internalError("afterValue in unexpected container state %d", top.container))
	}
	return nil
}

// closeFrame finishes an already-popped frame: emits its closing Sink
// calls (skipped entirely for a suppressed subtree) and then resumes
// whichever frame is now on top, chaining into another closeFrame if
// that parent is itself closeAfterValue (e.g. a Struct/ListValue/
// wrapper frame whose single field was a map or array that just
// closed).
func (d *Driver) closeFrame(frame Frame) error {
	if !frame.suppressed {
		if frame.isSeq {
			if err := d.sink.EndSeq(); err != nil {
				return d.fail(d.internalError("%s", err.Error()))
			}
		} else {
			if err := d.sink.EndMsg(); err != nil {
				return d.fail(d.internalError("%s", err.Error()))
			}
		}
		if frame.wrapped {
			if err := d.sink.EndSubMsg(); err != nil {
				return d.fail(d.internalError("%s", err.Error()))
			}
		}
	}
	parent := d.frames.top()
	if parent == nil {
		d.ended = true
		return nil
	}
	if frame.IsMapEntry {
		parent.container = csObjectAwaitingComma
		return nil
	}
	if parent.closeAfterValue {
		popped, _ := d.frames.pop()
		return d.closeFrame(popped)
	}
	switch parent.container {
	case csObjectAwaitingValue:
		parent.Field = nil
		parent.container = csObjectAwaitingComma
	case csArrayAwaitingValue:
		parent.container = csArrayAwaitingComma
	default:
		return d.fail(d.internalError("closeFrame: unexpected parent state %d", parent.container))
	}
	return nil
}

// enterArrayValue handles a '[' for a (non-map) repeated field.
func (d *Driver) enterArrayValue(f Field) error {
	if err := d.sink.StartSeq(f); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	return d.frames.push(Frame{Field: f, isSeq: true, container: csArrayAwaitingValue})
}

// enterMapValue handles a '{' for a map field: pushes the "repeated
// mapentry" sequence frame (spec §4.7). mapentry.go pushes the
// per-entry frame as each key resolves.
func (d *Driver) enterMapValue(f Field) error {
	if err := d.sink.StartSeq(f); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	return d.frames.push(Frame{
		Msg:       f.Message(),
		MapField:  f,
		IsMap:     true,
		isSeq:     true,
		container: csObjectAwaitingKey,
	})
}

// beginMessageValue dispatches a value bound to a message-kind field,
// branching on the well-known-type predicates (spec §4.8, §4.11-4.12).
// Plain (non-well-known) messages require '{' and push an ordinary
// object frame.
func (d *Driver) beginMessageValue(f Field, b byte, wrapped bool) error {
	m := f.Message()
	switch {
	case m.IsWrapper():
		return d.beginWrapperValue(f, b, wrapped)
	case m.IsValue():
		return d.beginValueOneof(f, b, wrapped)
	case m.IsStruct():
		if b != '{' {
			return d.fail(d.typeMismatch(f, "expected object for google.protobuf.Struct"))
		}
		return d.beginStructValue(f, wrapped)
	case m.IsListValue():
		if b != '[' {
			return d.fail(d.typeMismatch(f, "expected array for google.protobuf.ListValue"))
		}
		return d.beginListValue(f, wrapped)
	case m.IsDuration():
		if b != '"' {
			return d.fail(d.typeMismatch(f, "expected string for google.protobuf.Duration"))
		}
		return d.beginWKTLiteral(f, purposeDuration, wrapped)
	case m.IsTimestamp():
		if b != '"' {
			return d.fail(d.typeMismatch(f, "expected string for google.protobuf.Timestamp"))
		}
		return d.beginWKTLiteral(f, purposeTimestamp, wrapped)
	default:
		if b != '{' {
			return d.fail(d.typeMismatch(f, "expected object"))
		}
		if wrapped {
			if err := d.sink.StartSubMsg(f); err != nil {
				return d.fail(d.internalError("%s", err.Error()))
			}
		}
		if err := d.sink.StartMsg(); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
		return d.frames.push(Frame{Msg: m, wrapped: wrapped, container: csObjectAwaitingKey})
	}
}
