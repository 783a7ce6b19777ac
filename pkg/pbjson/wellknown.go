package pbjson

// wellknown.go orchestrates the JSON-shape departures proto3 defines for
// a handful of google.protobuf.* messages (spec §4.8). Each function
// below is entered from beginMessageValue once the relevant IsXxx
// predicate on the field's Message descriptor has matched, and pushes
// whatever synthetic frame(s) are needed so the rest of the engine
// (afterValue, closeFrame) can treat the well-known shape as
// just another field with exactly the members it needs.

// beginWrapperValue handles google.protobuf.{Bool,Int32,...}Value. Both
// JSON shapes are accepted: the bare scalar shorthand, and the regular
// {"value": ...} object form (dispatched identically to any other
// message field, since IsWrapper messages are real messages with a
// single "value" field).
func (d *Driver) beginWrapperValue(f Field, b byte, wrapped bool) error {
	if b == '{' {
		if wrapped {
			if err := d.sink.StartSubMsg(f); err != nil {
				return d.fail(d.internalError("%s", err.Error()))
			}
		}
		if err := d.sink.StartMsg(); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
		return d.frames.push(Frame{Msg: f.Message(), wrapped: wrapped, container: csObjectAwaitingKey})
	}
	valueField, ok := f.Message().FieldByJSONName("value")
	if !ok {
		return d.fail(d.internalError("wrapper message %s has no value field", f.Message().FullName()))
	}
	if wrapped {
		if err := d.sink.StartSubMsg(f); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
	}
	if err := d.sink.StartMsg(); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	if err := d.frames.push(Frame{Msg: f.Message(), Field: valueField, wrapped: wrapped, closeAfterValue: true}); err != nil {
		return err
	}
	return d.dispatchScalarOrMessage(valueField, b, true)
}

// beginValueOneof handles google.protobuf.Value: the lookahead byte b
// picks which of its six oneof members is populated (spec §4.11).
func (d *Driver) beginValueOneof(f Field, b byte, wrapped bool) error {
	m := f.Message()
	if wrapped {
		if err := d.sink.StartSubMsg(f); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
	}
	if err := d.sink.StartMsg(); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	var memberName string
	switch b {
	case '"':
		memberName = "string_value"
	case 't', 'f':
		memberName = "bool_value"
	case 'n':
		memberName = "null_value"
	case '{':
		memberName = "struct_value"
	case '[':
		memberName = "list_value"
	default:
		memberName = "number_value"
	}
	member, ok := m.FieldByJSONName(memberName)
	if !ok {
		return d.fail(d.internalError("%s has no %s field", m.FullName(), memberName))
	}
	if err := d.frames.push(Frame{Msg: m, Field: member, wrapped: wrapped, closeAfterValue: true}); err != nil {
		return err
	}
	if memberName == "null_value" {
		return d.beginNullLiteral(func() error {
			if err := d.sink.PutInt32(member, 0); err != nil {
				return d.fail(d.internalError("%s", err.Error()))
			}
			return d.afterValue()
		})
	}
	return d.dispatchScalarOrMessage(member, b, true)
}

// beginStructValue handles google.protobuf.Struct by redirecting into
// its single "fields" member, a map<string, Value>.
func (d *Driver) beginStructValue(f Field, wrapped bool) error {
	m := f.Message()
	if wrapped {
		if err := d.sink.StartSubMsg(f); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
	}
	if err := d.sink.StartMsg(); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	fieldsField, ok := m.FieldByJSONName("fields")
	if !ok {
		return d.fail(d.internalError("%s has no fields member", m.FullName()))
	}
	if err := d.frames.push(Frame{Msg: m, Field: fieldsField, wrapped: wrapped, closeAfterValue: true}); err != nil {
		return err
	}
	return d.enterMapValue(fieldsField)
}

// beginListValue handles google.protobuf.ListValue by redirecting into
// its single "values" member, a repeated Value.
func (d *Driver) beginListValue(f Field, wrapped bool) error {
	m := f.Message()
	if wrapped {
		if err := d.sink.StartSubMsg(f); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
	}
	if err := d.sink.StartMsg(); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	valuesField, ok := m.FieldByJSONName("values")
	if !ok {
		return d.fail(d.internalError("%s has no values member", m.FullName()))
	}
	if err := d.frames.push(Frame{Msg: m, Field: valuesField, wrapped: wrapped, closeAfterValue: true}); err != nil {
		return err
	}
	return d.enterArrayValue(valuesField)
}

// beginWKTLiteral starts string-scanning a Duration or Timestamp
// literal. Neither type ever has nested JSON structure, so no frame is
// pushed; the pending field/purpose/wrapped triple is recorded directly
// on the Driver and consumed by completeWKTLiteral once the closing
// quote is seen.
func (d *Driver) beginWKTLiteral(f Field, purpose stringPurpose, wrapped bool) error {
	d.strField = f
	d.strWrapped = wrapped
	d.strPurpose = purpose
	d.mp.StartAccumulate()
	d.mode = modeString
	return nil
}

// completeWKTLiteral parses the accumulated Duration/Timestamp text and
// synthesizes its seconds/nanos members, then resumes the parent frame
// exactly as if an ordinary field value had just completed.
func (d *Driver) completeWKTLiteral(text []byte) error {
	f := d.strField
	m := f.Message()
	var seconds int64
	var nanos int32
	var err error
	if d.strPurpose == purposeDuration {
		seconds, nanos, err = parseDuration(string(text))
		if err != nil {
			return d.fail(newError(KindDuration, "%s", err.Error()))
		}
	} else {
		seconds, nanos, err = parseTimestamp(string(text))
		if err != nil {
			return d.fail(newError(KindTimestamp, "%s", err.Error()))
		}
	}
	secondsField, ok1 := m.FieldByJSONName("seconds")
	nanosField, ok2 := m.FieldByJSONName("nanos")
	if !ok1 || !ok2 {
		return d.fail(d.internalError("%s missing seconds/nanos fields", m.FullName()))
	}
	if d.strWrapped {
		if err := d.sink.StartSubMsg(f); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
	}
	if err := d.sink.StartMsg(); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	if err := d.sink.PutInt64(secondsField, seconds); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	if err := d.sink.PutInt32(nanosField, nanos); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	if err := d.sink.EndMsg(); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	if d.strWrapped {
		if err := d.sink.EndSubMsg(); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
	}
	return d.afterValue()
}
