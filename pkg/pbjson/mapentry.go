package pbjson

import "github.com/deepankarm/pbjson/pkg/pbjson/internal/numeric"

// completeMapKey is called when a map-field frame's key string closes
// (spec §4.7). It pushes the synthetic mapentry frame -- emitting
// startsubmsg on the map field and startmsg for the entry -- binds the
// entry's value field, and emits the key itself through whichever
// scalar path its kind requires. JSON object keys are always quoted
// text regardless of the map's declared key type, so the interpretation
// happens here rather than through the general string/number/literal
// scanners.
func (d *Driver) completeMapKey(key string) error {
	top := d.frames.top()
	keyField := top.Msg.MapEntryKeyField()
	valueField := top.Msg.MapEntryValueField()

	if err := d.sink.StartSubMsg(top.MapField); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	if err := d.sink.StartMsg(); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	if err := d.emitMapKey(keyField, key); err != nil {
		return err
	}
	return d.frames.push(Frame{
		Msg:             top.Msg,
		Field:           valueField,
		IsMapEntry:      true,
		MapField:        top.MapField,
		wrapped:         true,
		closeAfterValue: true,
		container:       csObjectAwaitingColon,
	})
}

func (d *Driver) emitMapKey(keyField Field, key string) error {
	switch keyField.Kind() {
	case KindString:
		if err := d.sink.StartStr(keyField); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
		if err := d.sink.String([]byte(key)); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
		if err := d.sink.EndStr(); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
		return nil
	case KindBool:
		switch key {
		case "true":
			return d.sinkPutBool(keyField, true)
		case "false":
			return d.sinkPutBool(keyField, false)
		default:
			return d.fail(d.typeMismatch(keyField, "invalid bool map key %q", key))
		}
	case KindInt32, KindInt64, KindUint32, KindUint64:
		return d.emitNumeric(keyField, []byte(key), true)
	default:
		return d.fail(d.internalError("unsupported map key kind for field %q", keyField.Name()))
	}
}

func (d *Driver) sinkPutBool(f Field, v bool) error {
	if err := d.sink.PutBool(f, v); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	return nil
}

// emitNumeric parses raw (quoted tells numeric.Parse whether this text
// came from inside JSON quotes; quoted text for an integer or enum field
// must be a plain integer literal) and emits it through the Put call
// matching f's kind.
func (d *Driver) emitNumeric(f Field, raw []byte, quoted bool) error {
	if f.Kind() == KindEnum {
		v, err := numeric.Parse(raw, quoted, numeric.KindInt32)
		if err != nil {
			return d.fail(newError(KindNumericParse, "field %q: %s", f.Name(), err.Error()))
		}
		return d.wrapSink(d.sink.PutInt32(f, v.Int32))
	}
	kind := numericKindFor(f.Kind())
	v, err := numeric.Parse(raw, quoted, kind)
	if err != nil {
		return d.fail(newError(KindNumericParse, "field %q: %s", f.Name(), err.Error()))
	}
	switch f.Kind() {
	case KindInt32:
		return d.wrapSink(d.sink.PutInt32(f, v.Int32))
	case KindInt64:
		return d.wrapSink(d.sink.PutInt64(f, v.Int64))
	case KindUint32:
		return d.wrapSink(d.sink.PutUint32(f, v.Uint32))
	case KindUint64:
		return d.wrapSink(d.sink.PutUint64(f, v.Uint64))
	case KindFloat:
		return d.wrapSink(d.sink.PutFloat(f, v.Float32))
	case KindDouble:
		return d.wrapSink(d.sink.PutDouble(f, v.Float64))
	default:
		return d.fail(d.internalError("emitNumeric: unsupported kind for field %q", f.Name()))
	}
}

func (d *Driver) wrapSink(err error) error {
	if err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	return nil
}

func numericKindFor(k FieldKind) numeric.Kind {
	switch k {
	case KindInt32:
		return numeric.KindInt32
	case KindInt64:
		return numeric.KindInt64
	case KindUint32:
		return numeric.KindUint32
	case KindUint64:
		return numeric.KindUint64
	case KindFloat:
		return numeric.KindFloat
	default:
		return numeric.KindDouble
	}
}
