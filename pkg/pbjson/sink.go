package pbjson

// Sink is the write-only event stream the engine drives as it parses
// (spec §6). Its implementation is opaque to the engine; protoadapter
// provides one concrete implementation backed by protoreflect.Message.
//
// Calls arrive in strict document order (spec §5): within a message,
// fields are emitted in the order they appear in the JSON, not
// schema/declaration order. Every StartMsg has exactly one matching
// EndMsg at the same depth, and likewise StartSeq/EndSeq,
// StartStr/EndStr, StartSubMsg/EndSubMsg (spec §8).
type Sink interface {
	// StartMsg/EndMsg bracket a message -- the root message, a
	// submessage reached via StartSubMsg, or a synthetic message
	// synthesized for a well-known type or mapentry.
	StartMsg() error
	EndMsg() error

	// StartSeq/EndSeq bracket a repeated field's values, including the
	// synthetic "repeated mapentry" sequence the engine wraps a map
	// field in (spec §4.7).
	StartSeq(f Field) error
	EndSeq() error

	// StartSubMsg/EndSubMsg bracket a submessage-valued field (a plain
	// message field, a mapentry within a map's sequence, or the
	// nested message a repeated-of-message emits one element through).
	StartSubMsg(f Field) error
	EndSubMsg() error

	// StartStr/String/EndStr bracket a string field's value, accepting
	// one or more String calls in between so push-eager multipart text
	// (spec §4.2) can stream runs through without buffering the whole
	// value first. data is valid only for the duration of the call.
	StartStr(f Field) error
	String(data []byte) error
	EndStr() error

	// Typed scalar puts. PutInt32 is also used for enum values (spec
	// §6): the engine resolves a symbolic enum name via
	// Field.EnumValue before calling PutInt32 with the resulting
	// ordinal, or parses/emits a literal JSON integer directly.
	PutBool(f Field, v bool) error
	PutInt32(f Field, v int32) error
	PutInt64(f Field, v int64) error
	PutUint32(f Field, v uint32) error
	PutUint64(f Field, v uint64) error
	PutFloat(f Field, v float32) error
	PutDouble(f Field, v float64) error
	PutBytes(f Field, v []byte) error
}
