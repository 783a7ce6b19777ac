package pbjson

// FieldKind enumerates the scalar/structural shapes a Field can have,
// the subset of protobuf field kinds the decode engine needs to know
// about to choose a lexical/semantic path. It intentionally does not
// distinguish wire-level variants that share a JSON representation
// (int32/sint32/sfixed32 are all KindInt32; uint32/fixed32 are both
// KindUint32), matching how proto3 JSON itself makes no such
// distinction.
type FieldKind int

const (
	KindInvalid FieldKind = iota
	KindBool
	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindFloat
	KindDouble
	KindString
	KindBytes
	KindEnum
	KindMessage
)

// Field is the read-only view over one protobuf field the engine needs:
// its kind, and how to descend into it when it is a submessage, map, or
// repeated field.
type Field interface {
	// Kind reports this field's scalar/structural kind.
	Kind() FieldKind
	// Name is the field's declared name, for error messages and as a
	// path segment.
	Name() string
	// IsRepeated reports whether JSON arrays are accepted (and the sink
	// should receive startseq/endseq around the emitted values). A map
	// field (IsMap true) is also IsRepeated true at the wire level but
	// is driven through the map choreography (§4.7) instead.
	IsRepeated() bool
	// IsMap reports whether this field is a protobuf map<K,V>, encoded
	// on the wire (and in this engine's frame model) as a repeated
	// mapentry submessage.
	IsMap() bool
	// Message returns the submessage descriptor for KindMessage fields
	// (including map fields, whose Message is the synthetic mapentry
	// type). Returns nil for scalar fields.
	Message() Message
	// EnumValue resolves a symbolic enum name to its integer value.
	// ok is false if name is not a member of this field's enum type.
	// Only meaningful for KindEnum fields.
	EnumValue(name string) (int32, bool)
}

// Message is the read-only view over a protobuf message descriptor the
// engine needs: JSON-name field lookup, well-known-type identification,
// and (for mapentry messages) access to the key/value fields by index.
type Message interface {
	// FullName is the message's fully-qualified protobuf name, e.g.
	// "google.protobuf.Timestamp". Used for well-known-type matching
	// and error-path reporting.
	FullName() string

	// FieldByJSONName resolves a JSON object member name to a Field.
	// Implementations must accept both the proto-declared name and the
	// json_name option when they differ (spec §4.9): both forms are
	// valid input and must return the same Field.
	FieldByJSONName(name string) (Field, bool)

	// MapEntryKeyField and MapEntryValueField return fields 1 and 2 of
	// a mapentry message (spec §6: "access to mapentry key/value fields
	// by index 1/2"). Only meaningful when this Message is itself a
	// mapentry type, i.e. was obtained via Field.Message() of an
	// IsMap() field.
	MapEntryKeyField() Field
	MapEntryValueField() Field

	// Well-known-type predicates. At most one is ever true for a given
	// Message.
	IsWrapper() bool
	IsValue() bool
	IsStruct() bool
	IsListValue() bool
	IsDuration() bool
	IsTimestamp() bool
}
