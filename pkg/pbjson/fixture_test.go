package pbjson_test

import (
	"github.com/deepankarm/pbjson/pkg/pbjson"
)

// fakeField and fakeMessage are a minimal in-memory Message/Field pair,
// built by hand instead of through protoreflect, so the engine's FSM and
// frame-stack logic can be exercised in isolation from protoadapter and
// real descriptors. Schema construction mirrors what protoadapter derives
// from a protoreflect.MessageDescriptor, just expressed as plain structs.
type fakeField struct {
	name     string
	jsonName string
	kind     pbjson.FieldKind
	repeated bool
	isMap    bool
	msg      *fakeMessage
	enum     map[string]int32
}

func (f *fakeField) Kind() pbjson.FieldKind { return f.kind }
func (f *fakeField) Name() string           { return f.name }
func (f *fakeField) IsRepeated() bool       { return f.repeated }
func (f *fakeField) IsMap() bool            { return f.isMap }
func (f *fakeField) Message() pbjson.Message {
	if f.msg == nil {
		return nil
	}
	return f.msg
}
func (f *fakeField) EnumValue(name string) (int32, bool) {
	v, ok := f.enum[name]
	return v, ok
}

type wktKind int

const (
	wktNone wktKind = iota
	wktWrapper
	wktValue
	wktStruct
	wktListValue
	wktDuration
	wktTimestamp
)

type fakeMessage struct {
	fullName string
	byName   map[string]*fakeField
	order    []*fakeField
	wkt      wktKind
	mapKey   *fakeField
	mapValue *fakeField
}

func newFakeMessage(fullName string) *fakeMessage {
	return &fakeMessage{fullName: fullName, byName: make(map[string]*fakeField)}
}

func (m *fakeMessage) addField(f *fakeField) *fakeField {
	m.byName[f.name] = f
	if f.jsonName != "" && f.jsonName != f.name {
		m.byName[f.jsonName] = f
	}
	m.order = append(m.order, f)
	return f
}

func (m *fakeMessage) FullName() string { return m.fullName }

func (m *fakeMessage) FieldByJSONName(name string) (pbjson.Field, bool) {
	f, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return f, true
}

func (m *fakeMessage) MapEntryKeyField() pbjson.Field   { return m.mapKey }
func (m *fakeMessage) MapEntryValueField() pbjson.Field { return m.mapValue }

func (m *fakeMessage) IsWrapper() bool   { return m.wkt == wktWrapper }
func (m *fakeMessage) IsValue() bool     { return m.wkt == wktValue }
func (m *fakeMessage) IsStruct() bool    { return m.wkt == wktStruct }
func (m *fakeMessage) IsListValue() bool { return m.wkt == wktListValue }
func (m *fakeMessage) IsDuration() bool  { return m.wkt == wktDuration }
func (m *fakeMessage) IsTimestamp() bool { return m.wkt == wktTimestamp }

func scalarField(name, jsonName string, kind pbjson.FieldKind) *fakeField {
	return &fakeField{name: name, jsonName: jsonName, kind: kind}
}

func repeatedField(name, jsonName string, kind pbjson.FieldKind) *fakeField {
	f := scalarField(name, jsonName, kind)
	f.repeated = true
	return f
}

func messageField(name, jsonName string, msg *fakeMessage) *fakeField {
	return &fakeField{name: name, jsonName: jsonName, kind: pbjson.KindMessage, msg: msg}
}

func repeatedMessageField(name, jsonName string, msg *fakeMessage) *fakeField {
	f := messageField(name, jsonName, msg)
	f.repeated = true
	return f
}

func enumField(name, jsonName string, values map[string]int32) *fakeField {
	f := scalarField(name, jsonName, pbjson.KindEnum)
	f.enum = values
	return f
}

// wktSecondsNanosMessage builds a synthetic google.protobuf.Timestamp/Duration stand-in
// with the seconds/nanos members completeWKTLiteral looks up by JSON name.
func wktSecondsNanosMessage(fullName string, kind wktKind) *fakeMessage {
	m := newFakeMessage(fullName)
	m.wkt = kind
	m.addField(scalarField("seconds", "seconds", pbjson.KindInt64))
	m.addField(scalarField("nanos", "nanos", pbjson.KindInt32))
	return m
}

// wrapperMessage builds a synthetic google.protobuf.StringValue stand-in.
func wrapperMessage(fullName string, valueKind pbjson.FieldKind) *fakeMessage {
	m := newFakeMessage(fullName)
	m.wkt = wktWrapper
	m.addField(scalarField("value", "value", valueKind))
	return m
}

// mapEntryMessage builds the synthetic mapentry type for a map<string,V> field.
func mapEntryMessage(fullName string, valueField *fakeField) *fakeMessage {
	m := newFakeMessage(fullName)
	key := scalarField("key", "key", pbjson.KindString)
	m.addField(key)
	m.addField(valueField)
	m.mapKey = key
	m.mapValue = valueField
	return m
}

func mapField(name, jsonName string, entry *fakeMessage) *fakeField {
	f := messageField(name, jsonName, entry)
	f.repeated = true
	f.isMap = true
	return f
}

// addressSchema is a plain nested message with two scalar fields.
func addressSchema() *fakeMessage {
	m := newFakeMessage("fixture.Address")
	m.addField(scalarField("street", "street", pbjson.KindString))
	m.addField(scalarField("postal_code", "postalCode", pbjson.KindString))
	return m
}

// newValueFamily builds one google.protobuf.{Value,Struct,ListValue}
// triple with the real mutual recursion those types have (a Value can
// hold a Struct or a ListValue, each of which holds more Values): the
// messages are built in two passes so the cycle can be wired by pointer
// without infinite construction.
func newValueFamily() (value, structMsg, listMsg *fakeMessage) {
	value = newFakeMessage("fixture.Value")
	value.wkt = wktValue
	value.addField(enumField("null_value", "nullValue", map[string]int32{"NULL_VALUE": 0}))
	value.addField(scalarField("number_value", "numberValue", pbjson.KindDouble))
	value.addField(scalarField("string_value", "stringValue", pbjson.KindString))
	value.addField(scalarField("bool_value", "boolValue", pbjson.KindBool))

	structMsg = newFakeMessage("fixture.Struct")
	structMsg.wkt = wktStruct
	entry := mapEntryMessage("fixture.Struct.FieldsEntry", messageField("value", "value", value))
	structMsg.addField(mapField("fields", "fields", entry))

	listMsg = newFakeMessage("fixture.ListValue")
	listMsg.wkt = wktListValue
	listMsg.addField(repeatedMessageField("values", "values", value))

	value.addField(messageField("struct_value", "structValue", structMsg))
	value.addField(messageField("list_value", "listValue", listMsg))
	return value, structMsg, listMsg
}

// recursiveNodeSchema is a self-referential message used only to exercise
// the stack-depth ceiling: a real application schema has a fixed, finite
// nesting depth, but the engine's bound must hold regardless, so the
// depth test needs a schema that can nest arbitrarily deep.
func recursiveNodeSchema() *fakeMessage {
	m := newFakeMessage("fixture.Node")
	child := &fakeField{name: "child", jsonName: "child", kind: pbjson.KindMessage}
	child.msg = m
	m.addField(child)
	m.addField(scalarField("value", "value", pbjson.KindString))
	return m
}

// personSchema is the primary fixture message: it exercises every scalar
// kind, a repeated scalar, a map field, a nested message, an enum, a
// wrapper, a Timestamp, a Duration, a Struct and a ListValue, all in one
// message, the fake-fixture analogue of pkg/samples' Order message.
func personSchema() *fakeMessage {
	m := newFakeMessage("fixture.Person")
	m.addField(scalarField("name", "name", pbjson.KindString))
	m.addField(scalarField("age", "age", pbjson.KindInt32))
	m.addField(scalarField("balance", "balance", pbjson.KindInt64))
	m.addField(scalarField("ident", "ident", pbjson.KindUint32))
	m.addField(scalarField("big_ident", "bigIdent", pbjson.KindUint64))
	m.addField(scalarField("ratio", "ratio", pbjson.KindFloat))
	m.addField(scalarField("score", "score", pbjson.KindDouble))
	m.addField(scalarField("active", "active", pbjson.KindBool))
	m.addField(scalarField("raw", "raw", pbjson.KindBytes))
	m.addField(repeatedField("tags", "tags", pbjson.KindString))
	m.addField(enumField("status", "status", map[string]int32{
		"UNKNOWN": 0, "ACTIVE": 1, "INACTIVE": 2,
	}))
	attrsEntry := mapEntryMessage("fixture.Person.AttributesEntry", scalarField("value", "value", pbjson.KindString))
	m.addField(mapField("attributes", "attributes", attrsEntry))
	m.addField(messageField("address", "address", addressSchema()))
	m.addField(repeatedMessageField("addresses", "addresses", addressSchema()))
	m.addField(messageField("nickname", "nickname", wrapperMessage("fixture.StringValue", pbjson.KindString)))
	m.addField(messageField("joined_at", "joinedAt", wktSecondsNanosMessage("fixture.Timestamp", wktTimestamp)))
	m.addField(messageField("ttl", "ttl", wktSecondsNanosMessage("fixture.Duration", wktDuration)))
	value, structMsg, listMsg := newValueFamily()
	m.addField(messageField("meta", "meta", structMsg))
	m.addField(messageField("favs", "favs", listMsg))
	m.addField(messageField("anything", "anything", value))
	return m
}
