// Package protoadapter implements the pbjson core's Message/Field/Sink
// collaborator interfaces over google.golang.org/protobuf's protoreflect
// and dynamicpb packages, so a caller can decode directly into a real
// protobuf message without writing their own descriptor/sink glue.
package protoadapter

// Well-known-type full names the engine special-cases (spec §4.8).
const (
	fullNameDuration  = "google.protobuf.Duration"
	fullNameTimestamp = "google.protobuf.Timestamp"
	fullNameStruct    = "google.protobuf.Struct"
	fullNameValue     = "google.protobuf.Value"
	fullNameListValue = "google.protobuf.ListValue"

	fullNameBoolValue   = "google.protobuf.BoolValue"
	fullNameInt32Value  = "google.protobuf.Int32Value"
	fullNameInt64Value  = "google.protobuf.Int64Value"
	fullNameUint32Value = "google.protobuf.UInt32Value"
	fullNameUint64Value = "google.protobuf.UInt64Value"
	fullNameFloatValue  = "google.protobuf.FloatValue"
	fullNameDoubleValue = "google.protobuf.DoubleValue"
	fullNameStringValue = "google.protobuf.StringValue"
	fullNameBytesValue  = "google.protobuf.BytesValue"
)

func isWrapperFullName(name string) bool {
	switch name {
	case fullNameBoolValue, fullNameInt32Value, fullNameInt64Value,
		fullNameUint32Value, fullNameUint64Value, fullNameFloatValue,
		fullNameDoubleValue, fullNameStringValue, fullNameBytesValue:
		return true
	}
	return false
}
