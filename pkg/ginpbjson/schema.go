package ginpbjson

import (
	"google.golang.org/protobuf/reflect/protoreflect"
)

// messageSchema builds a JSON-Schema-flavored description of md's
// accepted proto3 JSON shape by walking its protoreflect field tree --
// the same map[string]interface{} shape pkg/schema.Validator.JSONSchema
// returns, built here by walking protobuf field descriptors instead of
// reflecting a Go struct. seen breaks cycles between self-referential
// message types.
func messageSchema(md protoreflect.MessageDescriptor, seen map[string]bool) map[string]any {
	fullName := string(md.FullName())
	if seen[fullName] {
		return map[string]any{"$ref": "#/components/schemas/" + fullName}
	}
	seen[fullName] = true
	defer delete(seen, fullName)

	properties := make(map[string]any)
	required := make([]string, 0)
	fields := md.Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		properties[fd.JSONName()] = fieldSchema(fd, seen)
		if fd.Cardinality() == protoreflect.Required {
			required = append(required, fd.JSONName())
		}
	}

	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// fieldSchema describes one field, honoring repeated/map cardinality
// before falling through to the scalar/message/enum kind mapping.
func fieldSchema(fd protoreflect.FieldDescriptor, seen map[string]bool) map[string]any {
	if fd.IsMap() {
		return map[string]any{
			"type":                 "object",
			"additionalProperties": fieldSchema(fd.MapValue(), seen),
		}
	}
	if fd.IsList() {
		return map[string]any{
			"type":  "array",
			"items": scalarOrMessageSchema(fd, seen),
		}
	}
	return scalarOrMessageSchema(fd, seen)
}

func scalarOrMessageSchema(fd protoreflect.FieldDescriptor, seen map[string]bool) map[string]any {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		switch string(fd.Message().FullName()) {
		case fullNameDurationFull, fullNameTimestampFull:
			return map[string]any{"type": "string", "format": "RFC3339/duration literal"}
		case fullNameStructFull:
			return map[string]any{"type": "object"}
		case fullNameValueFull:
			return map[string]any{}
		case fullNameListValueFull:
			return map[string]any{"type": "array"}
		}
		return messageSchema(fd.Message(), seen)
	case protoreflect.EnumKind:
		values := fd.Enum().Values()
		names := make([]any, values.Len())
		for i := 0; i < values.Len(); i++ {
			names[i] = string(values.Get(i).Name())
		}
		return map[string]any{"type": "string", "enum": names}
	case protoreflect.BytesKind:
		return map[string]any{"type": "string", "format": "base64"}
	default:
		return map[string]any{"type": jsonTypeForKind(fd.Kind())}
	}
}

// jsonTypeForKind maps a protoreflect scalar kind to a JSON Schema type
// name, the proto-descriptor counterpart of reflectutil.JSONSchemaType's
// reflect.Kind switch.
func jsonTypeForKind(k protoreflect.Kind) string {
	switch k {
	case protoreflect.BoolKind:
		return "boolean"
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return "integer"
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		// proto3 JSON encodes 64-bit integers as strings (spec §4.5);
		// documented as string here to match what the wire actually
		// accepts.
		return "string"
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		return "number"
	default:
		return "string"
	}
}

const (
	fullNameDurationFull  = "google.protobuf.Duration"
	fullNameTimestampFull = "google.protobuf.Timestamp"
	fullNameStructFull    = "google.protobuf.Struct"
	fullNameValueFull     = "google.protobuf.Value"
	fullNameListValueFull = "google.protobuf.ListValue"
)
