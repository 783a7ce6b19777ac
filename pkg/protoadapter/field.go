package protoadapter

import (
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/deepankarm/pbjson/pkg/pbjson"
)

// Field wraps a protoreflect.FieldDescriptor, implementing pbjson.Field.
type Field struct {
	fd protoreflect.FieldDescriptor
}

// newField wraps fd, or returns a nil pbjson.Field (not a typed nil
// pointer inside a non-nil interface) when fd itself is nil -- callers
// compare the return value against nil (e.g. pbjson's isUnknown), so a
// typed-nil *Field would defeat that check.
func newField(fd protoreflect.FieldDescriptor) pbjson.Field {
	if fd == nil {
		return nil
	}
	return &Field{fd: fd}
}

// FieldDescriptor returns the wrapped protoreflect descriptor.
func (f *Field) FieldDescriptor() protoreflect.FieldDescriptor { return f.fd }

func (f *Field) Kind() pbjson.FieldKind {
	switch f.fd.Kind() {
	case protoreflect.BoolKind:
		return pbjson.KindBool
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return pbjson.KindInt32
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return pbjson.KindInt64
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return pbjson.KindUint32
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return pbjson.KindUint64
	case protoreflect.FloatKind:
		return pbjson.KindFloat
	case protoreflect.DoubleKind:
		return pbjson.KindDouble
	case protoreflect.StringKind:
		return pbjson.KindString
	case protoreflect.BytesKind:
		return pbjson.KindBytes
	case protoreflect.EnumKind:
		return pbjson.KindEnum
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return pbjson.KindMessage
	default:
		return pbjson.KindInvalid
	}
}

func (f *Field) Name() string     { return string(f.fd.Name()) }
func (f *Field) IsRepeated() bool { return f.fd.Cardinality() == protoreflect.Repeated }
func (f *Field) IsMap() bool      { return f.fd.IsMap() }

func (f *Field) Message() pbjson.Message {
	switch f.fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return NewDescriptor(f.fd.Message())
	default:
		return nil
	}
}

func (f *Field) EnumValue(name string) (int32, bool) {
	if f.fd.Kind() != protoreflect.EnumKind {
		return 0, false
	}
	ev := f.fd.Enum().Values().ByName(protoreflect.Name(name))
	if ev == nil {
		return 0, false
	}
	return int32(ev.Number()), true
}
