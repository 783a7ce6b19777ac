package protoadapter

import (
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/deepankarm/pbjson/pkg/pbjson"
)

// Descriptor wraps a protoreflect.MessageDescriptor, implementing
// pbjson.Message by delegating to protoreflect's own JSON-name tables
// and well-known-type full names rather than maintaining a second,
// hand-rolled copy of either.
type Descriptor struct {
	md protoreflect.MessageDescriptor
}

// NewDescriptor wraps md as a pbjson.Message.
func NewDescriptor(md protoreflect.MessageDescriptor) *Descriptor {
	return &Descriptor{md: md}
}

// MessageDescriptor returns the wrapped protoreflect descriptor, for
// callers (the registry, the docs walk in ginpbjson) that need to drop
// back down to protoreflect once decoding is done.
func (d *Descriptor) MessageDescriptor() protoreflect.MessageDescriptor { return d.md }

func (d *Descriptor) FullName() string { return string(d.md.FullName()) }

// FieldByJSONName accepts both the JSON name (the default: lowerCamelCase
// of the proto field name, or an explicit json_name override) and the
// bare proto-declared name, per spec §4.9's requirement that both forms
// resolve to the same field.
func (d *Descriptor) FieldByJSONName(name string) (pbjson.Field, bool) {
	fields := d.md.Fields()
	if fd := fields.ByJSONName(name); fd != nil {
		return newField(fd), true
	}
	if fd := fields.ByTextName(name); fd != nil {
		return newField(fd), true
	}
	return nil, false
}

func (d *Descriptor) MapEntryKeyField() pbjson.Field {
	return newField(d.md.Fields().ByNumber(1))
}

func (d *Descriptor) MapEntryValueField() pbjson.Field {
	return newField(d.md.Fields().ByNumber(2))
}

func (d *Descriptor) IsWrapper() bool   { return isWrapperFullName(d.FullName()) }
func (d *Descriptor) IsValue() bool     { return d.FullName() == fullNameValue }
func (d *Descriptor) IsStruct() bool    { return d.FullName() == fullNameStruct }
func (d *Descriptor) IsListValue() bool { return d.FullName() == fullNameListValue }
func (d *Descriptor) IsDuration() bool  { return d.FullName() == fullNameDuration }
func (d *Descriptor) IsTimestamp() bool { return d.FullName() == fullNameTimestamp }
