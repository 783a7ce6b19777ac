// Package samples builds a small set of application message descriptors
// entirely at runtime via protodesc/descriptorpb, instead of shipping
// generated .pb.go code from a .proto file: the CLI and HTTP layer need
// "a couple of sample application messages" to decode into (SPEC_FULL.md
// §2), and constructing the FileDescriptorProto by hand keeps this
// repository's only protobuf schema dependency on the upstream
// google.golang.org/protobuf library itself, with no protoc invocation
// anywhere in the build.
package samples

import (
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	_ "google.golang.org/protobuf/types/known/timestamppb"
)

const (
	FullNameOrder   = "pbjson.samples.Order"
	FullNameAddress = "pbjson.samples.Address"
)

func strp(s string) *string { return &s }
func i32p(i int32) *int32   { return &i }
func boolp(b bool) *bool    { return &b }

func label(l descriptorpb.FieldDescriptorProto_Label) *descriptorpb.FieldDescriptorProto_Label { return &l }
func ftype(t descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto_Type    { return &t }

func scalarField(name string, num int32, t descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     strp(name),
		Number:   i32p(num),
		Label:    label(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL),
		Type:     ftype(t),
		JsonName: strp(jsonName(name)),
	}
}

func repeatedScalarField(name string, num int32, t descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, num, t)
	f.Label = label(descriptorpb.FieldDescriptorProto_LABEL_REPEATED)
	return f
}

func messageField(name string, num int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, num, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE)
	f.TypeName = strp(typeName)
	return f
}

func enumField(name string, num int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, num, descriptorpb.FieldDescriptorProto_TYPE_ENUM)
	f.TypeName = strp(typeName)
	return f
}

// jsonName lowerCamelCases a snake_case proto field name, matching what
// protoc would otherwise have generated for us.
func jsonName(protoName string) string {
	out := make([]byte, 0, len(protoName))
	upperNext := false
	for i := 0; i < len(protoName); i++ {
		c := protoName[i]
		if c == '_' {
			upperNext = true
			continue
		}
		if upperNext && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upperNext = false
		out = append(out, c)
	}
	return string(out)
}

// statusEnum is Order.status's enum type: an order's lifecycle state.
func statusEnum() *descriptorpb.EnumDescriptorProto {
	return &descriptorpb.EnumDescriptorProto{
		Name: strp("Status"),
		Value: []*descriptorpb.EnumValueDescriptorProto{
			{Name: strp("STATUS_UNSPECIFIED"), Number: i32p(0)},
			{Name: strp("STATUS_PENDING"), Number: i32p(1)},
			{Name: strp("STATUS_SHIPPED"), Number: i32p(2)},
			{Name: strp("STATUS_DELIVERED"), Number: i32p(3)},
		},
	}
}

// addressMessage is a plain nested-message field target: Order.shipping_address.
func addressMessage() *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: strp("Address"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("street", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			scalarField("city", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			scalarField("postal_code", 3, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		},
	}
}

// attributesEntry is the synthetic mapentry type for Order.attributes
// (map<string, string>), built the way protoc itself lowers a proto3 map
// field: a nested message with MapEntry=true and exactly two fields,
// "key" (1) and "value" (2).
func attributesEntry() *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: strp("AttributesEntry"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("key", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			scalarField("value", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		},
		Options: &descriptorpb.MessageOptions{MapEntry: boolp(true)},
	}
}

// orderMessage exercises scalars, a repeated field, a map field, a
// nested message, an enum and a well-known-type (Timestamp) field in one
// message, so the CLI/HTTP sample has something worth decoding.
func orderMessage() *descriptorpb.DescriptorProto {
	attrField := messageField("attributes", 5, ".pbjson.samples.Order.AttributesEntry")
	attrField.Label = label(descriptorpb.FieldDescriptorProto_LABEL_REPEATED)

	return &descriptorpb.DescriptorProto{
		Name: strp("Order"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			scalarField("quantity", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32),
			scalarField("price", 3, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE),
			repeatedScalarField("tags", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			attrField,
			messageField("placed_at", 6, ".google.protobuf.Timestamp"),
			enumField("status", 7, ".pbjson.samples.Status"),
			messageField("shipping_address", 8, ".pbjson.samples.Address"),
		},
		NestedType: []*descriptorpb.DescriptorProto{attributesEntry()},
	}
}

// File builds the pbjson/samples.proto file descriptor, resolving its
// google/protobuf/timestamp.proto dependency against the global registry
// (populated as a side effect of importing
// google.golang.org/protobuf/types/known/timestamppb, which this package
// does with a blank import).
func File() (protoreflect.FileDescriptor, error) {
	fdProto := &descriptorpb.FileDescriptorProto{
		Name:       strp("pbjson/samples.proto"),
		Package:    strp("pbjson.samples"),
		Syntax:     strp("proto3"),
		Dependency: []string{"google/protobuf/timestamp.proto"},
		MessageType: []*descriptorpb.DescriptorProto{
			orderMessage(),
			addressMessage(),
		},
		EnumType: []*descriptorpb.EnumDescriptorProto{
			statusEnum(),
		},
	}
	return protodesc.NewFile(fdProto, protoregistry.GlobalFiles)
}

// Messages returns the Order and Address message descriptors from File.
func Messages() (order, address protoreflect.MessageDescriptor, err error) {
	fd, err := File()
	if err != nil {
		return nil, nil, err
	}
	msgs := fd.Messages()
	for i := 0; i < msgs.Len(); i++ {
		md := msgs.Get(i)
		switch md.Name() {
		case "Order":
			order = md
		case "Address":
			address = md
		}
	}
	return order, address, nil
}
