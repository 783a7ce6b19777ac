package registry

import (
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// RegisterWellKnown adds every google.protobuf.* message the core engine
// special-cases (spec §4.8) -- the wrapper types, Struct/Value/ListValue,
// Duration and Timestamp -- so a registry built for one application's
// messages can still decode any of them directly, or as a field of an
// application message without the caller needing to register them by
// hand.
func (r *Registry) RegisterWellKnown() {
	r.Register((&durationpb.Duration{}).ProtoReflect().Descriptor())
	r.Register((&timestamppb.Timestamp{}).ProtoReflect().Descriptor())
	r.Register((&structpb.Struct{}).ProtoReflect().Descriptor())
	r.Register((&structpb.Value{}).ProtoReflect().Descriptor())
	r.Register((&structpb.ListValue{}).ProtoReflect().Descriptor())
	r.Register((&wrapperspb.BoolValue{}).ProtoReflect().Descriptor())
	r.Register((&wrapperspb.Int32Value{}).ProtoReflect().Descriptor())
	r.Register((&wrapperspb.Int64Value{}).ProtoReflect().Descriptor())
	r.Register((&wrapperspb.UInt32Value{}).ProtoReflect().Descriptor())
	r.Register((&wrapperspb.UInt64Value{}).ProtoReflect().Descriptor())
	r.Register((&wrapperspb.FloatValue{}).ProtoReflect().Descriptor())
	r.Register((&wrapperspb.DoubleValue{}).ProtoReflect().Descriptor())
	r.Register((&wrapperspb.StringValue{}).ProtoReflect().Descriptor())
	r.Register((&wrapperspb.BytesValue{}).ProtoReflect().Descriptor())
}
