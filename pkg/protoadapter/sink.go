package protoadapter

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/deepankarm/pbjson/pkg/pbjson"
)

// frameKind selects which field of sinkFrame is meaningful.
type frameKind int

const (
	frameMsg frameKind = iota
	frameList
	frameMap
)

// sinkFrame mirrors the shape of the core engine's own Frame stack (see
// pbjson/frame.go's doc comment on why container nesting and semantic
// nesting coincide): every StartMsg/StartSeq the driver emits pushes
// exactly one of these, and every EndMsg/EndSeq pops it.
type sinkFrame struct {
	kind frameKind

	msg  protoreflect.Message // frameMsg
	list protoreflect.List    // frameList
	mp   protoreflect.Map     // frameMap

	// Set only on a frameMsg standing in for a synthetic mapentry (spec
	// §4.7): msg is a freestanding dynamicpb message of the mapentry
	// type, not yet attached to anything, until EndMsg reads its
	// key/value fields back out and commits them into the enclosing
	// frameMap.
	isMapEntry       bool
	mapEntryKeyField protoreflect.FieldDescriptor
	mapEntryValField protoreflect.FieldDescriptor
}

// Sink wraps a protoreflect.Message -- ordinarily a dynamicpb.Message,
// but any mutable protoreflect.Message implementation works -- and
// implements pbjson.Sink by setting fields as the driver's events
// arrive. Not safe for concurrent use, matching the core engine's own
// single-writer-per-Driver contract.
type Sink struct {
	root protoreflect.Message
	stack []*sinkFrame

	// pendingSub bridges one StartSubMsg call to the StartMsg that
	// always immediately follows it: StartSubMsg decides *where* the
	// new message attaches (a field on the current frameMsg, the next
	// element of the current frameList, or a freestanding mapentry),
	// and StartMsg pushes whatever it prepared.
	pendingSub *sinkFrame

	strField protoreflect.FieldDescriptor
	strBuf   []byte
}

// NewSink returns a Sink that populates root, which must be an empty (or
// partially populated) mutable message -- typically dynamicpb.NewMessage
// for a dynamically-resolved descriptor, or msg.ProtoReflect() for a
// generated message type.
func NewSink(root protoreflect.Message) *Sink {
	return &Sink{root: root}
}

func (s *Sink) top() *sinkFrame {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

func (s *Sink) pop() (*sinkFrame, error) {
	n := len(s.stack)
	if n == 0 {
		return nil, fmt.Errorf("protoadapter: pop on empty frame stack")
	}
	f := s.stack[n-1]
	s.stack = s.stack[:n-1]
	return f, nil
}

func fieldDescriptor(f pbjson.Field) protoreflect.FieldDescriptor {
	af, ok := f.(*Field)
	if !ok || af == nil {
		return nil
	}
	return af.fd
}

func (s *Sink) StartMsg() error {
	if s.pendingSub != nil {
		f := s.pendingSub
		s.pendingSub = nil
		s.stack = append(s.stack, f)
		return nil
	}
	if len(s.stack) != 0 {
		return fmt.Errorf("protoadapter: StartMsg called mid-document with no pending target")
	}
	s.stack = append(s.stack, &sinkFrame{kind: frameMsg, msg: s.root})
	return nil
}

func (s *Sink) EndMsg() error {
	top, err := s.pop()
	if err != nil {
		return err
	}
	if top.kind != frameMsg {
		return fmt.Errorf("protoadapter: EndMsg on a non-message frame")
	}
	if !top.isMapEntry {
		return nil
	}
	parent := s.top()
	if parent == nil || parent.kind != frameMap {
		return fmt.Errorf("protoadapter: mapentry closed with no enclosing map")
	}
	keyVal := top.msg.Get(top.mapEntryKeyField)
	valVal := top.msg.Get(top.mapEntryValField)
	parent.mp.Set(keyVal.MapKey(), valVal)
	return nil
}

// StartSubMsg prepares the target the next StartMsg will push: a
// freestanding mapentry message for a map field (f.IsMap()), a new field
// value on the current message target, or a new appended element on the
// current list target.
func (s *Sink) StartSubMsg(f pbjson.Field) error {
	fd := fieldDescriptor(f)
	if fd == nil {
		return fmt.Errorf("protoadapter: StartSubMsg: field has no protoreflect descriptor")
	}
	if fd.IsMap() {
		entryMD := fd.Message()
		s.pendingSub = &sinkFrame{
			kind:             frameMsg,
			msg:              dynamicpb.NewMessage(entryMD),
			isMapEntry:       true,
			mapEntryKeyField: entryMD.Fields().ByNumber(1),
			mapEntryValField: entryMD.Fields().ByNumber(2),
		}
		return nil
	}
	top := s.top()
	if top == nil {
		return fmt.Errorf("protoadapter: StartSubMsg with empty frame stack")
	}
	switch top.kind {
	case frameMsg:
		s.pendingSub = &sinkFrame{kind: frameMsg, msg: top.msg.Mutable(fd).Message()}
	case frameList:
		s.pendingSub = &sinkFrame{kind: frameMsg, msg: top.list.AppendMutable().Message()}
	default:
		return fmt.Errorf("protoadapter: StartSubMsg on an unexpected frame kind")
	}
	return nil
}

// EndSubMsg is a no-op: the message it brackets was already attached to
// its parent, in place, either by Mutable() (ordinary submessage fields
// and list elements) or by EndMsg's explicit mapentry commit.
func (s *Sink) EndSubMsg() error { return nil }

func (s *Sink) StartSeq(f pbjson.Field) error {
	fd := fieldDescriptor(f)
	if fd == nil {
		return fmt.Errorf("protoadapter: StartSeq: field has no protoreflect descriptor")
	}
	top := s.top()
	if top == nil || top.kind != frameMsg {
		return fmt.Errorf("protoadapter: StartSeq outside a message target")
	}
	if fd.IsMap() {
		s.stack = append(s.stack, &sinkFrame{kind: frameMap, mp: top.msg.Mutable(fd).Map()})
		return nil
	}
	s.stack = append(s.stack, &sinkFrame{kind: frameList, list: top.msg.Mutable(fd).List()})
	return nil
}

func (s *Sink) EndSeq() error {
	top, err := s.pop()
	if err != nil {
		return err
	}
	if top.kind != frameList && top.kind != frameMap {
		return fmt.Errorf("protoadapter: EndSeq on a non-sequence frame")
	}
	return nil
}

func (s *Sink) StartStr(f pbjson.Field) error {
	fd := fieldDescriptor(f)
	if fd == nil {
		return fmt.Errorf("protoadapter: StartStr: field has no protoreflect descriptor")
	}
	s.strField = fd
	s.strBuf = s.strBuf[:0]
	return nil
}

func (s *Sink) String(data []byte) error {
	s.strBuf = append(s.strBuf, data...)
	return nil
}

func (s *Sink) EndStr() error {
	err := s.setValue(s.strField, protoreflect.ValueOfString(string(s.strBuf)))
	s.strField = nil
	s.strBuf = s.strBuf[:0]
	return err
}

// setValue applies v to fd on whichever target is current: Set on a
// message target, Append on a list target.
func (s *Sink) setValue(fd protoreflect.FieldDescriptor, v protoreflect.Value) error {
	top := s.top()
	if top == nil {
		return fmt.Errorf("protoadapter: value emitted with empty frame stack")
	}
	switch top.kind {
	case frameMsg:
		top.msg.Set(fd, v)
	case frameList:
		top.list.Append(v)
	default:
		return fmt.Errorf("protoadapter: value emitted on an unexpected frame kind")
	}
	return nil
}

func (s *Sink) putScalar(f pbjson.Field, v protoreflect.Value) error {
	fd := fieldDescriptor(f)
	if fd == nil {
		return fmt.Errorf("protoadapter: scalar put: field has no protoreflect descriptor")
	}
	return s.setValue(fd, v)
}

func (s *Sink) PutBool(f pbjson.Field, v bool) error {
	return s.putScalar(f, protoreflect.ValueOfBool(v))
}

// PutInt32 also handles enum values (pbjson.Sink's contract: enums are
// always emitted through PutInt32 with the resolved ordinal).
func (s *Sink) PutInt32(f pbjson.Field, v int32) error {
	fd := fieldDescriptor(f)
	if fd == nil {
		return fmt.Errorf("protoadapter: PutInt32: field has no protoreflect descriptor")
	}
	if fd.Kind() == protoreflect.EnumKind {
		return s.setValue(fd, protoreflect.ValueOfEnum(protoreflect.EnumNumber(v)))
	}
	return s.setValue(fd, protoreflect.ValueOfInt32(v))
}

func (s *Sink) PutInt64(f pbjson.Field, v int64) error {
	return s.putScalar(f, protoreflect.ValueOfInt64(v))
}

func (s *Sink) PutUint32(f pbjson.Field, v uint32) error {
	return s.putScalar(f, protoreflect.ValueOfUint32(v))
}

func (s *Sink) PutUint64(f pbjson.Field, v uint64) error {
	return s.putScalar(f, protoreflect.ValueOfUint64(v))
}

func (s *Sink) PutFloat(f pbjson.Field, v float32) error {
	return s.putScalar(f, protoreflect.ValueOfFloat32(v))
}

func (s *Sink) PutDouble(f pbjson.Field, v float64) error {
	return s.putScalar(f, protoreflect.ValueOfFloat64(v))
}

func (s *Sink) PutBytes(f pbjson.Field, v []byte) error {
	return s.putScalar(f, protoreflect.ValueOfBytes(v))
}
