package pbjson_test

import (
	"fmt"

	"github.com/deepankarm/pbjson/pkg/pbjson"
)

// recNode is one container the recSink is currently building: either a
// JSON-object-shaped map (attachKind keyed by field name) or an array
// (attachKind append), tracked independently of the engine's own Frame
// stack so the test can check the two converge on the same shape without
// sharing any state with the driver under test.
type recNode struct {
	isArr     bool
	obj       map[string]any
	arr       []any
	attachKey string
	attach    attachKind
}

type attachKind int

const (
	attachRoot attachKind = iota
	attachKeyed
	attachAppend
)

// recSink is a fake pbjson.Sink that records every event into an ordered
// log (for invariant checks: paired start/end events, call ordering) and
// into a plain Go value tree (for content checks), without ever importing
// protoreflect -- the point being to test the engine's FSM/frame-stack
// behavior in total isolation from the real protoadapter implementation.
type recSink struct {
	log    []string
	stack  []*recNode
	result any

	pendingSubField string

	strField pbjson.Field
	strBuf   []byte
}

func newRecSink() *recSink { return &recSink{} }

// msgAttachKind decides how the object about to be pushed by StartMsg
// should be attached once it closes: keyed by the field name a preceding
// StartSubMsg recorded, or appended if the enclosing container is an
// array (a repeated-of-message element, or a mapentry inside a map's
// synthetic sequence), or as the final result if this is the root.
func (s *recSink) msgAttachKind() (attachKind, string) {
	if len(s.stack) == 0 {
		return attachRoot, ""
	}
	if s.stack[len(s.stack)-1].isArr {
		return attachAppend, ""
	}
	return attachKeyed, s.pendingSubField
}

// seqAttachKind is the StartSeq(f) counterpart: f itself names the field,
// there is no preceding StartSubMsg to consult.
func (s *recSink) seqAttachKind(f pbjson.Field) (attachKind, string) {
	if len(s.stack) == 0 {
		return attachRoot, ""
	}
	if s.stack[len(s.stack)-1].isArr {
		return attachAppend, ""
	}
	return attachKeyed, f.Name()
}

func (s *recSink) finish(value any) {
	if len(s.stack) == 0 {
		s.result = value
		return
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	switch top.attach {
	case attachRoot:
		s.result = value
	case attachAppend:
		parent := s.stack[len(s.stack)-1]
		parent.arr = append(parent.arr, value)
	case attachKeyed:
		parent := s.stack[len(s.stack)-1]
		parent.obj[top.attachKey] = value
	}
}

func (s *recSink) attachScalar(fieldName string, value any) {
	s.log = append(s.log, fmt.Sprintf("scalar:%s=%v", fieldName, value))
	if len(s.stack) == 0 {
		s.result = value
		return
	}
	top := s.stack[len(s.stack)-1]
	if top.isArr {
		top.arr = append(top.arr, value)
		return
	}
	top.obj[fieldName] = value
}

func (s *recSink) StartMsg() error {
	s.log = append(s.log, "StartMsg")
	kind, key := s.msgAttachKind()
	s.pendingSubField = ""
	s.stack = append(s.stack, &recNode{obj: map[string]any{}, attach: kind, attachKey: key})
	return nil
}

func (s *recSink) EndMsg() error {
	s.log = append(s.log, "EndMsg")
	top := s.stack[len(s.stack)-1]
	s.finish(top.obj)
	return nil
}

func (s *recSink) StartSeq(f pbjson.Field) error {
	s.log = append(s.log, "StartSeq:"+f.Name())
	kind, key := s.seqAttachKind(f)
	s.stack = append(s.stack, &recNode{isArr: true, arr: []any{}, attach: kind, attachKey: key})
	return nil
}

func (s *recSink) EndSeq() error {
	s.log = append(s.log, "EndSeq")
	top := s.stack[len(s.stack)-1]
	s.finish(top.arr)
	return nil
}

func (s *recSink) StartSubMsg(f pbjson.Field) error {
	s.log = append(s.log, "StartSubMsg:"+f.Name())
	s.pendingSubField = f.Name()
	return nil
}

func (s *recSink) EndSubMsg() error {
	s.log = append(s.log, "EndSubMsg")
	return nil
}

func (s *recSink) StartStr(f pbjson.Field) error {
	s.log = append(s.log, "StartStr:"+f.Name())
	s.strField = f
	s.strBuf = nil
	return nil
}

func (s *recSink) String(data []byte) error {
	s.strBuf = append(s.strBuf, data...)
	return nil
}

func (s *recSink) EndStr() error {
	s.log = append(s.log, "EndStr")
	s.attachScalar(s.strField.Name(), string(s.strBuf))
	s.strField = nil
	s.strBuf = nil
	return nil
}

func (s *recSink) PutBool(f pbjson.Field, v bool) error     { s.attachScalar(f.Name(), v); return nil }
func (s *recSink) PutInt32(f pbjson.Field, v int32) error   { s.attachScalar(f.Name(), v); return nil }
func (s *recSink) PutInt64(f pbjson.Field, v int64) error   { s.attachScalar(f.Name(), v); return nil }
func (s *recSink) PutUint32(f pbjson.Field, v uint32) error { s.attachScalar(f.Name(), v); return nil }
func (s *recSink) PutUint64(f pbjson.Field, v uint64) error { s.attachScalar(f.Name(), v); return nil }
func (s *recSink) PutFloat(f pbjson.Field, v float32) error { s.attachScalar(f.Name(), v); return nil }
func (s *recSink) PutDouble(f pbjson.Field, v float64) error {
	s.attachScalar(f.Name(), v)
	return nil
}
func (s *recSink) PutBytes(f pbjson.Field, v []byte) error {
	s.attachScalar(f.Name(), append([]byte(nil), v...))
	return nil
}

var _ pbjson.Sink = (*recSink)(nil)
