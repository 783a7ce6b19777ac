package fsm

import "testing"

func TestStackPushPopOrder(t *testing.T) {
	s := NewStack[int](4)
	for _, v := range []int{1, 2, 3} {
		if err := s.Push(v); err != nil {
			t.Fatalf("Push(%d): %v", v, err)
		}
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	for _, want := range []int{3, 2, 1} {
		v, ok := s.Pop()
		if !ok || v != want {
			t.Fatalf("Pop() = (%d, %v), want (%d, true)", v, ok, want)
		}
	}
	if _, ok := s.Pop(); ok {
		t.Fatal("Pop() on empty stack should report ok=false")
	}
}

func TestStackDepthCeiling(t *testing.T) {
	s := NewStack[int](2)
	if err := s.Push(1); err != nil {
		t.Fatalf("Push 1: %v", err)
	}
	if err := s.Push(2); err != nil {
		t.Fatalf("Push 2: %v", err)
	}
	if err := s.Push(3); err == nil {
		t.Fatal("expected ErrDepthExceeded on the 3rd push into a depth-2 stack")
	} else if _, ok := err.(*ErrDepthExceeded); !ok {
		t.Fatalf("err = %T, want *ErrDepthExceeded", err)
	}
}

func TestStackTopMutatesInPlace(t *testing.T) {
	s := NewStack[int](4)
	_ = s.Push(10)
	top := s.Top()
	*top = 99
	v, _ := s.Pop()
	if v != 99 {
		t.Fatalf("Pop() = %d, want 99 after mutating Top()", v)
	}
}

func TestStackAtWalksBottomToTop(t *testing.T) {
	s := NewStack[int](4)
	_ = s.Push(1)
	_ = s.Push(2)
	_ = s.Push(3)
	for i, want := range []int{1, 2, 3} {
		if got := s.At(i); got == nil || *got != want {
			t.Fatalf("At(%d) = %v, want %d", i, got, want)
		}
	}
	if s.At(3) != nil {
		t.Fatal("At(3) out of range should return nil")
	}
}
