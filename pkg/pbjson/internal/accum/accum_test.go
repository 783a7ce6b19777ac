package accum

import (
	"bytes"
	"errors"
	"testing"
)

func TestAccumulatorAliasedSingleAppend(t *testing.T) {
	a := New()
	buf := []byte("hello")
	if err := a.Append(buf, true); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got := a.Get(); !bytes.Equal(got, []byte("hello")) {
		t.Errorf("Get() = %q, want %q", got, "hello")
	}
	if a.Len() != 5 {
		t.Errorf("Len() = %d, want 5", a.Len())
	}
}

func TestAccumulatorAliasedThenAppendCopies(t *testing.T) {
	a := New()
	first := []byte("ab")
	if err := a.Append(first, true); err != nil {
		t.Fatalf("Append 1: %v", err)
	}
	// Mutate the caller's buffer after handing it over as an alias: since
	// a second Append below forces a copy, this mutation must not leak
	// into the accumulator's held region once the copy has happened.
	second := []byte("cd")
	if err := a.Append(second, true); err != nil {
		t.Fatalf("Append 2: %v", err)
	}
	first[0] = 'X'
	if got := a.Get(); !bytes.Equal(got, []byte("abcd")) {
		t.Errorf("Get() = %q, want %q (should be unaffected by later mutation of first buffer)", got, "abcd")
	}
}

func TestAccumulatorEmptyStateInitially(t *testing.T) {
	a := New()
	if a.Len() != 0 {
		t.Errorf("Len() = %d, want 0", a.Len())
	}
	if got := a.Get(); got != nil {
		t.Errorf("Get() on empty accumulator = %q, want nil", got)
	}
}

func TestAccumulatorClearResetsButRetainsCapacity(t *testing.T) {
	a := New()
	if err := a.Append([]byte("x"), false); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := a.Append([]byte("y"), false); err != nil {
		t.Fatalf("Append: %v", err)
	}
	a.Clear()
	if a.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", a.Len())
	}
	if got := a.Get(); got != nil {
		t.Errorf("Get() after Clear = %q, want nil", got)
	}
	if err := a.Append([]byte("z"), false); err != nil {
		t.Fatalf("Append after Clear: %v", err)
	}
	if got := a.Get(); !bytes.Equal(got, []byte("z")) {
		t.Errorf("Get() = %q, want %q", got, "z")
	}
}

func TestAccumulatorGrowsAcrossManyAppends(t *testing.T) {
	a := New()
	chunk := bytes.Repeat([]byte("a"), 100)
	var want []byte
	for i := 0; i < 5; i++ {
		if err := a.Append(chunk, false); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
		want = append(want, chunk...)
	}
	if got := a.Get(); !bytes.Equal(got, want) {
		t.Errorf("Get() length = %d, want %d", len(got), len(want))
	}
}

func TestAccumulatorEmptyAppendIsNoop(t *testing.T) {
	a := New()
	if err := a.Append([]byte("value"), true); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := a.Append(nil, true); err != nil {
		t.Fatalf("Append nil: %v", err)
	}
	if got := a.Get(); !bytes.Equal(got, []byte("value")) {
		t.Errorf("Get() = %q, want %q", got, "value")
	}
}

// captureTarget is a recording Writer for Capture tests.
type captureTarget struct {
	segments [][]byte
	aliased  []bool
}

func (c *captureTarget) Text(data []byte, canAlias bool) error {
	c.segments = append(c.segments, append([]byte(nil), data...))
	c.aliased = append(c.aliased, canAlias)
	return nil
}

func TestCaptureBeginEndWithinOneBuffer(t *testing.T) {
	target := &captureTarget{}
	c := NewCapture(target)
	buf := []byte(`"hello"`)
	c.Begin(1)
	if !c.Active() {
		t.Fatal("Active() = false after Begin")
	}
	if err := c.End(buf, 6, true); err != nil {
		t.Fatalf("End: %v", err)
	}
	if c.Active() {
		t.Fatal("Active() = true after End")
	}
	if len(target.segments) != 1 || !bytes.Equal(target.segments[0], []byte("hello")) {
		t.Fatalf("segments = %v, want [hello]", target.segments)
	}
	if !target.aliased[0] {
		t.Error("aliased[0] = false, want true (canAlias was true)")
	}
}

func TestCaptureSuspendAndResumeAcrossBuffers(t *testing.T) {
	target := &captureTarget{}
	c := NewCapture(target)

	buf1 := []byte(`"abc`)
	c.Begin(1)
	if err := c.Suspend(buf1); err != nil {
		t.Fatalf("Suspend: %v", err)
	}
	if !c.Active() {
		t.Fatal("Active() should remain true across a Suspend (capture continues on the next buffer)")
	}

	buf2 := []byte(`def"`)
	c.Begin(0)
	if err := c.End(buf2, 3, true); err != nil {
		t.Fatalf("End: %v", err)
	}

	if len(target.segments) != 2 {
		t.Fatalf("segments = %v, want 2 entries", target.segments)
	}
	if !bytes.Equal(target.segments[0], []byte("abc")) {
		t.Errorf("segments[0] = %q, want %q", target.segments[0], "abc")
	}
	if !bytes.Equal(target.segments[1], []byte("def")) {
		t.Errorf("segments[1] = %q, want %q", target.segments[1], "def")
	}
	if target.aliased[0] {
		t.Error("aliased[0] = true, want false (Suspend must always copy, buf1 does not outlive the call)")
	}
}

func TestCaptureAbandonDropsContent(t *testing.T) {
	target := &captureTarget{}
	c := NewCapture(target)
	c.Begin(0)
	c.Abandon()
	if c.Active() {
		t.Fatal("Active() = true after Abandon")
	}
	if len(target.segments) != 0 {
		t.Errorf("segments = %v, want none flushed after Abandon", target.segments)
	}
}

func TestMultipartInactiveRejectsText(t *testing.T) {
	m := NewMultipart(New())
	if m.Mode() != ModeInactive {
		t.Fatalf("Mode() = %v, want ModeInactive", m.Mode())
	}
	err := m.Text([]byte("x"), true)
	if !errors.Is(err, ErrInactive) {
		t.Fatalf("Text() error = %v, want ErrInactive", err)
	}
}

func TestMultipartAccumulateMode(t *testing.T) {
	m := NewMultipart(New())
	m.StartAccumulate()
	if m.Mode() != ModeAccumulate {
		t.Fatalf("Mode() = %v, want ModeAccumulate", m.Mode())
	}
	if err := m.Text([]byte("foo"), false); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if err := m.Text([]byte("bar"), false); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got := m.Accumulated(); !bytes.Equal(got, []byte("foobar")) {
		t.Errorf("Accumulated() = %q, want %q", got, "foobar")
	}
	m.End()
	if m.Mode() != ModeInactive {
		t.Fatalf("Mode() after End = %v, want ModeInactive", m.Mode())
	}
	if got := m.Accumulated(); len(got) != 0 {
		t.Errorf("Accumulated() after End = %q, want empty", got)
	}
}

// pushEagerSink records WriteString calls for push-eager mode tests.
type pushEagerSink struct {
	chunks [][]byte
}

func (p *pushEagerSink) WriteString(data []byte) error {
	p.chunks = append(p.chunks, append([]byte(nil), data...))
	return nil
}

func TestMultipartPushEagerMode(t *testing.T) {
	sink := &pushEagerSink{}
	m := NewMultipart(New())
	m.StartPushEager(sink)
	if m.Mode() != ModePushEager {
		t.Fatalf("Mode() = %v, want ModePushEager", m.Mode())
	}
	if err := m.Text([]byte("chunk1"), true); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if err := m.Text([]byte("chunk2"), true); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if len(sink.chunks) != 2 {
		t.Fatalf("sink got %d chunks, want 2", len(sink.chunks))
	}
	if !bytes.Equal(sink.chunks[0], []byte("chunk1")) || !bytes.Equal(sink.chunks[1], []byte("chunk2")) {
		t.Errorf("sink.chunks = %v", sink.chunks)
	}
	// Push-eager mode never buffers into the accumulator.
	if got := m.Accumulated(); len(got) != 0 {
		t.Errorf("Accumulated() in push-eager mode = %q, want empty", got)
	}
}

func TestMultipartRestartClearsPriorRun(t *testing.T) {
	m := NewMultipart(New())
	m.StartAccumulate()
	if err := m.Text([]byte("stale"), false); err != nil {
		t.Fatalf("Text: %v", err)
	}
	m.StartAccumulate()
	if got := m.Accumulated(); len(got) != 0 {
		t.Errorf("Accumulated() right after restart = %q, want empty", got)
	}
	if err := m.Text([]byte("fresh"), false); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got := m.Accumulated(); !bytes.Equal(got, []byte("fresh")) {
		t.Errorf("Accumulated() = %q, want %q", got, "fresh")
	}
}
