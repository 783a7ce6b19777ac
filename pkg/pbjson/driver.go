package pbjson

import (
	"unicode/utf8"

	"github.com/deepankarm/pbjson/pkg/pbjson/internal/accum"
	"github.com/deepankarm/pbjson/pkg/pbjson/internal/b64"
)

// scanMode is which lexical sub-machine is currently consuming bytes.
// Between tokens the driver is modeIdle, dispatching on JSON syntax
// characters directly; entering a string/number/literal token switches
// to the matching sub-machine until it completes (spec §2 item 6: a
// lexical state machine with a small number of sub-states, rather than
// one flat table covering every character class at once).
type scanMode int

const (
	modeIdle scanMode = iota
	modeString
	modeNumber
	modeLiteral
)

// stringPurpose records what a string literal currently being scanned
// will become once its closing quote is seen.
type stringPurpose int

const (
	purposeMemberName stringPurpose = iota
	purposeMapKey
	purposeStringField
	purposeBytesField
	purposeEnumName
	purposeQuotedNumber
	purposeDuration
	purposeTimestamp
	purposeSkip
)

// Driver is the streaming decode engine (spec §6): feed it JSON bytes
// in any chunking, and it drives sink as the document's shape resolves
// against root's descriptor. A Driver is not safe for concurrent use;
// StreamDecoder adds the mutex wrapping for callers that need that.
type Driver struct {
	root  Message
	sink  Sink
	opts  Options
	frame Field // synthetic field wrapping root, for the top-level dispatch

	frames *frameStack
	acc    *accum.Accumulator
	mp     *accum.Multipart
	cap    *accum.Capture

	mode scanMode

	started bool
	ended   bool
	status  error

	// string-scan state
	strPurpose           stringPurpose
	strField             Field
	strWrapped           bool
	strEscaping          bool
	strUnicode           bool
	strUnicodeDigits     int
	strUnicodeVal        uint32
	strHighSurrogate     uint32
	strHaveHighSurrogate bool

	// number-scan state
	numSkip bool

	// literal-scan state ("true" / "false" / "null")
	litTarget string
	litPos    int
	litOnDone func() error
}

// rootFieldAdapter lets the root message flow through the same
// dispatchScalarOrMessage path every nested message field uses, as a
// Field bound to a synthetic slot with no name and no enclosing
// StartSubMsg/EndSubMsg pairing.
type rootFieldAdapter struct {
	msg Message
}

func (r *rootFieldAdapter) Kind() FieldKind                { return KindMessage }
func (r *rootFieldAdapter) Name() string                   { return "" }
func (r *rootFieldAdapter) IsRepeated() bool                { return false }
func (r *rootFieldAdapter) IsMap() bool                     { return false }
func (r *rootFieldAdapter) Message() Message                { return r.msg }
func (r *rootFieldAdapter) EnumValue(string) (int32, bool)  { return 0, false }

// Create builds a Driver decoding into root via sink, under opts.
func Create(root Message, sink Sink, opts Options) (*Driver, error) {
	norm, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	acc := accum.New()
	mp := accum.NewMultipart(acc)
	d := &Driver{
		root:   root,
		sink:   sink,
		opts:   norm,
		frames: newFrameStack(norm.MaxDepth),
		acc:    acc,
		mp:     mp,
		cap:    accum.NewCapture(mp),
	}
	d.frame = &rootFieldAdapter{msg: root}
	return d, nil
}

// Feed advances the parse by data, returning how many bytes it
// consumed (always len(data) on success -- the engine never backs off
// a byte once accepted) and the first error encountered, if any. Once
// Feed or End returns an error, the Driver is done: Status reports the
// same error on every subsequent call.
func (d *Driver) Feed(data []byte) (int, error) {
	if d.status != nil {
		return 0, d.status
	}
	i := 0
	n := len(data)
	for i < n {
		var consumed int
		var err error
		switch d.mode {
		case modeString:
			consumed, err = d.scanStringRun(data, i)
		case modeNumber:
			consumed, err = d.scanNumberRun(data, i)
		case modeLiteral:
			consumed, err = d.scanLiteralRun(data, i)
		default:
			consumed, err = d.scanIdleRun(data, i)
		}
		i += consumed
		if err != nil {
			if d.status == nil {
				// A frame push past MaxDepth returns its error directly.
				if pe, ok := err.(*Error); ok {
					err = d.fail(pe)
				} else {
					d.status = err
				}
			}
			return i, err
		}
	}
	if d.cap.Active() {
		if err := d.cap.Suspend(data); err != nil {
			return n, d.fail(newError(KindOutOfMemory, "%s", err.Error()))
		}
	} else if d.mode == modeString && d.mp.Mode() == accum.ModeAccumulate && d.acc.Len() > 0 {
		// Text held before a pending escape may still alias data.
		held := append([]byte(nil), d.acc.Get()...)
		d.acc.Clear()
		if err := d.acc.Append(held, false); err != nil {
			return n, d.fail(newError(KindOutOfMemory, "%s", err.Error()))
		}
	}
	return n, nil
}

// End signals that no more bytes are coming. It is an error to call
// End mid-token or before the root value has closed.
func (d *Driver) End() error {
	if d.status != nil {
		return d.status
	}
	if !d.started {
		return d.fail(d.lexError("empty input"))
	}
	if d.mode != modeIdle {
		return d.fail(d.lexError("unexpected end of input: unterminated token"))
	}
	if !d.ended {
		return d.fail(d.lexError("unexpected end of input: unterminated document"))
	}
	return nil
}

// Status reports the first error encountered, or nil if the Driver is
// still live (or has finished cleanly).
func (d *Driver) Status() error {
	return d.status
}

func (d *Driver) fail(e *Error) error {
	full := d.withPath(e)
	d.status = full
	return full
}

// --- idle (between-token) scanning ---

func isWS(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func (d *Driver) scanIdleRun(data []byte, i int) (int, error) {
	j := i
	for j < len(data) && isWS(data[j]) {
		j++
	}
	if j >= len(data) {
		return j - i, nil
	}
	n := j - i + 1
	if err := d.handleIdleByte(data[j]); err != nil {
		return n, err
	}
	if d.mode == modeNumber || d.mode == modeLiteral {
		// The byte that began a number or literal is its first character.
		return j - i, nil
	}
	return n, nil
}

func (d *Driver) handleIdleByte(b byte) error {
	if !d.started {
		d.started = true
		return d.dispatchScalarOrMessage(d.frame, b, false)
	}
	top := d.frames.top()
	if top == nil {
		return d.fail(d.lexError("unexpected trailing character %q after document", b))
	}
	switch top.container {
	case csObjectAwaitingKey:
		if b == '}' {
			return d.endContainer()
		}
		if b != '"' {
			return d.fail(d.lexError("expected string member name, got %q", b))
		}
		return d.beginMemberNameOrKey()
	case csObjectAwaitingColon:
		if b != ':' {
			return d.fail(d.lexError("expected ':', got %q", b))
		}
		top.container = csObjectAwaitingValue
		return nil
	case csObjectAwaitingValue:
		return d.dispatchFieldValue(top.Field, b)
	case csObjectAwaitingComma:
		if b == '}' {
			return d.endContainer()
		}
		if b != ',' {
			return d.fail(d.lexError("expected ',' or '}', got %q", b))
		}
		top.container = csObjectAwaitingKey
		return nil
	case csArrayAwaitingValue:
		if b == ']' {
			return d.endContainer()
		}
		return d.dispatchElementValue(top.Field, b)
	case csArrayAwaitingComma:
		if b == ']' {
			return d.endContainer()
		}
		if b != ',' {
			return d.fail(d.lexError("expected ',' or ']', got %q", b))
		}
		top.container = csArrayAwaitingValue
		return nil
	default:
		return d.fail(d.internalError("idle dispatch in unexpected state %d", top.container))
	}
}

func (d *Driver) endContainer() error {
	popped, _ := d.frames.pop()
	return d.closeFrame(popped)
}

func (d *Driver) beginMemberNameOrKey() error {
	top := d.frames.top()
	if top.IsMap {
		d.strPurpose = purposeMapKey
	} else {
		d.strPurpose = purposeMemberName
	}
	d.mp.StartAccumulate()
	d.mode = modeString
	return nil
}

// --- string scanning ---

func (d *Driver) beginStringValue(f Field) error {
	switch f.Kind() {
	case KindString:
		d.strPurpose = purposeStringField
		d.strField = f
		if err := d.sink.StartStr(f); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
		d.mp.StartPushEager(textSinkFunc(func(data []byte) error {
			if err := d.sink.String(data); err != nil {
				return d.fail(d.internalError("%s", err.Error()))
			}
			return nil
		}))
	case KindBytes:
		d.strPurpose = purposeBytesField
		d.strField = f
		d.mp.StartAccumulate()
	case KindEnum:
		d.strPurpose = purposeEnumName
		d.strField = f
		d.mp.StartAccumulate()
	case KindInt32, KindInt64, KindUint32, KindUint64, KindFloat, KindDouble:
		d.strPurpose = purposeQuotedNumber
		d.strField = f
		d.mp.StartAccumulate()
	default:
		return d.fail(d.typeMismatch(f, "unexpected string value"))
	}
	d.mode = modeString
	return nil
}

type textSinkFunc func([]byte) error

func (f textSinkFunc) WriteString(data []byte) error { return f(data) }

func (d *Driver) scanStringRun(data []byte, i int) (int, error) {
	if d.strUnicode {
		return d.scanUnicodeEscape(data, i)
	}
	if d.strHaveHighSurrogate && ((d.strEscaping && data[i] != 'u') || (!d.strEscaping && data[i] != '\\')) {
		d.strHaveHighSurrogate = false
		return 1, d.fail(d.lexError("unpaired high surrogate \\u%04x", d.strHighSurrogate))
	}
	if d.strEscaping {
		return d.scanEscapeChar(data, i)
	}
	if !d.cap.Active() {
		d.cap.Begin(i)
	}
	j := i
	for j < len(data) {
		c := data[j]
		if c == '"' || c == '\\' {
			break
		}
		if c < 0x20 {
			return j - i + 1, d.fail(d.lexError("illegal control character %#x in string", c))
		}
		j++
	}
	if j >= len(data) {
		return j - i, nil
	}
	if err := d.cap.End(data, j, true); err != nil {
		return j - i, d.fail(newError(KindOutOfMemory, "%s", err.Error()))
	}
	if data[j] == '"' {
		d.mode = modeIdle
		if err := d.completeString(); err != nil {
			return j - i + 1, err
		}
		return j - i + 1, nil
	}
	d.strEscaping = true
	return j - i + 1, nil
}

func (d *Driver) scanEscapeChar(data []byte, i int) (int, error) {
	c := data[i]
	d.strEscaping = false
	var out byte
	switch c {
	case '"':
		out = '"'
	case '\\':
		out = '\\'
	case '/':
		out = '/'
	case 'b':
		out = '\b'
	case 'f':
		out = '\f'
	case 'n':
		out = '\n'
	case 'r':
		out = '\r'
	case 't':
		out = '\t'
	case 'u':
		d.strUnicode = true
		d.strUnicodeDigits = 0
		d.strUnicodeVal = 0
		return 1, nil
	default:
		return 1, d.fail(d.lexError("invalid escape character %q", c))
	}
	if err := d.mp.Text([]byte{out}, false); err != nil {
		return 1, d.fail(d.internalError("%s", err.Error()))
	}
	return 1, nil
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

func (d *Driver) scanUnicodeEscape(data []byte, i int) (int, error) {
	v, ok := hexVal(data[i])
	if !ok {
		return 1, d.fail(d.lexError("invalid hex digit %q in \\u escape", data[i]))
	}
	d.strUnicodeVal = d.strUnicodeVal<<4 | uint32(v)
	d.strUnicodeDigits++
	if d.strUnicodeDigits < 4 {
		return 1, nil
	}
	d.strUnicode = false
	if err := d.emitUnicodeEscape(d.strUnicodeVal); err != nil {
		return 1, err
	}
	return 1, nil
}

func (d *Driver) emitUnicodeEscape(v uint32) error {
	if d.strHaveHighSurrogate {
		if v < 0xDC00 || v > 0xDFFF {
			return d.fail(d.lexError("unpaired high surrogate \\u%04x", d.strHighSurrogate))
		}
		r := rune(0x10000 + (d.strHighSurrogate-0xD800)<<10 + (v - 0xDC00))
		d.strHaveHighSurrogate = false
		return d.writeRune(r)
	}
	if v >= 0xD800 && v <= 0xDBFF {
		d.strHighSurrogate = v
		d.strHaveHighSurrogate = true
		return nil
	}
	if v >= 0xDC00 && v <= 0xDFFF {
		return d.fail(d.lexError("unpaired low surrogate \\u%04x", v))
	}
	return d.writeRune(rune(v))
}

func (d *Driver) writeRune(r rune) error {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	if err := d.mp.Text(buf[:n], false); err != nil {
		return d.fail(d.internalError("%s", err.Error()))
	}
	return nil
}

func (d *Driver) completeString() error {
	if d.strHaveHighSurrogate {
		d.strHaveHighSurrogate = false
		return d.fail(d.lexError("unpaired high surrogate at end of string"))
	}
	switch d.strPurpose {
	case purposeMemberName:
		name := string(d.mp.Accumulated())
		d.mp.End()
		return d.completeMemberName(name)
	case purposeMapKey:
		key := string(d.mp.Accumulated())
		d.mp.End()
		return d.completeMapKey(key)
	case purposeStringField:
		d.mp.End()
		if err := d.sink.EndStr(); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
		return d.afterValue()
	case purposeBytesField:
		f := d.strField
		raw := append([]byte(nil), d.mp.Accumulated()...)
		d.mp.End()
		decoded, err := b64.Decode(raw, d.opts.AllowUnpaddedBase64)
		if err != nil {
			return d.fail(newError(KindBase64, "field %q: %s", f.Name(), err.Error()))
		}
		if err := d.sink.PutBytes(f, decoded); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
		return d.afterValue()
	case purposeEnumName:
		f := d.strField
		name := string(d.mp.Accumulated())
		d.mp.End()
		ord, ok := f.EnumValue(name)
		if !ok {
			return d.fail(newError(KindEnumUnknown, "field %q: unknown enum name %q", f.Name(), name))
		}
		if err := d.sink.PutInt32(f, ord); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
		return d.afterValue()
	case purposeQuotedNumber:
		f := d.strField
		raw := append([]byte(nil), d.mp.Accumulated()...)
		d.mp.End()
		if err := d.emitNumeric(f, raw, true); err != nil {
			return err
		}
		return d.afterValue()
	case purposeDuration, purposeTimestamp:
		raw := append([]byte(nil), d.mp.Accumulated()...)
		d.mp.End()
		return d.completeWKTLiteral(raw)
	case purposeSkip:
		d.mp.End()
		return d.afterValue()
	default:
		return d.fail(d.internalError("completeString: unknown purpose %d", d.strPurpose))
	}
}

// --- number scanning ---

func isNumberChar(b byte) bool {
	switch b {
	case '-', '+', '.', 'e', 'E', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
		'I', 'N', 'n', 'f', 'i', 't', 'y', 'a':
		return true
	}
	return false
}

func (d *Driver) beginNumberLiteral(f Field) error {
	d.strField = f
	d.numSkip = false
	d.mp.StartAccumulate()
	d.mode = modeNumber
	return nil
}

func (d *Driver) scanNumberRun(data []byte, i int) (int, error) {
	if !d.cap.Active() {
		d.cap.Begin(i)
	}
	j := i
	for j < len(data) && isNumberChar(data[j]) {
		j++
	}
	if j >= len(data) {
		return j - i, nil
	}
	if err := d.cap.End(data, j, true); err != nil {
		return j - i, d.fail(newError(KindOutOfMemory, "%s", err.Error()))
	}
	d.mode = modeIdle
	if err := d.completeNumber(); err != nil {
		return j - i, err
	}
	return j - i, nil
}

func (d *Driver) completeNumber() error {
	if d.numSkip {
		d.numSkip = false
		d.mp.End()
		return d.afterValue()
	}
	f := d.strField
	raw := d.mp.Accumulated()
	err := d.emitNumeric(f, raw, false)
	d.mp.End()
	if err != nil {
		return err
	}
	return d.afterValue()
}

// --- literal scanning ("true" / "false" / "null") ---

func (d *Driver) beginBoolLiteral(f Field, b byte) error {
	target, val := "true", true
	if b == 'f' {
		target, val = "false", false
	}
	d.litTarget = target
	d.litPos = 0
	d.litOnDone = func() error {
		if f.Kind() != KindBool {
			return d.fail(d.typeMismatch(f, "expected bool"))
		}
		if err := d.sink.PutBool(f, val); err != nil {
			return d.fail(d.internalError("%s", err.Error()))
		}
		return d.afterValue()
	}
	d.mode = modeLiteral
	return nil
}

func (d *Driver) beginNullLiteral(onDone func() error) error {
	d.litTarget = "null"
	d.litPos = 0
	d.litOnDone = onDone
	d.mode = modeLiteral
	return nil
}

func (d *Driver) scanLiteralRun(data []byte, i int) (int, error) {
	j := i
	for j < len(data) && d.litPos < len(d.litTarget) {
		if data[j] != d.litTarget[d.litPos] {
			return j - i + 1, d.fail(d.lexError("invalid literal, expected %q", d.litTarget))
		}
		d.litPos++
		j++
	}
	n := j - i
	if d.litPos == len(d.litTarget) {
		d.mode = modeIdle
		onDone := d.litOnDone
		d.litOnDone = nil
		if err := onDone(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// --- unknown-field (suppressed subtree) skipping ---

func (d *Driver) beginSkipValue(b byte) error {
	switch b {
	case '{':
		return d.frames.push(Frame{suppressed: true, container: csObjectAwaitingKey})
	case '[':
		return d.frames.push(Frame{suppressed: true, isSeq: true, container: csArrayAwaitingValue})
	case '"':
		d.strPurpose = purposeSkip
		d.mp.StartAccumulate()
		d.mode = modeString
		return nil
	case 't', 'f':
		target := "true"
		if b == 'f' {
			target = "false"
		}
		d.litTarget = target
		d.litPos = 0
		d.litOnDone = func() error { return d.afterValue() }
		d.mode = modeLiteral
		return nil
	case 'n':
		return d.beginNullLiteral(func() error { return d.afterValue() })
	case '-', '+', '.', 'I', 'N', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		d.numSkip = true
		d.mp.StartAccumulate()
		d.mode = modeNumber
		return nil
	default:
		return d.fail(d.lexError("unexpected character %q", b))
	}
}
