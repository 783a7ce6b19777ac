package b64

import (
	"bytes"
	"testing"
)

func TestDecodeStandardPadded(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"aGVsbG8=": "hello",
		"Zm9vYmFy": "foobar",
		"Zg==":     "f",
		"Zm8=":     "fo",
	}
	for in, want := range cases {
		got, err := Decode([]byte(in), false)
		if err != nil {
			t.Errorf("Decode(%q): %v", in, err)
			continue
		}
		if !bytes.Equal(got, []byte(want)) {
			t.Errorf("Decode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	_, err := Decode([]byte("abcde"), false)
	if err == nil {
		t.Fatal("expected error for input length not a multiple of 4")
	}
}

func TestDecodeRejectsInvalidCharacter(t *testing.T) {
	_, err := Decode([]byte("abc!"), false)
	if err == nil {
		t.Fatal("expected error for invalid base64 character")
	}
}

func TestDecodeRejectsPaddingInNonFinalGroup(t *testing.T) {
	_, err := Decode([]byte("ab==abcd"), false)
	if err == nil {
		t.Fatal("expected error for padding in a non-final group")
	}
}

func TestDecodeRejectsTrailingSingleCharacterGroup(t *testing.T) {
	_, err := Decode([]byte("abcda"), true)
	if err == nil {
		t.Fatal("expected error for a final 1-character group even when unpadded input is allowed")
	}
}

func TestDecodeAllowsUnpaddedWhenConfigured(t *testing.T) {
	got, err := Decode([]byte("Zm8"), true)
	if err != nil {
		t.Fatalf("Decode(unpadded): %v", err)
	}
	if !bytes.Equal(got, []byte("fo")) {
		t.Errorf("Decode(unpadded) = %q, want %q", got, "fo")
	}
}

func TestDecodeRejectsUnpaddedWhenNotConfigured(t *testing.T) {
	_, err := Decode([]byte("Zm8"), false)
	if err == nil {
		t.Fatal("expected error for missing padding when AllowUnpaddedBase64 is false")
	}
}
