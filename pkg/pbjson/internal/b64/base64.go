// Package b64 implements the base64 decoding rules spec §4.6 requires for
// proto3 JSON `bytes` fields: a 256-entry signed lookup table, strict
// final-chunk-only padding, and hard failure on any mid-chunk invalid
// character or wrong-length input.
//
// This is a small hand-rolled decoder rather than encoding/base64,
// because the spec's error taxonomy distinguishes "invalid character"
// from "invalid padding" from "wrong length" as three separately
// reported conditions (perror.KindBase64 with different messages); the
// standard library's Decoder collapses all three into one
// CorruptInputError without that distinction, and proto3 JSON decoders
// are expected to report which failure mode occurred. See DESIGN.md.
package b64

import "fmt"

const invalid = -1

// decodeTable maps a base64 character to its 6-bit value, or invalid
// for any byte that is not part of the standard (RFC 4648 §4) alphabet.
var decodeTable = buildTable()

func buildTable() [256]int8 {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	var t [256]int8
	for i := range t {
		t[i] = invalid
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = int8(i)
	}
	return t
}

// Error describes why a base64 value was rejected.
type Error struct {
	Text string
}

func (e *Error) Error() string { return e.Text }

func errf(format string, args ...any) *Error {
	return &Error{Text: fmt.Sprintf(format, args...)}
}

// Decode decodes s (the full accumulated string value of a `bytes`
// field) as standard base64. When allowUnpadded is false (the default),
// s's length must be a multiple of 4 and padding ('=') is legal only in
// the final chunk, either "XX==" (1 output byte) or "XXX=" (2 output
// bytes). When allowUnpadded is true, a final chunk shorter than 4
// characters (length mod 4 of 2 or 3, with no trailing '=') is accepted
// as if the missing '=' padding were present; a final-chunk remainder of
// exactly 1 character is never valid in either mode.
func Decode(s []byte, allowUnpadded bool) ([]byte, error) {
	if len(s) == 0 {
		return nil, nil
	}
	if !allowUnpadded && len(s)%4 != 0 {
		return nil, errf("base64 input length %d is not a multiple of 4", len(s))
	}
	if rem := len(s) % 4; rem == 1 {
		return nil, errf("base64 input has a trailing group of 1 character, which is never valid")
	}

	out := make([]byte, 0, (len(s)/4+1)*3)
	i := 0
	for i < len(s) {
		chunkLen := 4
		if len(s)-i < 4 {
			chunkLen = len(s) - i
		}
		decoded, n, err := decodeChunk(s[i:i+chunkLen], i+chunkLen >= len(s))
		if err != nil {
			return nil, err
		}
		out = append(out, decoded[:n]...)
		i += chunkLen
	}
	return out, nil
}

// decodeChunk decodes one up-to-4-character group. isFinal indicates
// this is the last group in the input, the only place '=' padding (or,
// in unpadded mode, a short group) is legal.
func decodeChunk(chunk []byte, isFinal bool) (decoded [3]byte, n int, err error) {
	var vals [4]int8
	padCount := 0
	for i, c := range chunk {
		if c == '=' {
			if !isFinal {
				return decoded, 0, errf("base64 padding character in a non-final group")
			}
			padCount++
			vals[i] = 0
			continue
		}
		if padCount > 0 {
			return decoded, 0, errf("base64 data character after padding began")
		}
		v := decodeTable[c]
		if v == invalid {
			return decoded, 0, errf("invalid base64 character %q", rune(c))
		}
		vals[i] = v
	}
	// Fill any missing trailing slots (short final group in unpadded mode).
	present := len(chunk) - padCount
	switch present {
	case 4:
		if padCount != 0 {
			return decoded, 0, errf("base64 padding present with all 4 characters significant")
		}
		decoded[0] = byte(vals[0]<<2 | vals[1]>>4)
		decoded[1] = byte(vals[1]<<4 | vals[2]>>2)
		decoded[2] = byte(vals[2]<<6 | vals[3])
		return decoded, 3, nil
	case 3:
		if padCount != 0 && padCount != 1 {
			return decoded, 0, errf("base64 final group has invalid padding for 3 significant characters")
		}
		decoded[0] = byte(vals[0]<<2 | vals[1]>>4)
		decoded[1] = byte(vals[1]<<4 | vals[2]>>2)
		return decoded, 2, nil
	case 2:
		if padCount != 0 && padCount != 2 {
			return decoded, 0, errf("base64 final group has invalid padding for 2 significant characters")
		}
		decoded[0] = byte(vals[0]<<2 | vals[1]>>4)
		return decoded, 1, nil
	default:
		return decoded, 0, errf("base64 final group has %d significant character(s), which is never valid", present)
	}
}
