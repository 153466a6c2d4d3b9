// Package hex converts between byte buffers and lowercase hexadecimal text.
//
// Encode never fails. Decode is strict: every character must be a hex digit
// (either case) and the input length must be even. Odd-length input is
// rejected with a [FormatError] rather than having its trailing character
// dropped.
package hex

import (
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/storacha/go-cryptoutil/core/result/failure"
)

const digits = "0123456789abcdef"

// FormatError is returned when text cannot be decoded as hex.
type FormatError struct {
	failure.NamedWithStackTrace
	// Offset of the offending character, or -1 when the input as a whole is
	// malformed (odd length, bad multibase prefix).
	Offset int
	Char   byte
	reason string
	cause  error
}

func newFormatError(offset int, char byte, reason string, cause error) *FormatError {
	return &FormatError{failure.NamedWithCurrentStackTrace("FormatError"), offset, char, reason, cause}
}

func (e *FormatError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid hex: %s: %s", e.reason, e.cause)
	}
	if e.Offset < 0 {
		return fmt.Sprintf("invalid hex: %s", e.reason)
	}
	return fmt.Sprintf("invalid hex: %s %q at offset %d", e.reason, e.Char, e.Offset)
}

func (e *FormatError) Unwrap() error {
	return e.cause
}

// Encode returns the lowercase hex form of b, high nibble first.
func Encode(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = digits[v>>4]
		out[i*2+1] = digits[v&0x0f]
	}
	return string(out)
}

// Decode parses s two characters at a time into bytes. Upper and lower case
// digits are both accepted.
func Decode(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, newFormatError(-1, 0, fmt.Sprintf("odd length %d", len(s)), nil)
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, ok := nibble(s[i*2])
		if !ok {
			return nil, newFormatError(i*2, s[i*2], "invalid digit", nil)
		}
		lo, ok := nibble(s[i*2+1])
		if !ok {
			return nil, newFormatError(i*2+1, s[i*2+1], "invalid digit", nil)
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Format encodes b as a multibase base16 string: the 'f' prefix followed by
// the same lowercase digits Encode produces.
func Format(b []byte) string {
	// base16 is always a supported encoding, the error is unreachable
	s, _ := multibase.Encode(multibase.Base16, b)
	return s
}

// Parse decodes any multibase string. Strings produced by Format round trip
// to the original bytes.
func Parse(s string) ([]byte, error) {
	_, b, err := multibase.Decode(s)
	if err != nil {
		return nil, newFormatError(-1, 0, "decoding multibase string", err)
	}
	return b, nil
}
