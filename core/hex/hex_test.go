package hex

import (
	"bytes"
	stdhex "encoding/hex"
	"errors"
	"testing"

	"github.com/storacha/go-cryptoutil/core/result/failure"
	"github.com/storacha/go-cryptoutil/testing/helpers"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		require.Equal(t, "", Encode(nil))
		require.Equal(t, "00", Encode([]byte{0}))
		require.Equal(t, "0fa0ff", Encode([]byte{0x0f, 0xa0, 0xff}))
		require.Equal(t, "deadbeef", Encode([]byte{0xde, 0xad, 0xbe, 0xef}))
	})

	t.Run("every byte value", func(t *testing.T) {
		b := make([]byte, 256)
		for i := range b {
			b[i] = byte(i)
		}
		s := Encode(b)
		require.Len(t, s, 512)
		require.Equal(t, stdhex.EncodeToString(b), s)
	})
}

func TestDecode(t *testing.T) {
	t.Run("lowercase", func(t *testing.T) {
		b, err := Decode("deadbeef")
		require.NoError(t, err)
		require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)
	})

	t.Run("uppercase and mixed case", func(t *testing.T) {
		b, err := Decode("DEADbeEF")
		require.NoError(t, err)
		require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)
	})

	t.Run("empty", func(t *testing.T) {
		b, err := Decode("")
		require.NoError(t, err)
		require.Empty(t, b)
	})

	t.Run("odd length is rejected", func(t *testing.T) {
		_, err := Decode("abc")
		require.Error(t, err)
		var ferr *FormatError
		require.True(t, errors.As(err, &ferr))
		require.Equal(t, -1, ferr.Offset)
		require.Equal(t, "FormatError", ferr.Name())
		require.Equal(t, "invalid hex: odd length 3", err.Error())
	})

	t.Run("invalid high nibble", func(t *testing.T) {
		_, err := Decode("zz00")
		var ferr *FormatError
		require.True(t, errors.As(err, &ferr))
		require.Equal(t, 0, ferr.Offset)
		require.Equal(t, byte('z'), ferr.Char)
	})

	t.Run("invalid low nibble", func(t *testing.T) {
		_, err := Decode("00a-")
		var ferr *FormatError
		require.True(t, errors.As(err, &ferr))
		require.Equal(t, 3, ferr.Offset)
		require.Equal(t, byte('-'), ferr.Char)
		require.True(t, failure.HasName(err, "FormatError"))
	})

	t.Run("prefix is not accepted", func(t *testing.T) {
		_, err := Decode("0x00")
		require.Error(t, err)
	})
}

func TestRoundTrip(t *testing.T) {
	t.Run("bytes", func(t *testing.T) {
		for size := 0; size < 64; size++ {
			b := helpers.RandomBytes(size)
			out, err := Decode(Encode(b))
			require.NoError(t, err)
			require.True(t, bytes.Equal(b, out))
		}
	})

	t.Run("lowercase strings", func(t *testing.T) {
		for _, s := range []string{"", "00", "ff", "0123456789abcdef", "a0b1c2d3e4f5"} {
			b, err := Decode(s)
			require.NoError(t, err)
			require.Equal(t, s, Encode(b))
		}
	})
}

func TestFormatParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		b := helpers.RandomBytes(20)
		s := Format(b)
		require.Equal(t, "f"+Encode(b), s)
		out, err := Parse(s)
		require.NoError(t, err)
		require.Equal(t, b, out)
	})

	t.Run("other multibase encodings", func(t *testing.T) {
		// base64 (no padding) of "hello"
		out, err := Parse("maGVsbG8")
		require.NoError(t, err)
		require.Equal(t, []byte("hello"), out)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Parse("")
		var ferr *FormatError
		require.True(t, errors.As(err, &ferr))
		require.NotNil(t, errors.Unwrap(err))
	})
}
