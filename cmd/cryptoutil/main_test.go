package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/storacha/go-cryptoutil/core/digest"
	"github.com/storacha/go-cryptoutil/core/hex"
	"github.com/storacha/go-cryptoutil/core/nonce"
	"github.com/stretchr/testify/require"
)

const abcSHA1 = "a9993e364706816aba3e25717850c26c9cd0d89d"

func runWith(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(&env{strings.NewReader(stdin), &stdout, &stderr}, args)
	return stdout.String(), err
}

func requireUsageError(t *testing.T, err error) {
	t.Helper()
	var uerr usageError
	require.True(t, errors.As(err, &uerr), "expected usage error, got %v", err)
}

func TestRun(t *testing.T) {
	t.Run("no command", func(t *testing.T) {
		_, err := runWith(t, "")
		requireUsageError(t, err)
	})

	t.Run("unknown command", func(t *testing.T) {
		_, err := runWith(t, "", "frobnicate")
		requireUsageError(t, err)
	})

	t.Run("help", func(t *testing.T) {
		_, err := runWith(t, "", "--help")
		require.NoError(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		_, err := runWith(t, "", "algorithms", "--log-level", "loud")
		requireUsageError(t, err)
	})
}

func TestHexCommand(t *testing.T) {
	t.Run("encode argument", func(t *testing.T) {
		out, err := runWith(t, "", "hex", "encode", "abc")
		require.NoError(t, err)
		require.Equal(t, "616263\n", out)
	})

	t.Run("encode stdin multibase", func(t *testing.T) {
		out, err := runWith(t, "abc", "hex", "--multibase", "encode")
		require.NoError(t, err)
		require.Equal(t, "f616263\n", out)
	})

	t.Run("decode", func(t *testing.T) {
		out, err := runWith(t, "616263\n", "hex", "decode")
		require.NoError(t, err)
		require.Equal(t, "abc", out)
	})

	t.Run("decode multibase", func(t *testing.T) {
		out, err := runWith(t, "", "hex", "decode", "--multibase", "f616263")
		require.NoError(t, err)
		require.Equal(t, "abc", out)
	})

	t.Run("decode odd length", func(t *testing.T) {
		_, err := runWith(t, "", "hex", "decode", "616")
		var ferr *hex.FormatError
		require.True(t, errors.As(err, &ferr))
	})

	t.Run("missing operation", func(t *testing.T) {
		_, err := runWith(t, "", "hex")
		requireUsageError(t, err)
	})

	t.Run("unknown operation", func(t *testing.T) {
		_, err := runWith(t, "", "hex", "rot13", "x")
		requireUsageError(t, err)
	})
}

func TestNonceCommand(t *testing.T) {
	t.Run("token", func(t *testing.T) {
		out, err := runWith(t, "", "nonce")
		require.NoError(t, err)
		require.Len(t, strings.TrimSpace(out), 32)
	})

	t.Run("sized hex", func(t *testing.T) {
		out, err := runWith(t, "", "nonce", "--size", "10", "--count", "3")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		for _, line := range lines {
			require.Len(t, line, 20)
		}
	})

	t.Run("sized raw", func(t *testing.T) {
		out, err := runWith(t, "", "nonce", "-n", "7", "--format", "raw")
		require.NoError(t, err)
		require.Len(t, out, 7)
	})

	t.Run("uuid source", func(t *testing.T) {
		out, err := runWith(t, "", "nonce", "--source", nonce.UUIDName)
		require.NoError(t, err)
		require.Len(t, strings.TrimSpace(out), 36)
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := runWith(t, "", "nonce", "--source", "dice")
		var uerr *nonce.UnknownSourceError
		require.True(t, errors.As(err, &uerr))
	})

	t.Run("invalid flags", func(t *testing.T) {
		_, err := runWith(t, "", "nonce", "--size", "-1")
		requireUsageError(t, err)
		out, err := runWith(t, "", "nonce", "--count", "-1")
		requireUsageError(t, err)
		require.Empty(t, out)
		_, err = runWith(t, "", "nonce", "--format", "base64")
		requireUsageError(t, err)
		_, err = runWith(t, "", "nonce", "extra")
		requireUsageError(t, err)
	})
}

func TestDigestCommand(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		out, err := runWith(t, "abc", "digest", "-a", "sha1")
		require.NoError(t, err)
		require.Equal(t, abcSHA1+"  -\n", out)
	})

	t.Run("files", func(t *testing.T) {
		dir := t.TempDir()
		a := filepath.Join(dir, "a")
		b := filepath.Join(dir, "b")
		require.NoError(t, os.WriteFile(a, []byte("abc"), 0644))
		require.NoError(t, os.WriteFile(b, []byte("abc"), 0644))

		out, err := runWith(t, "", "digest", "--algorithm", "SHA-1", a, b)
		require.NoError(t, err)
		require.Equal(t, abcSHA1+"  "+a+"\n"+abcSHA1+"  "+b+"\n", out)
	})

	t.Run("multihash", func(t *testing.T) {
		out, err := runWith(t, "abc", "digest", "-a", "SHA-1", "--multihash")
		require.NoError(t, err)
		require.Equal(t, "1114"+abcSHA1+"  -\n", out)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runWith(t, "", "digest", filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := runWith(t, "", "digest", "-a", "ROT13")
		var uerr *digest.UnsupportedAlgorithmError
		require.True(t, errors.As(err, &uerr))
	})
}

func TestListCommands(t *testing.T) {
	out, err := runWith(t, "", "algorithms")
	require.NoError(t, err)
	require.Contains(t, strings.Split(out, "\n"), "SHA-1")

	out, err = runWith(t, "", "sources")
	require.NoError(t, err)
	require.Contains(t, strings.Split(out, "\n"), nonce.SystemName)
}
