// Package digest provides incremental message digests addressed by algorithm
// name.
//
// A Digest is obtained from New, fed with Write or WriteString, and
// finalized with Sum. After Sum the instance refuses further input and
// further Sum calls with ErrFinalized until Reset is called; Reset returns it
// to the state it had right after construction.
//
// The set of available algorithm names depends on the backends compiled for
// the running platform. Use Supported or Algorithms to inspect it.
//
// A Digest is not safe for concurrent use.
package digest

import (
	"fmt"
	"hash"
	"io"

	logging "github.com/ipfs/go-log/v2"
	"github.com/storacha/go-cryptoutil/core/result/failure"
	"golang.org/x/text/encoding"
)

var log = logging.Logger("cryptoutil/digest")

type Digest interface {
	io.Writer
	io.StringWriter
	// Algorithm returns the canonical name of the bound algorithm.
	Algorithm() string
	// Size returns the number of bytes Sum produces.
	Size() int
	// Reset discards all absorbed input and clears the finalized state.
	Reset()
	// Sum returns the digest of everything written since construction or
	// the last Reset. The returned slice is owned by the caller.
	Sum() ([]byte, error)
}

type finalizedError struct{}

func (finalizedError) Error() string {
	return "digest already finalized: call Reset before reuse"
}

func (finalizedError) Name() string {
	return "DigestFinalized"
}

// ErrFinalized is returned by Write, WriteString and Sum on a digest that has
// been finalized and not reset.
var ErrFinalized failure.Failure = finalizedError{}

type hashDigest struct {
	alg       string
	hash      hash.Hash
	finalized bool
}

func (d *hashDigest) Algorithm() string {
	return d.alg
}

func (d *hashDigest) Size() int {
	return d.hash.Size()
}

func (d *hashDigest) Write(p []byte) (int, error) {
	if d.finalized {
		return 0, ErrFinalized
	}
	return d.hash.Write(p)
}

func (d *hashDigest) WriteString(s string) (int, error) {
	return d.Write([]byte(s))
}

func (d *hashDigest) Reset() {
	d.hash.Reset()
	d.finalized = false
}

func (d *hashDigest) Sum() ([]byte, error) {
	if d.finalized {
		return nil, ErrFinalized
	}
	d.finalized = true
	return d.hash.Sum(nil), nil
}

// New returns a digest for the named algorithm. Names are matched ignoring
// case and '-' / '_' separators, so "SHA-1", "sha1" and "Sha_1" are the same.
func New(name string) (Digest, error) {
	b, ok := resolve(name)
	if !ok {
		return nil, NewUnsupportedAlgorithmError(name)
	}
	return &hashDigest{alg: b.name, hash: b.new()}, nil
}

// SumBytes writes b to d and finalizes it.
func SumBytes(d Digest, b []byte) ([]byte, error) {
	if _, err := d.Write(b); err != nil {
		return nil, err
	}
	return d.Sum()
}

// SumString encodes s with enc, writes the result to d and finalizes it. A
// nil enc writes the UTF-8 bytes of s unchanged.
func SumString(d Digest, s string, enc encoding.Encoding) ([]byte, error) {
	b := []byte(s)
	if enc != nil {
		var err error
		b, err = enc.NewEncoder().Bytes(b)
		if err != nil {
			return nil, fmt.Errorf("encoding text for %s digest: %w", d.Algorithm(), err)
		}
	}
	return SumBytes(d, b)
}

// SumReader copies r into d until EOF and finalizes it.
func SumReader(d Digest, r io.Reader) ([]byte, error) {
	if _, err := io.Copy(d, r); err != nil {
		return nil, fmt.Errorf("reading input for %s digest: %w", d.Algorithm(), err)
	}
	return d.Sum()
}

// SHA1 returns the SHA-1 digest of b.
func SHA1(b []byte) ([]byte, error) {
	d, err := New("SHA-1")
	if err != nil {
		return nil, err
	}
	return SumBytes(d, b)
}
