// Package multihash wraps digest output in the self-describing multihash
// format so that a digest carries the identity of the algorithm that
// produced it.
package multihash

import (
	"bytes"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
	mh "github.com/multiformats/go-multihash"
	"github.com/multiformats/go-varint"
	"github.com/storacha/go-cryptoutil/core/digest"
)

type Hasher interface {
	Code() uint64
	Size() uint64
	Sum(bytes []byte) (Digest, error)
}

type Digest interface {
	// Code is the multicodec code of the hash function.
	Code() uint64
	// Size is the length of the raw digest.
	Size() uint64
	// Digest returns the raw digest.
	Digest() []byte
	// Bytes returns the full multihash: code, length and digest.
	Bytes() []byte
}

type mhDigest struct {
	code   uint64
	size   uint64
	digest []byte
	bytes  []byte
}

func (d *mhDigest) Bytes() []byte {
	return d.bytes
}

func (d *mhDigest) Code() uint64 {
	return d.code
}

func (d *mhDigest) Digest() []byte {
	return d.digest
}

func (d *mhDigest) Size() uint64 {
	return d.size
}

func NewDigest(code uint64, size uint64, digest []byte, bytes []byte) Digest {
	return &mhDigest{code, size, digest, bytes}
}

func codeOf(algorithm string) (uint64, bool) {
	name, ok := digest.MulticodecName(algorithm)
	if !ok {
		return 0, false
	}
	var code multicodec.Code
	if err := code.Set(name); err != nil || code.Tag() != "multihash" {
		return 0, false
	}
	return uint64(code), true
}

type hasher struct {
	alg  string
	code uint64
	size uint64
}

func (h hasher) Code() uint64 {
	return h.code
}

func (h hasher) Size() uint64 {
	return h.size
}

func (h hasher) Sum(b []byte) (Digest, error) {
	d, err := digest.New(h.alg)
	if err != nil {
		return nil, err
	}
	sum, err := digest.SumBytes(d, b)
	if err != nil {
		return nil, err
	}
	return wrap(h.code, sum)
}

// For returns a hasher for a digest algorithm that has a multicodec code.
func For(name string) (Hasher, error) {
	d, err := digest.New(name)
	if err != nil {
		return nil, err
	}
	code, ok := codeOf(d.Algorithm())
	if !ok {
		return nil, digest.NewUnsupportedAlgorithmError(name)
	}
	return hasher{d.Algorithm(), code, uint64(d.Size())}, nil
}

// SHA256 is the sha2-256 hasher, the default for content addressing.
var SHA256 Hasher = hasher{"SHA-256", mh.SHA2_256, 32}

// Encode finalizes d and wraps its sum as a multihash.
func Encode(d digest.Digest) (Digest, error) {
	code, ok := codeOf(d.Algorithm())
	if !ok {
		return nil, digest.NewUnsupportedAlgorithmError(d.Algorithm())
	}
	sum, err := d.Sum()
	if err != nil {
		return nil, err
	}
	return wrap(code, sum)
}

func wrap(code uint64, sum []byte) (Digest, error) {
	b, err := mh.Encode(sum, code)
	if err != nil {
		return nil, fmt.Errorf("encoding multihash: %w", err)
	}
	return NewDigest(code, uint64(len(sum)), sum, b), nil
}

// Decode parses a multihash.
func Decode(b []byte) (Digest, error) {
	b = bytes.Clone(b)
	decoded, err := mh.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decoding multihash: %w", err)
	}
	return NewDigest(decoded.Code, uint64(decoded.Length), decoded.Digest, b), nil
}

// Code reads the hash function code from the start of a multihash without
// decoding the rest of it.
func Code(b []byte) (uint64, error) {
	code, _, err := varint.FromUvarint(b)
	if err != nil {
		return 0, fmt.Errorf("reading multihash code: %w", err)
	}
	return code, nil
}

// Verify recomputes the digest of data with the function named by d and
// reports whether it matches.
func Verify(d Digest, data []byte) (bool, error) {
	name := multicodec.Code(d.Code()).String()
	h, err := For(name)
	if err != nil {
		return false, err
	}
	got, err := h.Sum(data)
	if err != nil {
		return false, err
	}
	return bytes.Equal(got.Bytes(), d.Bytes()), nil
}

// Link returns the CIDv1 addressing raw data with digest d.
func Link(d Digest) cid.Cid {
	return cid.NewCidV1(cid.Raw, d.Bytes())
}
