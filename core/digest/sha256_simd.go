//go:build amd64 || arm64

package digest

import (
	"hash"

	sha256simd "github.com/minio/sha256-simd"
)

// newSHA256 uses the SHA-NI, AVX-512 or ARMv8 SHA2 instructions when the CPU
// has them and falls back to crypto/sha256 otherwise.
func newSHA256() hash.Hash {
	return sha256simd.New()
}
