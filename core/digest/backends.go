package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

func init() {
	Register("MD5", md5.New)
	Register("SHA-1", sha1.New)
	Register("SHA-224", sha256.New224)
	Register("SHA-256", newSHA256)
	Register("SHA-384", sha512.New384)
	Register("SHA-512", sha512.New)
	Register("SHA-512/256", sha512.New512_256)

	Register("SHA3-224", sha3.New224)
	Register("SHA3-256", sha3.New256)
	Register("SHA3-384", sha3.New384)
	Register("SHA3-512", sha3.New512)
	Register("KECCAK-256", sha3.NewLegacyKeccak256)

	Register("BLAKE2b-256", unkeyed(blake2b.New256))
	Register("BLAKE2b-384", unkeyed(blake2b.New384))
	Register("BLAKE2b-512", unkeyed(blake2b.New512))
	Register("BLAKE2s-256", unkeyed(blake2s.New256))

	Register("BLAKE3", func() hash.Hash { return blake3.New() })
}

// unkeyed adapts the x/crypto BLAKE2 constructors, which only fail for keys
// longer than the block size.
func unkeyed(newKeyed func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := newKeyed(nil)
		if err != nil {
			panic(err)
		}
		return h
	}
}
