// Package nonce generates single-use random tokens from the platform's
// cryptographically secure entropy source.
//
// Generation may block: on Linux the first call waits until the kernel
// entropy pool has been initialised. Callers that must not block should use
// a [Pool], whose Next method honours context cancellation.
package nonce

import (
	"errors"
	"fmt"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("cryptoutil/nonce")

// tokenSize is the number of random bytes behind each token produced by the
// system source. Tokens are their lowercase hex form.
const tokenSize = 16

// Source produces nonce tokens. Implementations must be safe for concurrent
// use and must never return an empty token without an error.
type Source interface {
	Nonce() (string, error)
}

// SourceFunc adapts a function to a [Source].
type SourceFunc func() (string, error)

func (f SourceFunc) Nonce() (string, error) {
	return f()
}

// Generate returns one token from the platform source. It may block.
func Generate() (string, error) {
	return System.Nonce()
}

// GenerateSize returns exactly size bytes of nonce material drawn from the
// platform source. It may block.
func GenerateSize(size int) ([]byte, error) {
	return GenerateSizeFrom(System, size)
}

// ErrEmptyToken is returned when a source yields an empty token. Accepting it
// would stop GenerateSizeFrom from making progress.
var ErrEmptyToken = errors.New("nonce source returned an empty token")

// GenerateSizeFrom concatenates the UTF-8 bytes of tokens from src until at
// least size bytes are available and returns the first size of them. A size
// of zero returns an empty buffer without calling src.
func GenerateSizeFrom(src Source, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("invalid nonce size: %d", size)
	}
	buf := make([]byte, 0, size)
	for len(buf) < size {
		tok, err := src.Nonce()
		if err != nil {
			return nil, err
		}
		if tok == "" {
			return nil, ErrEmptyToken
		}
		buf = append(buf, tok...)
	}
	return buf[:size:size], nil
}
