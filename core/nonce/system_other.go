//go:build !linux

package nonce

import (
	"crypto/rand"

	"github.com/storacha/go-cryptoutil/core/hex"
)

// SystemName identifies the compiled-in platform source.
const SystemName = "system"

// System reads from crypto/rand, which is the platform CSPRNG on every target
// Go supports (getentropy on darwin, ProcessPrng on windows,
// crypto.getRandomValues on js/wasm).
var System Source = randSource{}

type randSource struct{}

func (randSource) Nonce() (string, error) {
	b := make([]byte, tokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", NewEntropyUnavailableError(err)
	}
	return hex.Encode(b), nil
}
