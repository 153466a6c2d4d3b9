//go:build linux

package nonce

import (
	"crypto/rand"
	"errors"

	"github.com/storacha/go-cryptoutil/core/hex"
	"golang.org/x/sys/unix"
)

// SystemName identifies the compiled-in platform source.
const SystemName = "system"

// System reads from getrandom(2). Without GRND_NONBLOCK the call blocks until
// the kernel pool is initialised and never blocks afterwards.
var System Source = getrandomSource{}

type getrandomSource struct{}

func (getrandomSource) Nonce() (string, error) {
	b := make([]byte, tokenSize)
	if err := getrandom(b); err != nil {
		return "", NewEntropyUnavailableError(err)
	}
	return hex.Encode(b), nil
}

func getrandom(b []byte) error {
	for len(b) > 0 {
		n, err := unix.Getrandom(b, 0)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if errors.Is(err, unix.ENOSYS) {
			// kernels before 3.17
			log.Debugw("getrandom unavailable, using crypto/rand")
			_, err = rand.Read(b)
			return err
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
