package digest

import (
	"fmt"

	"github.com/storacha/go-cryptoutil/core/result/failure"
)

// UnsupportedAlgorithmError is returned by New when no backend on this
// platform implements the requested algorithm.
type UnsupportedAlgorithmError struct {
	failure.NamedWithStackTrace
	Algorithm string
}

func NewUnsupportedAlgorithmError(name string) *UnsupportedAlgorithmError {
	return &UnsupportedAlgorithmError{failure.NamedWithCurrentStackTrace("UnsupportedAlgorithm"), name}
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported digest algorithm: %q", e.Algorithm)
}
