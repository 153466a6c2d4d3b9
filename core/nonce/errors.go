package nonce

import (
	"fmt"

	"github.com/storacha/go-cryptoutil/core/result/failure"
)

// EntropyUnavailableError is returned when the platform cannot supply random
// bytes. The platform error is available through Unwrap.
type EntropyUnavailableError struct {
	failure.NamedWithStackTrace
	cause error
}

func NewEntropyUnavailableError(cause error) *EntropyUnavailableError {
	return &EntropyUnavailableError{failure.NamedWithCurrentStackTrace("EntropyUnavailable"), cause}
}

func (e *EntropyUnavailableError) Error() string {
	return fmt.Sprintf("entropy unavailable: %s", e.cause)
}

func (e *EntropyUnavailableError) Unwrap() error {
	return e.cause
}

// UnknownSourceError is returned by Lookup for a name with no registered
// source.
type UnknownSourceError struct {
	failure.NamedWithStackTrace
	Source string
}

func NewUnknownSourceError(name string) *UnknownSourceError {
	return &UnknownSourceError{failure.NamedWithCurrentStackTrace("UnknownSource"), name}
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown nonce source: %q", e.Source)
}

// ReplayError is returned by a ReplayGuard for a nonce it has already seen.
type ReplayError struct {
	failure.NamedWithStackTrace
	Nonce string
}

func NewReplayError(nonce string) *ReplayError {
	return &ReplayError{failure.NamedWithCurrentStackTrace("NonceReplayed"), nonce}
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("nonce already used: %q", e.Nonce)
}
