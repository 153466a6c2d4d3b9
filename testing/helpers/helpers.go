package helpers

import (
	crand "crypto/rand"
	"fmt"
	"sync"
)

// Must takes return values from a function and returns the non-error one. If
// the error value is non-nil then it panics.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func RandomBytes(size int) []byte {
	bytes := make([]byte, size)
	_, _ = crand.Read(bytes)
	return bytes
}

// SequenceSource is a deterministic nonce source. It returns Tokens in order,
// cycling when it reaches the end, and counts how often it was called. If Err
// is set it is returned instead.
type SequenceSource struct {
	Tokens []string
	Err    error

	mu    sync.Mutex
	calls int
}

func (s *SequenceSource) Nonce() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Tokens) == 0 {
		return "", fmt.Errorf("sequence source has no tokens")
	}
	tok := s.Tokens[s.calls%len(s.Tokens)]
	s.calls++
	return tok, nil
}

// Calls returns the number of times Nonce has been called.
func (s *SequenceSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
