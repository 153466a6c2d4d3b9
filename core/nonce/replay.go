package nonce

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ReplayGuard remembers the most recently seen nonces and rejects repeats.
// Once more than its capacity of distinct nonces have been seen the oldest
// are forgotten, so it only detects replays within that window.
type ReplayGuard struct {
	seen *lru.Cache[string, struct{}]
}

func NewReplayGuard(size int) (*ReplayGuard, error) {
	seen, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, fmt.Errorf("creating replay cache: %w", err)
	}
	return &ReplayGuard{seen}, nil
}

// Check records nonce and returns a [ReplayError] if it was already recorded.
// It is safe for concurrent use.
func (g *ReplayGuard) Check(nonce string) error {
	if found, _ := g.seen.ContainsOrAdd(nonce, struct{}{}); found {
		log.Warnw("nonce replay detected", "nonce", nonce)
		return NewReplayError(nonce)
	}
	return nil
}

// Len returns the number of nonces currently remembered.
func (g *ReplayGuard) Len() int {
	return g.seen.Len()
}
