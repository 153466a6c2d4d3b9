package nonce

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storacha/go-cryptoutil/testing/helpers"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	t.Run("not started", func(t *testing.T) {
		p := NewPool(System)
		_, err := p.Next(context.Background())
		require.ErrorIs(t, err, ErrPoolNotStarted)
	})

	t.Run("preserves source order with one worker", func(t *testing.T) {
		src := &helpers.SequenceSource{Tokens: []string{"a", "b", "c"}}
		p := NewPool(src, WithCapacity(2))
		p.Start(context.Background())
		t.Cleanup(func() { p.Close() })

		ctx := context.Background()
		for _, want := range []string{"a", "b", "c", "a"} {
			tok, err := p.Next(ctx)
			require.NoError(t, err)
			require.Equal(t, want, tok)
		}
	})

	t.Run("system source with workers", func(t *testing.T) {
		p := NewPool(System, WithCapacity(8), WithWorkers(4))
		p.Start(context.Background())

		seen := map[string]bool{}
		for i := 0; i < 32; i++ {
			tok := helpers.Must(p.Nonce())
			require.False(t, seen[tok])
			seen[tok] = true
		}
		require.NoError(t, p.Close())
	})

	t.Run("next honours context", func(t *testing.T) {
		release := make(chan struct{})
		src := SourceFunc(func() (string, error) {
			<-release
			return "late", nil
		})
		p := NewPool(src)
		p.Start(context.Background())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := p.Next(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		close(release)
		require.NoError(t, p.Close())
	})

	t.Run("source failure stops the pool", func(t *testing.T) {
		cause := NewEntropyUnavailableError(errors.New("no entropy"))
		p := NewPool(&helpers.SequenceSource{Err: cause})
		p.Start(context.Background())

		_, err := p.Next(context.Background())
		require.ErrorIs(t, err, cause)
		require.ErrorIs(t, p.Close(), cause)
	})

	t.Run("closed", func(t *testing.T) {
		p := NewPool(&helpers.SequenceSource{Tokens: []string{"a"}}, WithCapacity(1))
		p.Start(context.Background())
		require.NoError(t, p.Close())
		require.NoError(t, p.Close())

		// at most the one buffered token remains
		ctx := context.Background()
		tok, err := p.Next(ctx)
		if err == nil {
			require.Equal(t, "a", tok)
			_, err = p.Next(ctx)
		}
		require.ErrorIs(t, err, ErrPoolClosed)
	})

	t.Run("close without start", func(t *testing.T) {
		p := NewPool(System)
		require.NoError(t, p.Close())
		_, err := p.Next(context.Background())
		require.ErrorIs(t, err, ErrPoolClosed)
	})
}

func TestReplayGuard(t *testing.T) {
	t.Run("rejects repeats", func(t *testing.T) {
		g, err := NewReplayGuard(16)
		require.NoError(t, err)

		tok := helpers.Must(Generate())
		require.NoError(t, g.Check(tok))

		err = g.Check(tok)
		var rerr *ReplayError
		require.True(t, errors.As(err, &rerr))
		require.Equal(t, tok, rerr.Nonce)
		require.Equal(t, "NonceReplayed", rerr.Name())
	})

	t.Run("forgets oldest", func(t *testing.T) {
		g := helpers.Must(NewReplayGuard(2))
		require.NoError(t, g.Check("a"))
		require.NoError(t, g.Check("b"))
		require.NoError(t, g.Check("c"))
		require.Equal(t, 2, g.Len())
		require.NoError(t, g.Check("a"))
		require.Error(t, g.Check("c"))
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := NewReplayGuard(0)
		require.Error(t, err)
	})
}
