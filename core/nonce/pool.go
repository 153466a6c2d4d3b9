package nonce

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	defaultCapacity = 512
	defaultWorkers  = 1
)

var (
	ErrPoolNotStarted = errors.New("nonce pool not started")
	ErrPoolClosed     = errors.New("nonce pool closed")
)

// Option is an option configuring a nonce pool.
type Option func(cfg *poolConfig)

type poolConfig struct {
	capacity int
	workers  int
}

// WithCapacity configures how many tokens the pool prefetches.
func WithCapacity(n int) Option {
	return func(cfg *poolConfig) {
		cfg.capacity = n
	}
}

// WithWorkers configures how many goroutines fill the pool concurrently.
func WithWorkers(n int) Option {
	return func(cfg *poolConfig) {
		cfg.workers = n
	}
}

// Pool prefetches tokens from a source on background goroutines so that
// callers can wait for one with a cancellable context instead of blocking
// inside the source.
type Pool struct {
	src     Source
	tokens  chan string
	workers int

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
}

func NewPool(src Source, options ...Option) *Pool {
	cfg := poolConfig{}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.capacity <= 0 {
		cfg.capacity = defaultCapacity
	}
	if cfg.workers <= 0 {
		cfg.workers = defaultWorkers
	}
	return &Pool{
		src:     src,
		tokens:  make(chan string, cfg.capacity),
		workers: cfg.workers,
		done:    make(chan struct{}),
	}
}

// Start launches the fill workers. They stop when ctx is cancelled, when
// Close is called, or when the source fails. Calling Start more than once
// has no effect.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(ctx)
	for i := 0; i < p.workers; i++ {
		group.Go(func() error {
			return p.fill(gctx)
		})
	}
	log.Debugw("nonce pool started", "workers", p.workers, "capacity", cap(p.tokens))

	go func() {
		err := group.Wait()
		if err != nil {
			log.Warnw("nonce pool stopped", "error", err)
		}
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		close(p.done)
	}()
}

func (p *Pool) fill(ctx context.Context) error {
	for {
		tok, err := p.src.Nonce()
		if err != nil {
			return err
		}
		select {
		case p.tokens <- tok:
		case <-ctx.Done():
			return nil
		}
	}
}

// Next returns a prefetched token, waiting until one is available or ctx is
// done. Once the workers have stopped and the buffer is drained it returns
// the error that stopped them, or ErrPoolClosed.
func (p *Pool) Next(ctx context.Context) (string, error) {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return "", ErrPoolNotStarted
	}

	select {
	case tok := <-p.tokens:
		return tok, nil
	default:
	}

	select {
	case tok := <-p.tokens:
		return tok, nil
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.done:
		select {
		case tok := <-p.tokens:
			return tok, nil
		default:
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.err != nil {
			return "", p.err
		}
		return "", ErrPoolClosed
	}
}

// Nonce implements [Source] by waiting for the next token without a
// deadline.
func (p *Pool) Nonce() (string, error) {
	return p.Next(context.Background())
}

// Close stops the workers and waits for them to exit. A worker blocked inside
// the source finishes that call first. Close returns the error, if any, that
// stopped the workers.
func (p *Pool) Close() error {
	p.mu.Lock()
	if !p.started {
		p.started = true
		p.cancel = func() {}
		close(p.done)
	}
	cancel := p.cancel
	p.mu.Unlock()

	cancel()
	<-p.done

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}
