package scraper

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Throttle enforces a jittered minimum delay between outbound requests of a
// single adapter. This is self-imposed politeness against third parties we
// have no contract with, not a correctness requirement.
type Throttle struct {
	base   time.Duration
	jitter time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

func NewThrottle(base, jitter time.Duration) *Throttle {
	return &Throttle{
		base:   base,
		jitter: jitter,
	}
}

// Wait blocks until the next request slot or the context is done.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()

	interval := t.base
	if t.jitter > 0 {
		interval += time.Duration(rand.Int63n(int64(t.jitter))) //nolint:gosec // jitter only
	}

	if t.lastRequest.IsZero() || time.Since(t.lastRequest) >= interval {
		t.lastRequest = time.Now()
		t.mu.Unlock()
		return nil
	}

	wait := interval - time.Since(t.lastRequest)
	t.mu.Unlock()

	select {
	case <-time.After(wait):
	case <-ctx.Done():
		return ctx.Err()
	}

	t.mu.Lock()
	t.lastRequest = time.Now()
	t.mu.Unlock()

	return nil
}
