package tarjama

import (
	"context"
	"sync"
	"time"
)

// RateLimiter enforces a minimum gap between consecutive outbound provider
// calls. Concurrent callers reserve slots in turn, so their calls are spaced
// apart rather than fired together.
type RateLimiter struct {
	minGap   time.Duration
	lastCall time.Time // Start time of the most recently reserved call
	mu       sync.Mutex
}

// NewRateLimiter creates a rate limiter. A non-positive gap disables limiting.
func NewRateLimiter(minGap time.Duration) *RateLimiter {
	if minGap < 0 {
		minGap = 0
	}
	return &RateLimiter{minGap: minGap}
}

// Wait blocks until the caller's slot comes up or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil || r.minGap <= 0 {
		return ctx.Err()
	}
	return sleepContext(ctx, r.reserve())
}

// TryAcquire takes the next slot only if it is available right now.
func (r *RateLimiter) TryAcquire() bool {
	if r == nil || r.minGap <= 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if !r.lastCall.IsZero() && now.Sub(r.lastCall) < r.minGap {
		return false
	}
	r.lastCall = now
	return true
}

// reserve books the earliest free slot and returns how long to wait for it.
func (r *RateLimiter) reserve() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	slot := now
	if !r.lastCall.IsZero() {
		if next := r.lastCall.Add(r.minGap); next.After(now) {
			slot = next
		}
	}
	r.lastCall = slot
	return slot.Sub(now)
}

// MinGap returns the configured gap between calls.
func (r *RateLimiter) MinGap() time.Duration {
	if r == nil {
		return 0
	}
	return r.minGap
}

// LastCall returns the start time of the most recently reserved call.
func (r *RateLimiter) LastCall() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastCall
}
