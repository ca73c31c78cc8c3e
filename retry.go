package tarjama

import (
	"context"
	"errors"
	"math"
	"time"
)

// BackoffFunc returns the wait before the next attempt. attempt is zero-based.
type BackoffFunc func(attempt int, err error) time.Duration

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxAttempts      int           // Total attempts including the first one
	BaseDelay        time.Duration // Initial delay for transient errors
	RateLimitDelay   time.Duration // Initial delay for rate-limit errors
	Multiplier       float64       // Backoff growth per attempt (default: 2)
	MaxDelay         time.Duration // Upper bound for a single delay
	RetryRateLimited bool          // Retry rate-limit errors instead of failing fast
	Backoff          BackoffFunc   // Optional override of the delay computation
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    5,
		BaseDelay:      500 * time.Millisecond,
		RateLimitDelay: 2 * time.Second,
		Multiplier:     2,
		MaxDelay:       30 * time.Second,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry executes a function with exponential backoff retry.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		// Check context before each attempt
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !cfg.shouldRetry(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < attempts-1 {
			if err := sleepContext(ctx, cfg.delay(attempt, err)); err != nil {
				return zero, err
			}
		}
	}

	return zero, lastErr
}

// IsRetryable checks if an error is retryable under the default policy.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == KindTransient
}

func (c RetryConfig) shouldRetry(err error) bool {
	switch KindOf(err) {
	case KindTransient:
		return true
	case KindRateLimit:
		return c.RetryRateLimited
	default:
		return false
	}
}

// delay computes the backoff for the given attempt. Rate-limit errors start
// from the larger RateLimitDelay and honour the provider's Retry-After.
func (c RetryConfig) delay(attempt int, err error) time.Duration {
	if c.Backoff != nil {
		return c.Backoff(attempt, err)
	}

	base := c.BaseDelay
	if IsRateLimited(err) && c.RateLimitDelay > base {
		base = c.RateLimitDelay
	}

	mult := c.Multiplier
	if mult < 1 {
		mult = 2
	}

	d := time.Duration(float64(base) * math.Pow(mult, float64(attempt)))

	var provErr *ProviderError
	if errors.As(err, &provErr) && provErr.RetryAfter > d {
		d = provErr.RetryAfter
	}

	if c.MaxDelay > 0 && d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
