package tarjama

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// BreakerConfig configures the per-provider circuit breaker.
type BreakerConfig struct {
	FailureThreshold uint32        // Consecutive failures that open the circuit
	OpenTimeout      time.Duration // How long the circuit stays open
	HalfOpenRequests uint32        // Trial requests allowed while half-open
}

// DefaultBreakerConfig returns sensible breaker defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		OpenTimeout:      time.Minute,
		HalfOpenRequests: 1,
	}
}

// BreakerProvider wraps a Provider with a circuit breaker. Only transient and
// rate-limit failures count against the provider.
type BreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

// NewBreakerProvider creates a provider guarded by a circuit breaker.
func NewBreakerProvider(provider Provider, cfg BreakerConfig, logger zerolog.Logger) *BreakerProvider {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = DefaultBreakerConfig().FailureThreshold
	}

	settings := gobreaker.Settings{
		Name:        provider.Name(),
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			kind := KindOf(err)
			return kind != KindTransient && kind != KindRateLimit
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("provider circuit breaker changed state")
		},
	}

	return &BreakerProvider{
		provider: provider,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped provider's name.
func (b *BreakerProvider) Name() string {
	return b.provider.Name()
}

// Translate implements Provider through the circuit breaker.
func (b *BreakerProvider) Translate(ctx context.Context, req TranslationRequest) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.provider.Translate(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", b.unavailable(err)
	}
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// Open reports whether the circuit currently rejects calls.
func (b *BreakerProvider) Open() bool {
	return b.cb.State() == gobreaker.StateOpen
}

func (b *BreakerProvider) unavailable(cause error) error {
	return &ProviderError{
		Provider: b.Name(),
		Message:  "provider temporarily disabled",
		Cause:    cause,
		Kind:     KindUnavailable,
	}
}

// State returns the breaker state.
func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}
