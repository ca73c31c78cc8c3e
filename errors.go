package tarjama

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorKind classifies provider failures for the retry and chain logic.
type ErrorKind string

const (
	// KindTransient covers network errors, timeouts and 5xx responses. Retried with backoff.
	KindTransient ErrorKind = "transient"
	// KindRateLimit means the provider is throttling (HTTP 429). The chain moves on.
	KindRateLimit ErrorKind = "rate_limit"
	// KindPermanent covers rejected requests and malformed responses. Never retried.
	KindPermanent ErrorKind = "permanent"
	// KindUnavailable means the provider was skipped (open circuit breaker).
	KindUnavailable ErrorKind = "unavailable"
	// KindConfiguration means the provider is missing a credential.
	KindConfiguration ErrorKind = "configuration"
	// KindNoTranslation means the provider answered without target-script output.
	KindNoTranslation ErrorKind = "no_translation"
)

// MessageUnavailable is the user-facing message carried by ExhaustedError.
const MessageUnavailable = "The translation service is currently unavailable."

// ConfigurationError indicates a provider cannot be used as configured.
type ConfigurationError struct {
	Provider string
	Message  string
}

func (e *ConfigurationError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("configuration error (%s): %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// ProviderError indicates a translation provider failure.
type ProviderError struct {
	Provider   string
	Message    string
	Cause      error
	Kind       ErrorKind
	StatusCode int           // HTTP status, 0 when not applicable
	RetryAfter time.Duration // Provider-suggested wait, 0 when absent
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	b.WriteString("provider error")
	if e.Provider != "" {
		b.WriteString(" (" + e.Provider + ")")
	}
	b.WriteString(": " + e.Message)
	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}
	return b.String()
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NoTranslationError indicates a provider answered but the output lacked
// characters of the target script (echoed input, empty string, etc.).
type NoTranslationError struct {
	Provider string
	Output   string
}

func (e *NoTranslationError) Error() string {
	return fmt.Sprintf("provider %s produced no translation (output %q)", e.Provider, e.Output)
}

// ExhaustedError is returned when every provider and every fallback failed.
// Its message is safe to show to end users.
type ExhaustedError struct {
	Attempts []ProviderAttempt
}

func (e *ExhaustedError) Error() string {
	return MessageUnavailable
}

// Unwrap exposes the attempt errors to errors.Is/As.
func (e *ExhaustedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		if a.Err != nil {
			errs = append(errs, a.Err)
		}
	}
	return errs
}

// Reason summarizes the attempts for logs.
func (e *ExhaustedError) Reason() string {
	if len(e.Attempts) == 0 {
		return "no providers configured"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %s", a.Provider, a.Kind))
	}
	return strings.Join(parts, "; ")
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a content processing failure (parse error, etc.).
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string // The type of content that failed to process
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}

// KindOf returns the classification of err as seen by the provider chain.
func KindOf(err error) ErrorKind {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return KindConfiguration
	}
	var noTr *NoTranslationError
	if errors.As(err, &noTr) {
		return KindNoTranslation
	}
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		if provErr.Kind == "" {
			return KindPermanent
		}
		return provErr.Kind
	}
	return KindPermanent
}

// IsRateLimited reports whether err is a provider throttling signal.
func IsRateLimited(err error) bool {
	return err != nil && KindOf(err) == KindRateLimit
}
