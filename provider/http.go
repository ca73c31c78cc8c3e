package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/imroc/req/v3"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	maxErrorBody       = 200
)

// newHTTPClient builds the req client shared by the HTTP providers. Retries
// stay disabled here; the translator owns the retry policy.
func newHTTPClient(timeout time.Duration) *req.Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return req.C().
		SetTimeout(timeout).
		SetUserAgent(tarjama.UserAgent()).
		SetCommonHeader("Accept", "application/json")
}

// classifyStatus maps an HTTP status code to a provider error kind.
func classifyStatus(code int) tarjama.ErrorKind {
	switch {
	case code == http.StatusTooManyRequests:
		return tarjama.KindRateLimit
	case code == http.StatusRequestTimeout || code >= http.StatusInternalServerError:
		return tarjama.KindTransient
	default:
		return tarjama.KindPermanent
	}
}

// statusError converts a non-2xx response into a ProviderError.
func statusError(provider string, resp *req.Response) error {
	code := resp.GetStatusCode()
	return &tarjama.ProviderError{
		Provider:   provider,
		Message:    fmt.Sprintf("HTTP %d: %s", code, truncate(resp.String(), maxErrorBody)),
		Kind:       classifyStatus(code),
		StatusCode: code,
		RetryAfter: parseRetryAfter(resp.GetHeader("Retry-After"), time.Now()),
	}
}

// transportError wraps a network-level failure. Cancellation is passed through.
func transportError(provider string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &tarjama.ProviderError{
		Provider: provider,
		Message:  "request failed",
		Cause:    err,
		Kind:     tarjama.KindTransient,
	}
}

// invalidResponse reports a 2xx response the provider could not make sense of.
func invalidResponse(provider, message string, cause error) error {
	return &tarjama.ProviderError{
		Provider: provider,
		Message:  message,
		Cause:    cause,
		Kind:     tarjama.KindPermanent,
	}
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
