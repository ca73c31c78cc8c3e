package provider

import (
	"context"
	"sync"
	"time"
)

// MockCall records one call made to a MockProvider.
type MockCall struct {
	Request TranslationRequest
	At      time.Time
}

// MockProvider is a scripted provider for testing. It is safe for concurrent use.
type MockProvider struct {
	ProviderName string
	Translations map[string]string        // Map of source text to translation
	Fallback     func(text string) string // Used for unknown texts (default: echo the input)
	Errs         []error                  // Returned by successive calls before any translation
	Err          error                    // Returned by every call once Errs is drained
	Delay        time.Duration            // Simulated latency

	mu    sync.Mutex
	calls []MockCall
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		ProviderName: name,
		Translations: map[string]string{
			"Hello":                  "مرحبا",
			"Our Projects":           "مشاريعنا",
			"Chairman":               "رئيس مجلس الإدارة",
			"Board of Directors":     "مجلس الإدارة",
			"Contact Us":             "اتصل بنا",
			"Building the future.":   "نبني المستقبل.",
			"Quality and safety.":    "الجودة والسلامة.",
			"Welcome to our company": "مرحبا بكم في شركتنا",
		},
	}
}

// Name returns the configured provider name.
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Translate returns scripted errors or translations.
func (m *MockProvider) Translate(ctx context.Context, req TranslationRequest) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Request: req, At: time.Now()})
	var err error
	if len(m.Errs) > 0 {
		err = m.Errs[0]
		m.Errs = m.Errs[1:]
	} else {
		err = m.Err
	}
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.Delay):
		}
	}

	if err != nil {
		return "", err
	}

	if translation, ok := m.Translations[req.Text]; ok {
		return translation, nil
	}
	if m.Fallback != nil {
		return m.Fallback(req.Text), nil
	}
	// Unknown texts are echoed back untranslated
	return req.Text, nil
}

// CallCount returns the number of calls made so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the recorded calls.
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// Reset clears the recorded calls.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
