package provider

import (
	"fmt"
	"strings"
	"time"
)

// DefaultOrder is the provider priority used when Config.Order is empty.
var DefaultOrder = []string{NameTranslateCom, NameLibreTranslate, NameOpenAI}

// Config holds the credentials and endpoints of every supported provider.
type Config struct {
	Order []string // Provider names in priority order

	TranslateComAPIKey string
	TranslateComURL    string

	LibreTranslateURL    string
	LibreTranslateAPIKey string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	OpenAIContext string

	Timeout time.Duration // HTTP client timeout for every provider
}

// FromConfig builds the provider chain in priority order. Providers whose
// credentials are missing are left out of the chain rather than failing.
func FromConfig(cfg Config) ([]Provider, error) {
	order := cfg.Order
	if len(order) == 0 {
		order = DefaultOrder
	}

	providers := make([]Provider, 0, len(order))
	seen := make(map[string]bool, len(order))

	for _, raw := range order {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case NameTranslateCom:
			if cfg.TranslateComAPIKey == "" {
				continue
			}
			providers = append(providers, NewTranslateComProvider(TranslateComConfig{
				APIKey:  cfg.TranslateComAPIKey,
				URL:     cfg.TranslateComURL,
				Timeout: cfg.Timeout,
			}))
		case NameLibreTranslate:
			if cfg.LibreTranslateURL == "" {
				continue
			}
			providers = append(providers, NewLibreTranslateProvider(LibreTranslateConfig{
				URL:     cfg.LibreTranslateURL,
				APIKey:  cfg.LibreTranslateAPIKey,
				Timeout: cfg.Timeout,
			}))
		case NameOpenAI:
			if cfg.OpenAIAPIKey == "" {
				continue
			}
			providers = append(providers, NewOpenAIProvider(OpenAIConfig{
				APIKey:  cfg.OpenAIAPIKey,
				Model:   cfg.OpenAIModel,
				BaseURL: cfg.OpenAIBaseURL,
				Context: cfg.OpenAIContext,
			}))
		default:
			return nil, fmt.Errorf("unknown translation provider %q", raw)
		}
	}

	return providers, nil
}
