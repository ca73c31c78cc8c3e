package provider

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/imroc/req/v3"
)

// LibreTranslateConfig holds configuration for a LibreTranslate instance.
type LibreTranslateConfig struct {
	URL     string        // Base URL of the instance, e.g. "https://libretranslate.example.com" (required)
	APIKey  string        // API key, only needed by instances that enforce one
	Timeout time.Duration // HTTP client timeout
}

// LibreTranslateProvider implements Provider using the LibreTranslate JSON API.
type LibreTranslateProvider struct {
	client  *req.Client
	baseURL string
	apiKey  string
}

// NewLibreTranslateProvider creates a new LibreTranslate provider.
func NewLibreTranslateProvider(cfg LibreTranslateConfig) *LibreTranslateProvider {
	return &LibreTranslateProvider{
		client:  newHTTPClient(cfg.Timeout),
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
	}
}

// Name returns "libretranslate".
func (p *LibreTranslateProvider) Name() string {
	return NameLibreTranslate
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Translate translates a single text.
func (p *LibreTranslateProvider) Translate(ctx context.Context, r TranslationRequest) (string, error) {
	if p.baseURL == "" {
		return "", &tarjama.ConfigurationError{
			Provider: p.Name(),
			Message:  "instance URL is not set",
		}
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBodyJsonMarshal(libreRequest{
			Q:      r.Text,
			Source: r.SourceLang,
			Target: r.TargetLang,
			Format: "text",
			APIKey: p.apiKey,
		}).
		Post(p.baseURL + "/translate")
	if err != nil {
		return "", transportError(p.Name(), err)
	}
	if !resp.IsSuccessState() {
		return "", statusError(p.Name(), resp)
	}

	var body libreResponse
	if err := json.Unmarshal(resp.Bytes(), &body); err != nil {
		return "", invalidResponse(p.Name(), "invalid response body", err)
	}
	if body.Error != "" {
		return "", invalidResponse(p.Name(), body.Error, nil)
	}

	text := strings.TrimSpace(body.TranslatedText)
	if text == "" {
		return "", &tarjama.NoTranslationError{Provider: p.Name()}
	}
	return text, nil
}

// Verify LibreTranslateProvider implements Provider
var _ Provider = (*LibreTranslateProvider)(nil)
