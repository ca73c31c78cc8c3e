package provider

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/imroc/req/v3"
)

// DefaultTranslateComURL is the translate.com machine translation endpoint.
const DefaultTranslateComURL = "https://translation-api.translate.com/translate/v1/mt"

// TranslateComConfig holds configuration for the translate.com provider.
type TranslateComConfig struct {
	APIKey  string        // API key sent as x-api-key (required)
	URL     string        // Endpoint (default: DefaultTranslateComURL)
	Timeout time.Duration // HTTP client timeout
}

// TranslateComProvider implements Provider using the translate.com API.
// Requests are form-encoded.
type TranslateComProvider struct {
	client *req.Client
	apiKey string
	url    string
}

// NewTranslateComProvider creates a new translate.com provider.
func NewTranslateComProvider(cfg TranslateComConfig) *TranslateComProvider {
	url := cfg.URL
	if url == "" {
		url = DefaultTranslateComURL
	}
	return &TranslateComProvider{
		client: newHTTPClient(cfg.Timeout),
		apiKey: cfg.APIKey,
		url:    url,
	}
}

// Name returns "translatecom".
func (p *TranslateComProvider) Name() string {
	return NameTranslateCom
}

// translateComResponse covers every response shape the API has returned.
type translateComResponse struct {
	Translation string `json:"translation"`
	Output      *struct {
		TranslatedText string `json:"translated_text"`
	} `json:"output"`
	TranslatedText      string `json:"translatedText"`
	TranslatedTextSnake string `json:"translated_text"`
}

func (r *translateComResponse) text() string {
	switch {
	case r.Translation != "":
		return r.Translation
	case r.Output != nil && r.Output.TranslatedText != "":
		return r.Output.TranslatedText
	case r.TranslatedText != "":
		return r.TranslatedText
	default:
		return r.TranslatedTextSnake
	}
}

// Translate translates a single text.
func (p *TranslateComProvider) Translate(ctx context.Context, r TranslationRequest) (string, error) {
	if p.apiKey == "" {
		return "", &tarjama.ConfigurationError{
			Provider: p.Name(),
			Message:  "API key is not set",
		}
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", p.apiKey).
		SetFormData(map[string]string{
			"source_language":      r.SourceLang,
			"translation_language": r.TargetLang,
			"text":                 r.Text,
		}).
		Post(p.url)
	if err != nil {
		return "", transportError(p.Name(), err)
	}
	if !resp.IsSuccessState() {
		return "", statusError(p.Name(), resp)
	}

	var body translateComResponse
	if err := json.Unmarshal(resp.Bytes(), &body); err != nil {
		return "", invalidResponse(p.Name(), "invalid response body", err)
	}

	text := strings.TrimSpace(body.text())
	if text == "" {
		return "", &tarjama.NoTranslationError{Provider: p.Name()}
	}
	return text, nil
}

// Verify TranslateComProvider implements Provider
var _ Provider = (*TranslateComProvider)(nil)
