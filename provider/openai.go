package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using OpenAI's chat completions.
type OpenAIProvider struct {
	client      *openai.Client
	apiKey      string
	model       string
	temperature float32
	context     string
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key (required)
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
	Context     string  // What the content is for, e.g. "construction company website"
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temperature,
		context:     cfg.Context,
	}
}

// Name returns "openai".
func (p *OpenAIProvider) Name() string {
	return NameOpenAI
}

// Translate translates a single text.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslationRequest) (string, error) {
	if p.apiKey == "" {
		return "", &tarjama.ConfigurationError{
			Provider: p.Name(),
			Message:  "API key is not set",
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", &tarjama.ProviderError{
			Provider:   p.Name(),
			Message:    "OpenAI API call failed",
			Cause:      err,
			Kind:       classifyOpenAIError(err),
			StatusCode: statusOf(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &tarjama.ProviderError{
			Provider: p.Name(),
			Message:  "no response from OpenAI",
			Kind:     tarjama.KindTransient,
		}
	}

	return p.parseResponse(resp.Choices[0].Message.Content)
}

func (p *OpenAIProvider) buildSystemPrompt(req TranslationRequest) string {
	targetName := tarjama.GetLanguageName(req.TargetLang)

	source := "the source language"
	if req.SourceLang != "" && req.SourceLang != tarjama.LangAuto {
		source = tarjama.GetLanguageName(req.SourceLang)
	}

	contextText := "The content is general web content."
	if p.context != "" {
		contextText = fmt.Sprintf("The content is for: %s. Adapt the tone to be appropriate for this context.", p.context)
	}

	return fmt.Sprintf(`# Role
You are an expert native translator. You translate from %s into %s with the fluency of a highly educated native speaker.

# Context
%s

# Style Guide
- Keep personal names, company names and brand names recognisable; write them in %s script.
- Keep digits, URLs and email addresses unchanged.
- Preserve line breaks.

# Format
Return a valid JSON object with a single key "translation" holding the translated text.
Example: { "translation": "..." }
- Do NOT wrap in Markdown code blocks.`, source, targetName, contextText, targetName)
}

func (p *OpenAIProvider) parseResponse(content string) (string, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		return "", &tarjama.ProviderError{
			Provider: p.Name(),
			Message:  "invalid response format from OpenAI",
			Cause:    err,
			Kind:     tarjama.KindPermanent,
		}
	}

	if s, ok := obj["translation"].(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s), nil
	}

	// Fallback: first string value
	for _, v := range obj {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), nil
		}
	}

	return "", &tarjama.NoTranslationError{Provider: p.Name()}
}

// statusOf extracts the HTTP status from go-openai errors.
func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func classifyOpenAIError(err error) tarjama.ErrorKind {
	if code := statusOf(err); code != 0 {
		return classifyStatus(code)
	}

	// Check for common retryable conditions
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "rate limit") {
		return tarjama.KindRateLimit
	}
	retryablePatterns := []string{
		"timeout",
		"deadline exceeded",
		"connection refused",
		"connection reset",
		"temporary",
		"eof",
	}
	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return tarjama.KindTransient
		}
	}
	return tarjama.KindPermanent
}

// Verify OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)
