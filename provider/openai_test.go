package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/sashabaranov/go-openai"
)

func TestOpenAIProvider_Name(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key"})
	if p.Name() != "openai" {
		t.Errorf("Expected name 'openai', got %q", p.Name())
	}
}

func TestOpenAIProvider_Defaults(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key"})

	if p.model != "gpt-4o-mini" {
		t.Errorf("Expected default model 'gpt-4o-mini', got %q", p.model)
	}
	if p.temperature != 0.3 {
		t.Errorf("Expected default temperature 0.3, got %f", p.temperature)
	}
}

func TestOpenAIProvider_MissingKey(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{})

	_, err := p.Translate(context.Background(), TranslationRequest{Text: "Hello"})

	var cfgErr *tarjama.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
}

func TestOpenAIProvider_BuildSystemPrompt(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Context: "construction company website",
	})

	prompt := p.buildSystemPrompt(TranslationRequest{SourceLang: "en", TargetLang: "ar"})

	for _, want := range []string{"English", "Modern Standard Arabic", "construction company website", `"translation"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}

	auto := p.buildSystemPrompt(TranslationRequest{SourceLang: "auto", TargetLang: "ar"})
	if !strings.Contains(auto, "from the source language") {
		t.Error("Expected auto source to be described generically")
	}
}

func TestOpenAIProvider_ParseResponse(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key"})

	tests := []struct {
		name    string
		content string
		want    string
		wantErr tarjama.ErrorKind
	}{
		{"translation key", `{"translation": " مرحبا "}`, "مرحبا", ""},
		{"other key", `{"text": "مرحبا"}`, "مرحبا", ""},
		{"empty", `{"translation": ""}`, "", tarjama.KindNoTranslation},
		{"no strings", `{"translation": 42}`, "", tarjama.KindNoTranslation},
		{"not json", `مرحبا`, "", tarjama.KindPermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.parseResponse(tt.content)
			if tt.wantErr == "" && err != nil {
				t.Fatalf("parseResponse() unexpected error: %v", err)
			}
			if tt.wantErr != "" && tarjama.KindOf(err) != tt.wantErr {
				t.Fatalf("parseResponse() error kind = %s, want %s (%v)", tarjama.KindOf(err), tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("parseResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyOpenAIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want tarjama.ErrorKind
	}{
		{"429", &openai.APIError{HTTPStatusCode: 429, Message: "slow down"}, tarjama.KindRateLimit},
		{"500", &openai.APIError{HTTPStatusCode: 500, Message: "oops"}, tarjama.KindTransient},
		{"401", &openai.APIError{HTTPStatusCode: 401, Message: "bad key"}, tarjama.KindPermanent},
		{"request 503", &openai.RequestError{HTTPStatusCode: 503, Err: errors.New("unavailable")}, tarjama.KindTransient},
		{"rate limit text", errors.New("Rate limit reached"), tarjama.KindRateLimit},
		{"timeout text", errors.New("i/o timeout"), tarjama.KindTransient},
		{"other", errors.New("invalid model"), tarjama.KindPermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyOpenAIError(tt.err); got != tt.want {
				t.Errorf("classifyOpenAIError() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOpenAIProvider_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "{\"translation\": \"رئيس مجلس الإدارة\"}"},
				"finish_reason": "stop"
			}]
		}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

	out, err := p.Translate(context.Background(), TranslationRequest{Text: "Chairman", SourceLang: "en", TargetLang: "ar"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "رئيس مجلس الإدارة" {
		t.Errorf("Expected 'رئيس مجلس الإدارة', got %q", out)
	}
}

func TestOpenAIProvider_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "requests", "code": "rate_limit_exceeded"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

	_, err := p.Translate(context.Background(), TranslationRequest{Text: "Chairman", SourceLang: "en", TargetLang: "ar"})

	var provErr *tarjama.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if provErr.Kind != tarjama.KindRateLimit {
		t.Errorf("Expected rate limit kind, got %s", provErr.Kind)
	}
	if provErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", provErr.StatusCode)
	}
}
