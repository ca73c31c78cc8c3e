package tarjama

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/FaizanAhmed099/tarjama/cache"
	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// Defaults for a Translator built without options.
const (
	DefaultMinGap      = time.Second
	DefaultCallTimeout = 12 * time.Second
	DefaultCacheTTL    = 6 * time.Hour
)

// errChainFailed marks a pass in which no provider produced usable output.
var errChainFailed = errors.New("no provider produced a translation")

// Provider is the interface for translation backends.
type Provider interface {
	// Name identifies the provider in cache keys and logs.
	Name() string
	// Translate translates a single text.
	Translate(ctx context.Context, req TranslationRequest) (string, error)
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// ContentProcessor is the interface for content processing.
type ContentProcessor interface {
	Extract(content string) (interface{}, []TextNode, error)
	Apply(parsed interface{}, nodes []TextNode, translations map[string]string) (string, error)
	ContentType() string
}

// Translator resolves English text to Arabic through an ordered provider
// chain. It is safe for concurrent use; build one per process and share it.
type Translator struct {
	providers     []Provider
	cache         TranslationCache
	limiter       *RateLimiter
	retry         RetryConfig
	chunk         ChunkConfig
	callTimeout   time.Duration
	breaker       *BreakerConfig
	transliterate bool
	logger        zerolog.Logger
	processors    map[string]ContentProcessor
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache. A nil cache disables caching.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithRateLimit sets the minimum gap between outbound provider calls.
func WithRateLimit(minGap time.Duration) TranslatorOption {
	return func(t *Translator) {
		t.limiter = NewRateLimiter(minGap)
	}
}

// WithRetryPolicy sets the retry policy applied to every provider call.
func WithRetryPolicy(cfg RetryConfig) TranslatorOption {
	return func(t *Translator) {
		t.retry = cfg
	}
}

// WithChunking sets how long texts are split.
func WithChunking(cfg ChunkConfig) TranslatorOption {
	return func(t *Translator) {
		t.chunk = cfg
	}
}

// WithCallTimeout bounds every single provider call. Zero disables the bound.
func WithCallTimeout(d time.Duration) TranslatorOption {
	return func(t *Translator) {
		t.callTimeout = d
	}
}

// WithCircuitBreaker guards every provider with a circuit breaker.
func WithCircuitBreaker(cfg BreakerConfig) TranslatorOption {
	return func(t *Translator) {
		t.breaker = &cfg
	}
}

// WithTransliteration enables or disables the local transliteration fallback.
func WithTransliteration(enabled bool) TranslatorOption {
	return func(t *Translator) {
		t.transliterate = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// WithProcessor registers a content processor.
func WithProcessor(processor ContentProcessor) TranslatorOption {
	return func(t *Translator) {
		t.processors[processor.ContentType()] = processor
	}
}

// NewTranslator creates a Translator trying providers in the given order.
func NewTranslator(providers []Provider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		providers:     append([]Provider(nil), providers...),
		cache:         cache.NewInMemoryCache(DefaultCacheTTL),
		limiter:       NewRateLimiter(DefaultMinGap),
		retry:         DefaultRetryConfig(),
		chunk:         DefaultChunkConfig(),
		callTimeout:   DefaultCallTimeout,
		transliterate: true,
		logger:        zerolog.Nop(),
		processors:    make(map[string]ContentProcessor),
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.breaker != nil {
		for i, p := range t.providers {
			t.providers[i] = NewBreakerProvider(p, *t.breaker, t.logger)
		}
	}

	return t
}

// ToArabic translates English text to Arabic. Blank input yields "" without
// any provider call. When no provider produces Arabic output the result is a
// transliteration; an *ExhaustedError is returned only when that fails too.
func (t *Translator) ToArabic(ctx context.Context, text string) (string, error) {
	res, err := t.Translate(ctx, TranslationRequest{
		Text:       text,
		SourceLang: LangEnglish,
		TargetLang: LangArabic,
	})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Translate resolves a request through cache, providers and fallbacks.
func (t *Translator) Translate(ctx context.Context, req TranslationRequest) (*Result, error) {
	req = req.normalized()
	if req.Text == "" {
		return &Result{}, nil
	}

	if len(t.providers) == 0 && !t.transliterate {
		return nil, &ConfigurationError{Message: "no translation providers configured"}
	}

	res, attempts, err := t.translateText(ctx, req)
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Some providers mishandle an explicit source for mixed input
	if req.SourceLang != LangAuto && producedOutput(attempts) {
		auto := req
		auto.SourceLang = LangAuto

		t.logger.Debug().Int("length", len(req.Text)).Msg("retrying translation with auto-detected source")

		var more []ProviderAttempt
		res, more, err = t.translateSingle(ctx, auto)
		attempts = append(attempts, more...)
		if err == nil {
			res.Attempts = attempts
			return res, nil
		}

		if ctx.Err() == nil && t.chunk.needsChunking(req.Text) {
			res, more, err = t.translateChunked(ctx, auto)
			attempts = append(attempts, more...)
			if err == nil {
				res.Attempts = attempts
				return res, nil
			}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	if t.transliterate && NormalizeLang(req.TargetLang) == LangArabic {
		if out := Transliterate(req.Text); HasArabic(out) {
			t.logger.Info().
				Int("attempts", len(attempts)).
				Msg("no provider produced Arabic output, using transliteration")
			return &Result{
				Text:           out,
				Chunks:         1,
				Transliterated: true,
				Attempts:       attempts,
			}, nil
		}
	}

	exhausted := &ExhaustedError{Attempts: failedAttempts(attempts)}
	t.logger.Error().Str("reason", exhausted.Reason()).Msg("translation failed")
	return nil, exhausted
}

// translateText picks the chunked or single-call path by length.
func (t *Translator) translateText(ctx context.Context, req TranslationRequest) (*Result, []ProviderAttempt, error) {
	if t.chunk.needsChunking(req.Text) {
		return t.translateChunked(ctx, req)
	}
	return t.translateSingle(ctx, req)
}

func (t *Translator) translateSingle(ctx context.Context, req TranslationRequest) (*Result, []ProviderAttempt, error) {
	piece, attempts, err := t.translateOnce(ctx, req)
	if err != nil {
		return nil, attempts, err
	}
	return &Result{
		Text:     piece.text,
		Provider: piece.provider,
		Cached:   piece.cached,
		Chunks:   1,
		Attempts: attempts,
	}, attempts, nil
}

// translateChunked translates sentence-packed chunks in order and joins them
// with single spaces.
func (t *Translator) translateChunked(ctx context.Context, req TranslationRequest) (*Result, []ProviderAttempt, error) {
	chunks := ChunkText(req.Text, t.chunk.MaxSize)
	parts := make([]string, 0, len(chunks))
	var attempts []ProviderAttempt

	res := &Result{Cached: true, Chunks: len(chunks)}
	prevCached := true

	for i, chunk := range chunks {
		if i > 0 && !prevCached {
			if err := sleepContext(ctx, t.chunk.Delay); err != nil {
				return nil, attempts, err
			}
		}

		sub := req
		sub.Text = chunk

		piece, more, err := t.translateOnce(ctx, sub)
		attempts = append(attempts, more...)
		if err != nil {
			return nil, attempts, err
		}

		parts = append(parts, piece.text)
		prevCached = piece.cached
		res.Cached = res.Cached && piece.cached
		if piece.provider != "" {
			res.Provider = piece.provider
		}
	}

	res.Text = strings.TrimSpace(strings.Join(parts, " "))
	res.Attempts = attempts
	return res, attempts, nil
}

type piece struct {
	text     string
	provider string
	cached   bool
}

// translateOnce runs one text through the cache and the provider chain.
func (t *Translator) translateOnce(ctx context.Context, req TranslationRequest) (piece, []ProviderAttempt, error) {
	if len(t.providers) == 0 {
		return piece{}, nil, errChainFailed
	}

	if t.cache != nil {
		for _, p := range t.providers {
			key := CacheKey(p.Name(), req.SourceLang, req.TargetLang, req.Text)
			if v, ok := t.cache.Get(key); ok && InTargetScript(v, req.TargetLang) {
				t.logger.Debug().Str("provider", p.Name()).Msg("translation served from cache")
				return piece{text: v, provider: p.Name(), cached: true}, nil, nil
			}
		}
	}

	var attempts []ProviderAttempt
	for i, p := range t.providers {
		cfg := t.retry
		// Nowhere left to go after the last provider, so wait out its throttling
		if i == len(t.providers)-1 {
			cfg.RetryRateLimited = true
		}

		out, err := WithRetry(ctx, cfg, func() (string, error) {
			return t.call(ctx, p, req)
		})
		out = strings.TrimSpace(out)
		if err == nil && !InTargetScript(out, req.TargetLang) {
			err = &NoTranslationError{Provider: p.Name(), Output: out}
		}

		if err == nil {
			attempts = append(attempts, ProviderAttempt{Provider: p.Name(), Success: true})
			if t.cache != nil {
				key := CacheKey(p.Name(), req.SourceLang, req.TargetLang, req.Text)
				if cerr := t.cache.Set(key, out); cerr != nil {
					t.logger.Warn().Err(cerr).Msg("failed to cache translation")
				}
			}
			return piece{text: out, provider: p.Name()}, attempts, nil
		}

		if ctx.Err() != nil {
			return piece{}, attempts, ctx.Err()
		}

		kind := KindOf(err)
		attempts = append(attempts, ProviderAttempt{Provider: p.Name(), Kind: kind, Err: err})
		t.logger.Warn().Err(err).
			Str("provider", p.Name()).
			Str("kind", string(kind)).
			Str("source", req.SourceLang).
			Msg("translation provider failed")
	}

	return piece{}, attempts, errChainFailed
}

// call performs one rate-limited, time-bounded provider call. A provider
// behind an open circuit is skipped without taking a rate-limit slot.
func (t *Translator) call(ctx context.Context, p Provider, req TranslationRequest) (string, error) {
	if b, ok := p.(*BreakerProvider); ok && b.Open() {
		return "", b.unavailable(gobreaker.ErrOpenState)
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}

	callCtx, cancel := ctx, context.CancelFunc(func() {})
	if t.callTimeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, t.callTimeout)
	}
	defer cancel()

	out, err := p.Translate(callCtx, req)
	if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return "", &ProviderError{
			Provider: p.Name(),
			Message:  "call timed out",
			Cause:    err,
			Kind:     KindTransient,
		}
	}
	return out, err
}

// producedOutput reports whether some provider answered without target-script text.
func producedOutput(attempts []ProviderAttempt) bool {
	for _, a := range attempts {
		if a.Kind == KindNoTranslation {
			return true
		}
	}
	return false
}

func failedAttempts(attempts []ProviderAttempt) []ProviderAttempt {
	failed := make([]ProviderAttempt, 0, len(attempts))
	for _, a := range attempts {
		if !a.Success {
			failed = append(failed, a)
		}
	}
	return failed
}

// Process translates content of the specified type to Arabic. Nodes that
// cannot be translated keep their original text.
func (t *Translator) Process(ctx context.Context, content string, contentType string) (*ProcessedContent, error) {
	processor, ok := t.processors[contentType]
	if !ok {
		return nil, &ProcessorError{
			Message:     "no processor registered for content type",
			ContentType: contentType,
		}
	}

	// Extract text nodes
	parsed, nodes, err := processor.Extract(content)
	if err != nil {
		return nil, err
	}

	if len(nodes) == 0 {
		return &ProcessedContent{Content: content}, nil
	}

	result := &ProcessedContent{TotalNodes: len(nodes)}
	translations := make(map[string]string, len(nodes))

	for _, node := range nodes {
		res, err := t.Translate(ctx, TranslationRequest{
			Text:       node.Text,
			SourceLang: LangEnglish,
			TargetLang: LangArabic,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			result.FailedCount++
			continue
		}

		translations[node.Hash] = res.Text
		switch {
		case res.Transliterated:
			result.TransliteratedCount++
		case res.Cached:
			result.CachedCount++
		default:
			result.TranslatedCount++
		}
	}

	// Apply translations
	out, err := processor.Apply(parsed, nodes, translations)
	if err != nil {
		return nil, err
	}

	// Set document attributes only when a full document was given
	if lower := strings.ToLower(content); contentType == "html" &&
		(strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype")) {
		out = setHTMLAttributes(out, LangArabic)
	}

	result.Content = out
	return result, nil
}

// ProcessHTML is a convenience method for processing HTML content.
func (t *Translator) ProcessHTML(ctx context.Context, html string) (*ProcessedContent, error) {
	return t.Process(ctx, html, "html")
}

// setHTMLAttributes sets lang and dir attributes on the <html> tag.
func setHTMLAttributes(html, lang string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	htmlTag := doc.Find("html")
	if htmlTag.Length() > 0 {
		htmlTag.SetAttr("lang", lang)
		htmlTag.SetAttr("dir", GetDirection(lang))
	}

	result, err := doc.Html()
	if err != nil {
		return html
	}

	return result
}

// Providers returns the provider names in chain order.
func (t *Translator) Providers() []string {
	names := make([]string, len(t.providers))
	for i, p := range t.providers {
		names[i] = p.Name()
	}
	return names
}

// Limiter returns the rate limiter for inspection.
func (t *Translator) Limiter() *RateLimiter {
	return t.limiter
}
