package tarjama

// Language codes understood by the providers.
const (
	// LangAuto asks the provider to detect the source language.
	LangAuto = "auto"
	// LangEnglish is the default source language.
	LangEnglish = "en"
	// LangArabic is the default target language.
	LangArabic = "ar"
)

// TranslationRequest is a single text to translate.
type TranslationRequest struct {
	Text       string // Source text (trimmed before use)
	SourceLang string // "en" or "auto" (default: "en")
	TargetLang string // Target language (default: "ar")
}

// normalized returns a copy with defaults applied and the text trimmed.
func (r TranslationRequest) normalized() TranslationRequest {
	r.Text = trimText(r.Text)
	r.SourceLang = NormalizeLang(r.SourceLang)
	if r.SourceLang == "" {
		r.SourceLang = LangEnglish
	}
	r.TargetLang = NormalizeLang(r.TargetLang)
	if r.TargetLang == "" {
		r.TargetLang = LangArabic
	}
	return r
}

// Result is the outcome of a Translate call.
type Result struct {
	Text           string            // Translated (or transliterated) text
	Provider       string            // Provider that produced the last chunk, empty for cache-only or fallback results
	Cached         bool              // True when every piece was served from cache
	Chunks         int               // Number of pieces the text was split into
	Transliterated bool              // True when the local fallback produced the text
	Attempts       []ProviderAttempt // Failed provider attempts encountered on the way
}

// ProviderAttempt records the outcome of one provider in the chain.
type ProviderAttempt struct {
	Provider string
	Success  bool
	Kind     ErrorKind
	Err      error
}

// TextNode represents a translatable unit of HTML content.
type TextNode struct {
	ID       string            // Unique identifier within the document
	Text     string            // Original text content (trimmed)
	Hash     string            // SHA-256 hash of Text
	NodeType string            // Content type, e.g. "html_text"
	Context  string            // Where the text sits in the document
	Metadata map[string]string // Additional info (parent tag, etc.)
}

// ProcessedContent is the result of translating a structured document.
type ProcessedContent struct {
	Content             string // Translated content
	TranslatedCount     int    // Number of nodes translated by a provider
	CachedCount         int    // Number of nodes served from cache
	TransliteratedCount int    // Number of nodes that fell back to transliteration
	FailedCount         int    // Number of nodes left untranslated
	TotalNodes          int    // Total translatable nodes found
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
}

// IgnoredTags contains HTML tags whose content should not be translated.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}
