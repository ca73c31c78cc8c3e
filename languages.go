package tarjama

import (
	"strings"
	"unicode"
)

// LanguageNames maps base language codes to human-readable names for AI prompts.
var LanguageNames = map[string]string{
	"ar": "Modern Standard Arabic",
	"en": "English",
	"fa": "Persian",
	"fr": "French",
	"he": "Hebrew",
	"ur": "Urdu",
}

// arabicBlock is the Unicode Arabic block (U+0600 to U+06FF).
var arabicBlock = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0600, Hi: 0x06FF, Stride: 1}},
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(langCode string) string {
	if name, ok := LanguageNames[NormalizeLang(langCode)]; ok {
		return name
	}
	return langCode
}

// NormalizeLang reduces a language code to its lower-case base form
// ("ar_SA" and "AR-sa" become "ar"). "auto" is preserved.
func NormalizeLang(langCode string) string {
	code := strings.ToLower(strings.TrimSpace(langCode))
	if i := strings.IndexAny(code, "_-"); i >= 0 {
		code = code[:i]
	}
	return code
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(langCode string) string {
	if RTLLanguages[NormalizeLang(langCode)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(langCode string) bool {
	return GetDirection(langCode) == "rtl"
}

// HasArabic reports whether s contains at least one rune of the Arabic block.
func HasArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(arabicBlock, r) {
			return true
		}
	}
	return false
}

// InTargetScript reports whether s looks like output in the target language.
// Arabic-script targets require an Arabic rune; other targets only require
// non-blank output.
func InTargetScript(s, targetLang string) bool {
	switch NormalizeLang(targetLang) {
	case "ar", "fa", "ur":
		return HasArabic(s)
	default:
		return strings.TrimSpace(s) != ""
	}
}

func trimText(s string) string {
	return strings.TrimSpace(s)
}
