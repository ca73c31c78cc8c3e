// Package cache stores provider translations for the resolver.
//
// Keys are built by tarjama.CacheKey and embed the provider name, so a
// translation from one provider never shadows another. Only provider output
// is ever written; transliterations are recomputed on every call.
package cache

// TranslationCache is the contract the resolver reads and writes through.
// A miss and an expired entry look the same to callers.
type TranslationCache interface {
	Get(key string) (value string, ok bool)
	Set(key, value string) error
}
