package tarjama

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key from the provider name, the language pair
// and the hash of the exact source text.
func CacheKey(provider, sourceLang, targetLang, text string) string {
	return provider + ":" + sourceLang + ":" + targetLang + ":" + HashText(text)
}
