// Package provider defines the translation provider implementations.
package provider

import "github.com/FaizanAhmed099/tarjama"

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = tarjama.Provider

// TranslationRequest is an alias to the main package type.
type TranslationRequest = tarjama.TranslationRequest

// Provider names, used in cache keys, logs and configuration.
const (
	NameTranslateCom   = "translatecom"
	NameLibreTranslate = "libretranslate"
	NameOpenAI         = "openai"
)
