// Package tarjama provides a best-effort English to Arabic translation engine.
//
// Tarjama tries an ordered chain of translation providers with caching,
// rate limiting, retries with backoff and chunking of long text. When no
// provider yields Arabic output it falls back to a local transliteration so
// that callers filling cosmetic fields are never blocked.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/FaizanAhmed099/tarjama"
//	    "github.com/FaizanAhmed099/tarjama/cache"
//	    "github.com/FaizanAhmed099/tarjama/provider"
//	)
//
//	func main() {
//	    // Build the provider chain from credentials
//	    providers, err := provider.FromConfig(provider.Config{
//	        TranslateComAPIKey: os.Getenv("TRANSLATE_COM_API_KEY"),
//	        LibreTranslateURL:  os.Getenv("LIBRETRANSLATE_URL"),
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Create translator
//	    t := tarjama.NewTranslator(providers,
//	        tarjama.WithCache(cache.NewInMemoryCache(6*time.Hour)),
//	        tarjama.WithRateLimit(time.Second),
//	    )
//
//	    ar, err := t.ToArabic(context.Background(), "Construction excellence since 1975.")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(ar)
//	}
package tarjama
