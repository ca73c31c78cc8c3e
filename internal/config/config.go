// Package config loads runtime configuration from defaults, an optional YAML
// file, a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/FaizanAhmed099/tarjama/provider"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	Server        ServerConfig    `mapstructure:"server"`
	Providers     ProvidersConfig `mapstructure:"providers"`
	Cache         CacheConfig     `mapstructure:"cache"`
	RateLimit     RateLimitConfig `mapstructure:"ratelimit"`
	Retry         RetryConfig     `mapstructure:"retry"`
	Chunk         ChunkConfig     `mapstructure:"chunk"`
	Breaker       BreakerConfig   `mapstructure:"breaker"`
	Log           LogConfig       `mapstructure:"log"`
	CallTimeout   time.Duration   `mapstructure:"call_timeout"`
	Transliterate bool            `mapstructure:"transliterate"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release or test
}

type ProvidersConfig struct {
	Order          []string             `mapstructure:"order"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	TranslateCom   TranslateComConfig   `mapstructure:"translatecom"`
	LibreTranslate LibreTranslateConfig `mapstructure:"libretranslate"`
	OpenAI         OpenAIConfig         `mapstructure:"openai"`
}

type TranslateComConfig struct {
	APIKey string `mapstructure:"api_key"`
	URL    string `mapstructure:"url"`
}

type LibreTranslateConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
	Context string `mapstructure:"context"`
}

type CacheConfig struct {
	TTL       time.Duration `mapstructure:"ttl"`
	RedisURL  string        `mapstructure:"redis_url"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

type RateLimitConfig struct {
	MinGap time.Duration `mapstructure:"min_gap"`
}

type RetryConfig struct {
	MaxAttempts    int           `mapstructure:"max_attempts"`
	BaseDelay      time.Duration `mapstructure:"base_delay"`
	RateLimitDelay time.Duration `mapstructure:"rate_limit_delay"`
	MaxDelay       time.Duration `mapstructure:"max_delay"`
}

type ChunkConfig struct {
	Threshold int           `mapstructure:"threshold"`
	MaxSize   int           `mapstructure:"max_size"`
	Delay     time.Duration `mapstructure:"delay"`
}

type BreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
	OpenTimeout      time.Duration `mapstructure:"open_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// Environment variables that do not follow the dotted-key naming.
var envAliases = map[string]string{
	"providers.translatecom.api_key":   "TRANSLATE_COM_API_KEY",
	"providers.libretranslate.url":     "LIBRETRANSLATE_URL",
	"providers.libretranslate.api_key": "LIBRETRANSLATE_API_KEY",
	"providers.openai.api_key":         "OPENAI_API_KEY",
	"providers.openai.model":           "OPENAI_MODEL",
	"cache.redis_url":                  "REDIS_URL",
	"server.port":                      "PORT",
	"log.level":                        "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	retry := tarjama.DefaultRetryConfig()
	chunk := tarjama.DefaultChunkConfig()
	breaker := tarjama.DefaultBreakerConfig()

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "release")

	v.SetDefault("providers.order", provider.DefaultOrder)
	v.SetDefault("providers.timeout", 15*time.Second)
	v.SetDefault("providers.translatecom.api_key", "")
	v.SetDefault("providers.translatecom.url", provider.DefaultTranslateComURL)
	v.SetDefault("providers.libretranslate.url", "")
	v.SetDefault("providers.libretranslate.api_key", "")
	v.SetDefault("providers.openai.api_key", "")
	v.SetDefault("providers.openai.model", "gpt-4o-mini")
	v.SetDefault("providers.openai.base_url", "")
	v.SetDefault("providers.openai.context", "")

	v.SetDefault("cache.ttl", tarjama.DefaultCacheTTL)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.key_prefix", "tarjama:")

	v.SetDefault("ratelimit.min_gap", tarjama.DefaultMinGap)

	v.SetDefault("retry.max_attempts", retry.MaxAttempts)
	v.SetDefault("retry.base_delay", retry.BaseDelay)
	v.SetDefault("retry.rate_limit_delay", retry.RateLimitDelay)
	v.SetDefault("retry.max_delay", retry.MaxDelay)

	v.SetDefault("chunk.threshold", chunk.Threshold)
	v.SetDefault("chunk.max_size", chunk.MaxSize)
	v.SetDefault("chunk.delay", chunk.Delay)

	v.SetDefault("breaker.enabled", false)
	v.SetDefault("breaker.failure_threshold", breaker.FailureThreshold)
	v.SetDefault("breaker.open_timeout", breaker.OpenTimeout)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("call_timeout", tarjama.DefaultCallTimeout)
	v.SetDefault("transliterate", true)
}

// Load reads the configuration. configFile may be empty. A missing .env file
// is not an error.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		// Dotted-key variables still win when both are set
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the translator cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	case c.Chunk.MaxSize < 0 || c.Chunk.Threshold < 0:
		return errors.New("chunk sizes must not be negative")
	case c.Chunk.MaxSize > 0 && c.Chunk.Threshold > 0 && c.Chunk.MaxSize > c.Chunk.Threshold:
		return fmt.Errorf("chunk.max_size %d exceeds chunk.threshold %d", c.Chunk.MaxSize, c.Chunk.Threshold)
	case c.Server.Mode != "debug" && c.Server.Mode != "release" && c.Server.Mode != "test":
		return fmt.Errorf("invalid server.mode %q", c.Server.Mode)
	case c.Retry.MaxAttempts < 1:
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

// ProviderConfig returns the settings for provider.FromConfig.
func (c *Config) ProviderConfig() provider.Config {
	p := c.Providers
	return provider.Config{
		Order:                p.Order,
		TranslateComAPIKey:   p.TranslateCom.APIKey,
		TranslateComURL:      p.TranslateCom.URL,
		LibreTranslateURL:    p.LibreTranslate.URL,
		LibreTranslateAPIKey: p.LibreTranslate.APIKey,
		OpenAIAPIKey:         p.OpenAI.APIKey,
		OpenAIModel:          p.OpenAI.Model,
		OpenAIBaseURL:        p.OpenAI.BaseURL,
		OpenAIContext:        p.OpenAI.Context,
		Timeout:              p.Timeout,
	}
}

// TranslatorOptions converts the resolver settings into translator options.
// The cache and logger are wired by the caller.
func (c *Config) TranslatorOptions() []tarjama.TranslatorOption {
	retry := tarjama.DefaultRetryConfig()
	retry.MaxAttempts = c.Retry.MaxAttempts
	retry.BaseDelay = c.Retry.BaseDelay
	retry.RateLimitDelay = c.Retry.RateLimitDelay
	retry.MaxDelay = c.Retry.MaxDelay

	opts := []tarjama.TranslatorOption{
		tarjama.WithRateLimit(c.RateLimit.MinGap),
		tarjama.WithRetryPolicy(retry),
		tarjama.WithChunking(tarjama.ChunkConfig{
			Threshold: c.Chunk.Threshold,
			MaxSize:   c.Chunk.MaxSize,
			Delay:     c.Chunk.Delay,
		}),
		tarjama.WithCallTimeout(c.CallTimeout),
		tarjama.WithTransliteration(c.Transliterate),
	}
	if c.Breaker.Enabled {
		opts = append(opts, tarjama.WithCircuitBreaker(tarjama.BreakerConfig{
			FailureThreshold: c.Breaker.FailureThreshold,
			OpenTimeout:      c.Breaker.OpenTimeout,
			HalfOpenRequests: 1,
		}))
	}
	return opts
}
