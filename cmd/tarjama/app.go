package main

import (
	"fmt"
	"io"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/FaizanAhmed099/tarjama/cache"
	"github.com/FaizanAhmed099/tarjama/internal/config"
	"github.com/FaizanAhmed099/tarjama/internal/logger"
	"github.com/FaizanAhmed099/tarjama/processor"
	"github.com/FaizanAhmed099/tarjama/provider"
	"github.com/rs/zerolog"
)

// app holds what every subcommand needs.
type app struct {
	cfg        *config.Config
	logger     zerolog.Logger
	translator *tarjama.Translator
	closers    []io.Closer
}

// newApp loads the configuration and builds the translator. Extra options
// are applied after the configured ones.
func newApp(flags *globalFlags, logOut io.Writer, extra ...tarjama.TranslatorOption) (*app, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	log, err := logger.New(logOut, level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	providers, err := provider.FromConfig(cfg.ProviderConfig())
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		log.Warn().Msg("no translation providers configured, only transliteration is available")
	}

	a := &app{cfg: cfg, logger: log}

	var store tarjama.TranslationCache = cache.NewInMemoryCache(cfg.Cache.TTL)
	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			URL:       cfg.Cache.RedisURL,
			TTL:       cfg.Cache.TTL,
			KeyPrefix: cfg.Cache.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		store = rc
		a.closers = append(a.closers, rc)
	}

	opts := append(cfg.TranslatorOptions(),
		tarjama.WithCache(store),
		tarjama.WithLogger(log),
		tarjama.WithProcessor(processor.NewHTMLProcessor()),
	)
	opts = append(opts, extra...)

	a.translator = tarjama.NewTranslator(providers, opts...)
	log.Debug().Strs("providers", a.translator.Providers()).Msg("translator ready")
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("close failed")
		}
	}
}
