// Package httpapi exposes the translator over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/FaizanAhmed099/tarjama/localize"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Translator is what the handlers need from *tarjama.Translator.
type Translator interface {
	Translate(ctx context.Context, req tarjama.TranslationRequest) (*tarjama.Result, error)
	ToArabic(ctx context.Context, text string) (string, error)
}

// Server serves the translation API.
type Server struct {
	translator Translator
	filler     *localize.Filler
	logger     zerolog.Logger
	router     *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server and registers its routes.
func New(translator Translator, opts ...Option) *Server {
	s := &Server{
		translator: translator,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.filler = localize.NewFiller(translator, localize.WithLogger(s.logger))

	s.router = gin.New()
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.router.HandleMethodNotAllowed = true
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running")
	})

	api := s.router.Group("/api")
	api.POST("/translate", s.handleTranslate)
	api.POST("/localize", s.handleLocalize)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("server started listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request served")
	}
}
