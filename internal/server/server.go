// Package server exposes the classification engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/crimson-sun/verdict/internal/config"
	"github.com/crimson-sun/verdict/internal/engine"
)

// Server wires the engine behind an HTTP API.
type Server struct {
	cfg        config.ServerConfig
	defaults   config.EngineConfig
	engine     *engine.Engine
	limiter    *rate.Limiter
	httpServer *http.Server
}

// New creates a Server. defaults supply maxlen/threshold for requests that
// omit them.
func New(cfg config.ServerConfig, defaults config.EngineConfig, eng *engine.Engine) *Server {
	s := &Server{
		cfg:      cfg,
		defaults: defaults,
		engine:   eng,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/classify", s.handleClassify)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Run starts the server and blocks until the context is cancelled, then
// shuts down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("http server stopped")
	return nil
}

// allow reports whether the request fits the rate limit.
func (s *Server) allow() bool {
	return s.limiter.Allow()
}
