// Package server provides the HTTP surface of the PromptPulse agent.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/promptpulse/promptpulse/pkg/config"
	"github.com/promptpulse/promptpulse/pkg/metrics"
	"github.com/promptpulse/promptpulse/pkg/providers"
	"github.com/promptpulse/promptpulse/pkg/server/handlers"
	"github.com/promptpulse/promptpulse/pkg/server/middleware"
)

// Server is the HTTP server of the agent. It owns the route table and the
// middleware chain; the registry, store, and exporter are shared with the
// demo generator and created by the caller.
type Server struct {
	config       *config.Config
	registry     *providers.Registry
	store        *metrics.Store
	exporter     *metrics.Exporter
	httpMetrics  *metrics.HTTPMetrics
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server over the given registry and store. exporter may
// be nil when Prometheus exposition is disabled.
func NewServer(cfg *config.Config, registry *providers.Registry, store *metrics.Store, exporter *metrics.Exporter, httpMetrics *metrics.HTTPMetrics) *Server {
	return &Server{
		config:       cfg,
		registry:     registry,
		store:        store,
		exporter:     exporter,
		httpMetrics:  httpMetrics,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			"address", addr,
			"providers", s.registry.List(),
			"prometheus_enabled", s.exporter != nil,
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/call", handlers.NewCallHandler(s.registry, s.store))
	mux.Handle("/metrics/latest", handlers.NewLatestHandler(s.store))
	mux.Handle("/metrics/all", handlers.NewAllHandler(s.store))
	mux.Handle("/metrics/aggregates", handlers.NewAggregatesHandler(s.store))
	mux.Handle("/health", handlers.NewHealthHandler(s.registry))
	mux.Handle("/ready", handlers.NewReadyHandler(s.usableProviders))

	if s.exporter != nil {
		endpoint := s.config.Metrics.PrometheusEndpoint
		if endpoint == "" {
			endpoint = config.DefaultPrometheusEndpoint
		}
		mux.Handle(endpoint, s.exporter)
	}

	// Middleware chain, innermost to outermost: CORS, logging, request ID,
	// recovery. RequestID sits outside Logging so log lines carry the ID;
	// Recovery sits outermost so a panic anywhere below still produces a
	// JSON 500 and a log line.
	var handler http.Handler = mux
	handler = middleware.CORS(s.config.Server.CORSEnabled)(handler)
	handler = middleware.Logging(s.httpMetrics)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(handler)

	return handler
}

// usableProviders counts configured providers that could serve a call right
// now, i.e. providers that either need no API key or have one set.
func (s *Server) usableProviders() int {
	count := 0
	for _, name := range s.registry.List() {
		pc, ok := s.config.Providers[name]
		if !ok {
			continue
		}
		if !pc.RequiresAPIKey || pc.APIKey != "" {
			count++
		}
	}
	return count
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler. Used by tests to drive the
// server through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
