// Package server exposes the agent-mode snapshot store over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cassmon/cassmon/internal/store"
)

// Server represents the agent-mode HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates and configures the HTTP server
func NewServer(addr string, snapshots *store.SnapshotStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	// Initialize handlers
	metricsHandler := NewMetricsHandler(snapshots)
	healthHandler := NewHealthHandler()

	// Health check endpoint
	r.Get("/health", healthHandler.HealthCheck)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/metrics", metricsHandler.GetLatestSnapshot)
		r.Get("/metrics/history", metricsHandler.GetSnapshotHistory)
	})

	return &Server{
		router: r,
		httpServer: &http.Server{
			Addr:    addr,
			Handler: r,
		},
		logger: logger.With("component", "server"),
	}
}

// Start starts the HTTP server and blocks until it is shut down
func (s *Server) Start() error {
	s.logger.Info("agent API listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router
func (s *Server) Router() *chi.Mux {
	return s.router
}
