// Package server provides HTTP server management and lifecycle handling
// for the meditrack API: middleware configuration, route setup, and
// graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "net/http/pprof"

	"meditrack-api/config"
	"meditrack-api/handlers"
	"meditrack-api/logging"
	"meditrack-api/metrics"
)

// Server represents the HTTP server
type Server struct {
	server  *http.Server
	router  chi.Router
	handler *handlers.Handler
	config  *config.Config
	limiter *RateLimiter
}

// NewServer creates a server instance wired with middleware and routes
func NewServer(cfg *config.Config, handler *handlers.Handler) *Server {
	router := chi.NewRouter()

	s := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:  router,
		handler: handler,
		config:  cfg,
		limiter: NewRateLimiter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.DefaultLoggingService.Logger))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(metrics.Metrics)
	s.router.Use(s.limiter.Middleware)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Route("/medications", func(r chi.Router) {
		r.Get("/", s.handler.ListMedications)
		r.Post("/", s.handler.AddMedication)
		r.Get("/search/{name}", s.handler.SearchMedications)
		r.Get("/{id}", s.handler.GetMedication)
		r.Post("/{id}/archive", s.handler.ArchiveMedication)
		r.Post("/{id}/reactivate", s.handler.ReactivateMedication)
		r.Delete("/{id}", s.handler.DeleteMedication)
	})

	s.router.Route("/side-effects", func(r chi.Router) {
		r.Get("/", s.handler.ListSideEffects)
		r.Post("/", s.handler.LogSideEffect)
		r.Post("/prune", s.handler.PruneLogs(s.config.PruneMaxAgeDays))
	})

	s.router.Route("/moods", func(r chi.Router) {
		r.Get("/", s.handler.ListMoods)
		r.Post("/", s.handler.LogMood)
	})

	s.router.Get("/dashboard", s.handler.Dashboard)
	s.router.Get("/export", s.handler.Export)
	s.router.Get("/health", s.handler.HealthCheck)
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// Start starts the server
func (s *Server) Start() error {
	if s.config.Env == config.EnvDevelopment {
		s.startProfilingServer()
	}

	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		// If graceful shutdown fails, force close
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}

// startProfilingServer starts the pprof server in development mode
func (s *Server) startProfilingServer() {
	go func() {
		logging.Info("Profiling server started at http://localhost:6060/debug/pprof/")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			logging.Error("Profiling server failed", "error", err)
		}
	}()
}

// Router exposes the configured router, mainly for tests
func (s *Server) Router() chi.Router {
	return s.router
}
