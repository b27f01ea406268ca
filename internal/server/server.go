// Package server provides the HTTP server and routing for the operator
// algebra service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/spinworks/qop/internal/config"
	"github.com/spinworks/qop/internal/database"
	algebrahandlers "github.com/spinworks/qop/internal/modules/algebra/handlers"
	chemistryhandlers "github.com/spinworks/qop/internal/modules/chemistry/handlers"
	"github.com/spinworks/qop/internal/modules/spectra"
	spectrahandlers "github.com/spinworks/qop/internal/modules/spectra/handlers"
	trotterhandlers "github.com/spinworks/qop/internal/modules/trotter/handlers"
)

// Config holds server configuration
type Config struct {
	Log            zerolog.Logger
	Config         *config.Config
	SpectraDB      *database.DB
	SpectraService *spectra.Service
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	spectraDB      *database.DB
	spectraService *spectra.Service
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		cfg:            cfg.Config,
		spectraDB:      cfg.SpectraDB,
		spectraService: cfg.SpectraService,
		systemHandlers: NewSystemHandlers(cfg.Log, cfg.SpectraDB),
	}

	s.setupMiddleware(cfg.Config.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	// Spectrum requests can diagonalize large matrices
	s.router.Use(middleware.Timeout(120 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	algebraHandler := algebrahandlers.NewHandler(s.cfg.MaxQubits, s.log)
	spectraHandler := spectrahandlers.NewHandler(s.spectraService, s.log)
	chemistryHandler := chemistryhandlers.NewHandler(s.log)
	trotterHandler := trotterhandlers.NewHandler(s.log)

	s.router.Route("/api", func(r chi.Router) {
		algebraHandler.RegisterRoutes(r)
		spectraHandler.RegisterRoutes(r)
		chemistryHandler.RegisterRoutes(r)
		trotterHandler.RegisterRoutes(r)

		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleSystemStatus)
		})
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode health response")
	}
}

// loggingMiddleware logs each request with status and timing
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the chi router for tests.
func (s *Server) Router() http.Handler { return s.router }
