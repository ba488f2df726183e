// Package server is the local dashboard/API server. It serves the static
// dashboard, exposes snapshot discovery, and proxies a small set of label
// mutations to the Linear API.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/drivetrainhq/eagleview/internal/linear"
)

// Config holds server configuration.
type Config struct {
	Port           int
	StaticDir      string        // dashboard assets
	DataDir        string        // snapshot files
	ConfigPath     string        // config file passed to the refresh subprocess
	AllowAll       bool          // allow all CORS origins (dev mode)
	RefreshTimeout time.Duration // budget for the refresh subprocess
	// FetchCommand overrides the refresh subprocess. Empty means re-running
	// this binary's own fetch command.
	FetchCommand []string
}

// Server is the dashboard server.
type Server struct {
	cfg        Config
	client     *linear.Client
	router     chi.Router
	httpServer *http.Server
}

// New creates a server proxying label operations through the given client.
func New(cfg Config, client *linear.Client) *Server {
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 60 * time.Second
	}
	s := &Server{cfg: cfg, client: client}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(90 * time.Second))

		// Health check
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		s.registerRoutes(r)

		// Snapshot files, then the static dashboard as the fallback.
		r.Handle("/data/*", http.StripPrefix("/data/", http.FileServer(http.Dir(s.cfg.DataDir))))
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.StaticDir)))
	})

	// The refresh subprocess carries its own configurable budget, which may
	// exceed the router-wide timeout, so its route skips that middleware.
	r.Post("/api/refresh-data", s.handleRefreshData)

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("eagleview dashboard listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
