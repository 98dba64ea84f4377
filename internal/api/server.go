// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dentora/dentora/internal/auth"
	"github.com/dentora/dentora/internal/module"
	"github.com/dentora/dentora/internal/permission"
	"github.com/dentora/dentora/internal/person"
	"github.com/dentora/dentora/internal/platform/config"
	"github.com/dentora/dentora/internal/platform/constants"
	"github.com/dentora/dentora/internal/platform/middleware"
	"github.com/dentora/dentora/internal/tenant"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the session lifecycle (login, refresh, logout).
	Auth *auth.Handler

	// Tenant manages customer organizations and their subscription state.
	Tenant *tenant.Handler

	// Person manages tenant-scoped people profiles.
	Person *person.Handler

	// Permission manages capability definitions.
	Permission *permission.Handler

	// Module manages the functional areas permissions are grouped under.
	Module *module.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// Authentication is split in two: [middleware.Authenticate] runs globally and
// attaches an identity when a valid bearer token is present, while
// [middleware.RequireAuth] gates the administrative route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.Locale())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		// Session lifecycle is the only public surface.
		api.Mount("/auth", h.Auth.Routes())

		// Administrative resources require an authenticated session.
		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)

			protected.Route("/tenants", h.Tenant.RegisterRoutes)
			protected.Route("/people", h.Person.RegisterRoutes)
			protected.Route("/permissions", h.Permission.RegisterRoutes)
			protected.Route("/modules", h.Module.RegisterRoutes)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
