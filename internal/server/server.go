// Package server assembles the router and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vangoframework/vpmshell/internal/handlers"
	"github.com/vangoframework/vpmshell/internal/metrics"
	"github.com/vangoframework/vpmshell/internal/middleware"
	"github.com/vangoframework/vpmshell/internal/prefs"
	"github.com/vangoframework/vpmshell/internal/static"
)

const shutdownTimeout = 30 * time.Second

// Deps are the collaborators the router needs.
type Deps struct {
	Handlers *handlers.Handlers
	Prefs    *prefs.Store
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// Router wires middleware and routes.
func Router(d Deps) http.Handler {
	h := d.Handlers

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(d.Logger))
	// Metrics wraps Recovery so requests that panic are counted as 500s.
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.Recovery(d.Logger))

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static.FS))))

	r.Get("/health", h.Health)
	r.Handle("/metrics", d.Metrics.Handler())

	// Pages rendered inside the shell
	r.Group(func(r chi.Router) {
		r.Use(middleware.Prefs(d.Prefs))
		r.Use(middleware.CurrentPath)

		r.Get("/", h.Home)
		r.Get("/projects", h.ListProjects)
		r.Post("/projects", h.AddProject)
		r.Post("/projects/remove", h.RemoveProject)
		r.Get("/projects/{id}", h.ShowProject)
		r.Post("/projects/{id}/favorite", h.SetFavorite)
		r.Get("/repositories", h.ListRepositories)
		r.Post("/repositories", h.AddRepository)
		r.Post("/repositories/refresh", h.RefreshAllRepositories)
		r.Post("/repositories/{id}/refresh", h.RefreshRepository)
		r.Post("/repositories/{id}/remove", h.RemoveRepository)
		r.Post("/repositories/{id}/install", h.InstallPackage)
		r.Get("/settings", h.Settings)
		r.Post("/settings", h.SaveSettings)
		r.Post("/settings/reset", h.ResetSettings)
		r.Get("/logs", h.Logs)

		r.NotFound(h.NotFound)
	})

	return r
}

// Server is an http.Server with context-driven graceful shutdown.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// New creates a server listening on addr.
func New(addr string, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", ln.Addr().String())
		errc <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.logger.Info("shutdown complete")
	return nil
}
