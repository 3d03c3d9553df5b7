// Package server serves the language badge over HTTP.
//
// Routes:
//
//	GET /github-languages-stats  SVG badge (image/svg+xml)
//	GET /healthz                 liveness and build info
//	GET /metrics                 Prometheus exposition, when metrics are enabled
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/langstats/pkg/badge"
	"github.com/matzehuels/langstats/pkg/metrics"
	"github.com/matzehuels/langstats/pkg/snapshot"
)

// BadgePath is the route of the badge endpoint.
const BadgePath = "/github-languages-stats"

const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 120 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// SnapshotSource returns the current snapshot, refreshing it when stale.
// *snapshot.Gate implements it.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*snapshot.Snapshot, bool, error)
	Remaining(s *snapshot.Snapshot) time.Duration
}

// Server wires the HTTP routes.
type Server struct {
	source  SnapshotSource
	logger  *log.Logger
	metrics *metrics.Manager
	render  []badge.Option
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithMetrics records request metrics and exposes /metrics.
func WithMetrics(m *metrics.Manager) Option { return func(s *Server) { s.metrics = m } }

// WithBadgeOptions passes rendering options to every badge.
func WithBadgeOptions(opts ...badge.Option) Option {
	return func(s *Server) { s.render = append(s.render, opts...) }
}

// New creates a server over source.
func New(source SnapshotSource, opts ...Option) *Server {
	s := &Server{source: source, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	// Outside the recoverer so panics are counted as 500s.
	if s.metrics != nil {
		r.Use(s.recordMetrics)
	}
	r.Use(s.recoverer)

	r.Get(BadgePath, s.handleBadge)
	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed")
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}
