// Package server exposes the pipeline and the document store over HTTP.
//
// Routes:
//
//	GET    /healthz                  - liveness probe
//	POST   /v1/layout                - compute a layout for an inline document
//	POST   /v1/render                - render an inline document to one format
//	POST   /v1/documents             - create a stored document
//	GET    /v1/documents             - list stored documents, newest first
//	GET    /v1/documents/{id}        - fetch one stored document
//	PUT    /v1/documents/{id}        - replace name and content
//	DELETE /v1/documents/{id}        - delete a stored document
//	GET    /v1/documents/{id}/render - render a stored document
//
// Documents are always sent inline; the server never reads paths from its
// own filesystem. Stored document reads go through the cache under the
// document key, and writes invalidate it.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/annotext/spanviz/pkg/buildinfo"
	"github.com/annotext/spanviz/pkg/cache"
	"github.com/annotext/spanviz/pkg/pipeline"
	"github.com/annotext/spanviz/pkg/store"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// server is asked to stop.
const shutdownTimeout = 10 * time.Second

// Server wires the pipeline runner, document store, and cache into an
// HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

// Config assembles the server's collaborators. Zero fields get safe
// defaults: an in-memory store, a disabled cache, and the default keyer.
type Config struct {
	Runner *pipeline.Runner
	Store  store.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// New creates a server from the config.
func New(cfg Config) *Server {
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(cfg.Cache, cfg.Keyer, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	return &Server{
		runner: cfg.Runner,
		store:  cfg.Store,
		cache:  cfg.Cache,
		keyer:  cfg.Keyer,
		logger: cfg.Logger,
	}
}

// Router builds the handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.handleListDocuments)
			r.Post("/", s.handleCreateDocument)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDocument)
				r.Put("/", s.handleUpdateDocument)
				r.Delete("/", s.handleDeleteDocument)
				r.Get("/render", s.handleRenderDocument)
			})
		})
	})

	return r
}

// ListenAndServe starts the server and blocks until ctx is canceled or
// the listener fails, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}
