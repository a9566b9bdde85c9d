// Package api serves the mind-map HTTP API.
//
// Routes:
//
//	GET  /              status and offline flag
//	GET  /debug         masked credential status
//	GET  /version       build information
//	GET  /metrics       Prometheus exposition
//	POST /generate_map  run the pipeline for {"text", "research_mode"}
//	GET  /maps          recent maps (when a store is configured)
//	GET  /maps/{id}     one stored map
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/hierarchy"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/store"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
	// Extraction may fall back across backends, each bounded by the backend
	// timeout, plus a web search in research mode.
	writeTimeoutSlack = 30 * time.Second
)

// Exporter mirrors generated hierarchies into an external graph store.
type Exporter interface {
	Export(ctx context.Context, mapID string, h hierarchy.Hierarchy) error
}

// Deps are the collaborators of a [Server]. Runner and Config are required.
type Deps struct {
	Config    config.Config
	Runner    *pipeline.Runner
	Store     store.Store
	Exporter  Exporter
	Collector *observability.Collector
	Logger    *log.Logger
}

// Server is the HTTP API.
type Server struct {
	cfg       config.Config
	runner    *pipeline.Runner
	store     store.Store
	exporter  Exporter
	collector *observability.Collector
	logger    *log.Logger
	validate  *validator.Validate
}

// New creates a server. A nil Store disables the /maps routes; a nil
// Collector creates a private one.
func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if d.Collector == nil {
		d.Collector = observability.NewCollector("mindmap")
	}
	return &Server{
		cfg:       d.Config,
		runner:    d.Runner,
		store:     d.Store,
		exporter:  d.Exporter,
		collector: d.Collector,
		logger:    d.Logger,
		validate:  newValidator(),
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.metrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleStatus)
	r.Get("/debug", s.handleDebug)
	r.Get("/version", s.handleVersion)
	r.Method(http.MethodGet, "/metrics", s.collector.Handler())
	r.Post("/generate_map", s.handleGenerate)

	if s.store != nil {
		r.Route("/maps", func(r chi.Router) {
			r.Get("/", s.handleListMaps)
			r.Get("/{id}", s.handleGetMap)
		})
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found", "NOT_FOUND")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed", "")
	})
	return r
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      2*s.cfg.BackendTimeout + s.cfg.SearchTimeout + writeTimeoutSlack,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr, "offline", s.cfg.OfflineMode())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
