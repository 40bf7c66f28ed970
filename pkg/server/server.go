// Package server exposes the thumbforge pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz
//	GET  /api/v1/schemes
//	GET  /api/v1/layouts
//	POST /api/v1/render?format=png|jpeg|json[&download=1]
//	POST /api/v1/analyze
//	POST /api/v1/shuffle[?seed=N]
//
// Render and shuffle take a thumbnail configuration as the JSON body.
// Analyze takes {"script": "..."} and answers with {"config": ...,
// "reasoning": ...}, the shape the analyzer's proxy provider reads, so one
// server can hold the API key for many clients.
//
// Errors are JSON objects {"error", "code", "hint"} with the status from
// [errors.HTTPStatus]. Every response carries X-Request-ID.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/thumbforge/pkg/pipeline"
)

// DefaultMaxBodyBytes limits request bodies when Options leaves it zero.
const DefaultMaxBodyBytes = 1 << 20

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	// Runner executes requests. Its Analyzer may be nil, in which case
	// /api/v1/analyze answers 503 MISCONFIGURED.
	Runner *pipeline.Runner

	Logger       *log.Logger
	MaxBodyBytes int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
	opts    Options
	router  chi.Router
}

// New builds a server and its routes.
func New(opts Options) *Server {
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Logger == nil {
		opts.Logger = opts.Runner.Logger
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	s := &Server{
		runner:  opts.Runner,
		logger:  opts.Logger,
		maxBody: opts.MaxBodyBytes,
		opts:    opts,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.logger, notFound(r))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.logger, methodNotAllowed(r))
	})

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/schemes", s.handleSchemes)
		r.Get("/layouts", s.handleLayouts)
		r.Post("/render", s.handleRender)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/shuffle", s.handleShuffle)
	})

	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "analyzer", s.runner.Analyzer != nil)
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
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
