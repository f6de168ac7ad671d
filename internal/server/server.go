// Package server exposes the check, layout and selection operations over HTTP.
//
// Every endpoint is stateless: the request carries the full design and rule
// set, and the response carries the result. Nothing is persisted between
// requests beyond the result cache behind the pipeline runner.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cabinetry/pkg/pipeline"
)

// Options configure a Server.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// MaxBodyBytes caps request bodies; zero means 10 MiB.
	MaxBodyBytes int64
}

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
}

// New creates a server. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.New(discard{})
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 10 << 20
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return &Server{runner: runner, logger: logger, opts: opts}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.RequestSize(s.opts.MaxBodyBytes))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/allowed", s.handleAllowed)
		r.Post("/capacity", s.handleCapacity)
		r.Post("/graph", s.handleGraph)

		r.Route("/layout", func(r chi.Router) {
			r.Post("/gaps", s.handleGaps)
			r.Post("/add", s.handleAdd)
			r.Post("/move", s.handleMove)
			r.Post("/remove", s.handleRemove)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
