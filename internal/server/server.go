// Package server implements the flowgrid HTTP rendering server.
//
// The server exposes the same pipeline the CLI runs, as JSON endpoints:
//
//	POST /render   - full pipeline, returns the rendered character grid
//	POST /layout   - parse and layout only, returns positioned geometry
//	POST /export   - parse and convert, returns DOT, SVG, or PNG
//	GET  /styles   - list the glyph styles
//	GET  /healthz  - liveness probe
//
// Results are cached per stage through the pipeline runner; the backend
// (file, redis, or none) comes from the config.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/flowgrid/flowgrid/pkg/cache"
	"github.com/flowgrid/flowgrid/pkg/config"
	"github.com/flowgrid/flowgrid/pkg/pipeline"
)

// Server is the HTTP rendering server.
type Server struct {
	runner *pipeline.Runner
	cfg    config.Config
	logger *log.Logger
}

// New creates a server with a pipeline runner backed by the configured
// cache.
func New(ctx context.Context, cfg config.Config, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	store, err := newCache(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	return &Server{
		runner: pipeline.NewRunner(store, nil, logger),
		cfg:    cfg,
		logger: logger,
	}, nil
}

// newCache builds the cache backend named by the config.
func newCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	case "none":
		return cache.NewNullCache(), nil
	case "", "file":
		if cfg.Cache.Dir == "" {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(cfg.Cache.Dir)
	default:
		return cache.NewNullCache(), nil
	}
}

// Routes builds the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		requestID,
		s.logRequests,
		middleware.Recoverer,
	)

	r.Post("/render", s.handleRender)
	r.Post("/layout", s.handleLayout)
	r.Post("/export", s.handleExport)
	r.Get("/styles", s.handleStyles)
	r.Get("/healthz", s.handleHealthz)

	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := s.cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}
	s.logger.Info("starting server", "addr", addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return s.runner.Close()
	})

	return eg.Wait()
}
