package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/agbru/logmap/internal/engine"
	"github.com/agbru/logmap/internal/logging"
	"github.com/agbru/logmap/internal/metrics"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	// maxJobWait caps the ?wait= long-poll of GET /v1/jobs/{id}.
	maxJobWait = 30 * time.Second
)

// Server wraps the chi router and the engine it exposes.
type Server struct {
	router   *chi.Mux
	engine   *engine.Engine
	board    *JobBoard
	metrics  *metrics.Metrics
	logger   logging.Logger
	security SecurityConfig
	addr     string
}

// Option configures a Server.
type Option func(*Server)

// WithSecurityConfig replaces DefaultSecurityConfig.
func WithSecurityConfig(c SecurityConfig) Option {
	return func(s *Server) { s.security = c }
}

// WithJobBoard replaces the default job board.
func WithJobBoard(b *JobBoard) Option {
	return func(s *Server) { s.board = b }
}

// New creates and configures a server. m may be shared with the engine so
// that dispatch and HTTP metrics are served together.
func New(addr string, eng *engine.Engine, m *metrics.Metrics, logger logging.Logger, opts ...Option) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		engine:   eng,
		metrics:  m,
		logger:   logger,
		security: DefaultSecurityConfig(),
		addr:     addr,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.board == nil {
		s.board = NewJobBoard(DefaultJobRetention)
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.metricsMiddleware)
	s.router.Use(SecurityMiddleware)
	if c := corsMiddleware(s.security); c != nil {
		s.router.Use(c)
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.HandleFunc("/metrics", s.handleMetrics)

	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/calc", s.handleCalc)
		r.Post("/batch", s.handleBatch)
		r.Post("/batch/bytes", s.handleBatchBytes)
		r.Post("/project", s.handleProject)
		r.Post("/identity", s.handleIdentity)
		r.Post("/init", s.handleInit)
		r.Get("/status", s.handleStatus)
		r.Post("/jobs", s.handleSubmitJob)
		r.Get("/jobs/{id}", s.handleGetJob)
	})
}

// Router returns the chi router.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", s.addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down", logging.String("cause", context.Cause(ctx).Error()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// loggingMiddleware logs each request at debug level.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Debug("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.Duration("elapsed", time.Since(start)),
			logging.String("request_id", middleware.GetReqID(r.Context())))
	})
}
