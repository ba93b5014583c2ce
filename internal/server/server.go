// Package server implements the HTTP measurement API: consistency and
// coordination measurements over JSON, a health endpoint and Prometheus
// metrics, behind security and observability middleware.
package server

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/certlab/certmeter/internal/cert/coordination"
	"github.com/certlab/certmeter/internal/cert/distance"
	"github.com/certlab/certmeter/internal/logging"
	runtimemetrics "github.com/certlab/certmeter/internal/metrics"
)

// ShutdownTimeout bounds how long in-flight requests may run after a
// shutdown signal before the listener is torn down.
const ShutdownTimeout = 10 * time.Second

// Server is the HTTP measurement API. Construct it with New and start it
// with Run; all fields are read-only after construction.
type Server struct {
	addr     string
	version  string
	logger   logging.Logger
	metrics  *Metrics
	security SecurityConfig

	distances *distance.ProviderFactory
	coord     *coordination.Analyzer
	memory    *runtimemetrics.MemoryCollector
	tracer    trace.Tracer
}

// Option configures a Server.
type Option func(*Server)

// WithSecurityConfig overrides the default security configuration.
func WithSecurityConfig(config SecurityConfig) Option {
	return func(s *Server) { s.security = config }
}

// WithDistanceFactory overrides the default distance provider registry.
func WithDistanceFactory(factory *distance.ProviderFactory) Option {
	return func(s *Server) { s.distances = factory }
}

// New creates a Server listening on addr. The version string is reported
// by the health endpoint.
func New(addr, version string, logger logging.Logger, opts ...Option) *Server {
	s := &Server{
		addr:      addr,
		version:   version,
		logger:    logger,
		metrics:   NewMetrics(),
		security:  DefaultSecurityConfig(),
		distances: distance.NewDefaultFactory(),
		coord:     coordination.NewAnalyzer(coordination.WithLogger(logger)),
		memory:    runtimemetrics.NewMemoryCollector(),
		tracer:    otel.Tracer("certmeter/server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// routes builds the request multiplexer with the full middleware chain:
// request-id tagging, security headers and metrics tracking.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/measure/consistency", s.wrap(s.handleConsistency))
	mux.HandleFunc("/measure/coordination", s.wrap(s.handleCoordination))
	mux.HandleFunc("/health", s.wrap(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	return mux
}

// wrap applies the standard middleware chain to a handler.
func (s *Server) wrap(handler http.HandlerFunc) http.HandlerFunc {
	return s.metricsMiddleware(SecurityMiddleware(s.security, s.requestIDMiddleware(handler)))
}

// Run starts the HTTP listener and blocks until ctx is canceled or the
// listener fails. On cancellation the server drains in-flight requests
// for up to ShutdownTimeout before returning.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("http server listening",
			logging.String("addr", s.addr),
			logging.String("version", s.version))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
