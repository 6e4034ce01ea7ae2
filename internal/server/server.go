package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/agbru/triplegen/internal/config"
	apperrors "github.com/agbru/triplegen/internal/errors"
	"github.com/agbru/triplegen/internal/filters"
	"github.com/agbru/triplegen/internal/logging"
	"github.com/agbru/triplegen/internal/service"
	"github.com/agbru/triplegen/internal/triples"
)

// Server answers triple searches over HTTP.
type Server struct {
	factory        filters.Factory
	service        service.Service
	httpServer     *http.Server
	logger         logging.Logger
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	observer       triples.ProgressObserver
	slots          slots
	timeouts       Timeouts
}

// gaugeResetter is implemented by observers that keep per-generator series,
// such as triples.MetricsObserver.
type gaugeResetter interface {
	Forget(index int)
	ResetMetrics()
}

// NewServer builds a Server listening on cfg.Port whose searches resolve
// filter names through factory. cfg.MaxBound, when set, caps the bound a
// request may ask for.
func NewServer(factory filters.Factory, cfg config.AppConfig, opts ...Option) *Server {
	security := DefaultSecurityConfig()
	if cfg.MaxBound > 0 {
		security.MaxBound = cfg.MaxBound
	}
	s := &Server{
		factory:        factory,
		logger:         logging.NewLogger(os.Stdout, "server", zerolog.InfoLevel),
		securityConfig: security,
		metrics:        NewMetrics(),
		observer:       triples.NewMetricsObserver(),
		timeouts:       DefaultServerTimeouts(),
	}
	for _, opt := range opts {
		opt(s)
	}
	// These depend on options (max bound, rate limiter config) so they are
	// resolved last.
	if s.service == nil {
		s.service = service.NewSearchService(s.factory, s.securityConfig.MaxBound)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()
	for path, h := range map[string]http.HandlerFunc{
		"/triples": s.handleTriples,
		"/filters": s.handleFilters,
		"/health":  s.handleHealth,
		"/metrics": s.handleMetrics,
	} {
		mux.HandleFunc(path, s.wrapWithMiddleware(h))
	}

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	return s
}

// Handler returns the routed handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// wrapWithMiddleware puts h behind, outermost first: security headers, rate
// limiting, request logging, request metrics.
func (s *Server) wrapWithMiddleware(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.securityConfig,
		RateLimitMiddleware(s.rateLimiter,
			s.loggingMiddleware(
				s.metrics.track(h))))
}

var endpoints = []string{
	"GET /triples?bound=<n>&filter=<name>&arg=<n>&limit=<n>",
	"GET /filters",
	"GET /health",
	"GET /metrics",
}

// Run serves until ctx is done, then drains in-flight requests for at most
// the shutdown timeout. A listener failure is returned as a ServerError.
func (s *Server) Run(ctx context.Context) error {
	defer s.rateLimiter.Stop()
	if g, ok := s.observer.(gaugeResetter); ok {
		g.ResetMetrics()
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return apperrors.NewServerError("server failed to start", err)
	}
	s.logger.Info("starting server",
		logging.String("addr", ln.Addr().String()),
		logging.Int64("max_bound", s.securityConfig.MaxBound),
		logging.Int("filters", len(s.service.Filters())),
		logging.Strings("endpoints", endpoints))

	serveErr := make(chan error, 1)
	go func() { serveErr <- s.httpServer.Serve(ln) }()

	select {
	case err := <-serveErr:
		return apperrors.NewServerError("server stopped unexpectedly", err)
	case <-ctx.Done():
		s.logger.Info("shutdown requested, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return apperrors.NewServerError("server stopped unexpectedly", err)
	}
	s.logger.Info("server stopped gracefully")
	return nil
}
