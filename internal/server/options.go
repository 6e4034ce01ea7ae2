package server

import (
	"cmp"
	"log"
	"time"

	"github.com/agbru/triplegen/internal/logging"
	"github.com/agbru/triplegen/internal/service"
	"github.com/agbru/triplegen/internal/triples"
)

// Option customizes a Server built by NewServer. Options given a nil value
// leave the default in place.
type Option func(*Server)

// WithLogger routes request and lifecycle records to logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdLogger is WithLogger for a plain *log.Logger.
func WithStdLogger(l *log.Logger) Option {
	if l == nil {
		return func(*Server) {}
	}
	return WithLogger(logging.NewStdLoggerAdapter(l))
}

// WithService replaces the search service, usually with a fake in tests.
func WithService(svc service.Service) Option {
	return func(s *Server) {
		if svc != nil {
			s.service = svc
		}
	}
}

// WithObserver replaces the observer attached to every search. By default
// generator progress is exported to Prometheus.
func WithObserver(observer triples.ProgressObserver) Option {
	return func(s *Server) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// WithTimeouts overrides DefaultServerTimeouts. Zero fields keep their
// default.
func WithTimeouts(t Timeouts) Option {
	return func(s *Server) {
		s.timeouts = t.withDefaults(s.timeouts)
	}
}

// Timeouts bounds the lifetime of searches, connections and shutdown.
type Timeouts struct {
	RequestTimeout  time.Duration // one /triples search
	ShutdownTimeout time.Duration // draining in-flight requests on SIGTERM
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration // keep-alive connections
}

// DefaultServerTimeouts is used unless WithTimeouts says otherwise.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    time.Minute,
		IdleTimeout:     2 * time.Minute,
	}
}

func (t Timeouts) withDefaults(d Timeouts) Timeouts {
	return Timeouts{
		RequestTimeout:  cmp.Or(t.RequestTimeout, d.RequestTimeout),
		ShutdownTimeout: cmp.Or(t.ShutdownTimeout, d.ShutdownTimeout),
		ReadTimeout:     cmp.Or(t.ReadTimeout, d.ReadTimeout),
		WriteTimeout:    cmp.Or(t.WriteTimeout, d.WriteTimeout),
		IdleTimeout:     cmp.Or(t.IdleTimeout, d.IdleTimeout),
	}
}
