// Package server provides the HTTP API for the triple generator.
package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the request and search collectors of one Server. They live
// in a private registry so that several servers (as in tests) can coexist;
// /metrics serves it merged with the default registry, where the generator
// collectors and the Go runtime metrics are.
type Metrics struct {
	reg *prometheus.Registry

	active    prometheus.Gauge
	requests  prometheus.Counter
	duration  *prometheus.HistogramVec
	extracted *prometheus.CounterVec

	handler http.Handler
}

// NewMetrics registers a fresh set of server collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	m := &Metrics{
		reg: reg,
		active: f.NewGauge(prometheus.GaugeOpts{
			Name: "triplegen_active_requests",
			Help: "Requests currently being served.",
		}),
		requests: f.NewCounter(prometheus.CounterOpts{
			Name: "triplegen_requests_total",
			Help: "Requests received.",
		}),
		// 0.5ms to about 2 minutes.
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "triplegen_search_duration_seconds",
			Help:    "Wall time of /triples searches.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"filter"}),
		extracted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "triplegen_search_extracted_total",
			Help: "Triples pulled from the generator by /triples searches.",
		}, []string{"filter"}),
	}
	m.handler = promhttp.HandlerFor(
		prometheus.Gatherers{reg, prometheus.DefaultGatherer},
		promhttp.HandlerOpts{},
	)
	return m
}

// track counts r and keeps it in the active gauge until it is served.
func (m *Metrics) track(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.requests.Inc()
		m.active.Inc()
		defer m.active.Dec()
		next(w, r)
	}
}

// ObserveSearch records the cost of one search. filter must already be
// validated: it becomes a label value.
func (m *Metrics) ObserveSearch(filter string, extracted uint64, d time.Duration) {
	m.duration.WithLabelValues(filter).Observe(d.Seconds())
	m.extracted.WithLabelValues(filter).Add(float64(extracted))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.metrics.handler.ServeHTTP(w, r)
}
