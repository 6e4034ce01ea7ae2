// Package triples provides the generator and its Observer pattern plumbing.
// This file contains concrete observer implementations.
package triples

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ─────────────────────────────────────────────────────────────────────────────
// Channel Observer
// ─────────────────────────────────────────────────────────────────────────────

// ChannelObserver forwards progress events to a channel, typically consumed
// by a UI goroutine.
type ChannelObserver struct {
	channel chan<- ProgressEvent
}

// NewChannelObserver creates an observer that sends events to ch.
// A nil channel discards every event.
func NewChannelObserver(ch chan<- ProgressEvent) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Update sends ev without blocking. When the channel is full the event is
// dropped; the next one carries newer progress anyway. The exhaustion event
// is the exception and is always delivered.
func (o *ChannelObserver) Update(ev ProgressEvent) {
	if o.channel == nil {
		return
	}
	if ev.Exhausted {
		o.channel <- ev
		return
	}
	select {
	case o.channel <- ev:
	default:
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging Observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver logs progress using zerolog, throttled so that a line is
// written only when progress moved by at least threshold since the last one.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64
	lastLog   map[int]float64
	mu        sync.Mutex
}

// NewLoggingObserver creates an observer that logs progress at debug level.
//
// Parameters:
//   - logger: The zerolog logger to use.
//   - threshold: Minimum progress change between two lines (e.g. 0.1 for
//     10%). Non-positive values default to 0.1.
//
// Returns:
//   - *LoggingObserver: A new observer.
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{
		logger:    logger,
		threshold: threshold,
		lastLog:   make(map[int]float64),
	}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(ev ProgressEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if ev.Exhausted {
		o.logger.Debug().
			Int("generator", ev.Index).
			Uint64("extracted", ev.Extracted).
			Msg("generator exhausted")
		delete(o.lastLog, ev.Index)
		return
	}

	last, seen := o.lastLog[ev.Index]
	if seen && ev.Progress-last < o.threshold {
		return
	}
	o.logger.Debug().
		Int("generator", ev.Index).
		Str("triple", ev.Triple.String()).
		Float64("progress", ev.Progress).
		Int("frontier", ev.Frontier).
		Uint64("extracted", ev.Extracted).
		Msg("enumeration progress")
	o.lastLog[ev.Index] = ev.Progress
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics Observer (Prometheus)
// ─────────────────────────────────────────────────────────────────────────────

var (
	extractedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triplegen_triples_extracted_total",
			Help: "Total number of triples extracted from generator frontiers",
		},
		[]string{"generator"},
	)
	frontierGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "triplegen_frontier_size",
			Help: "Current number of triples awaiting extraction",
		},
		[]string{"generator"},
	)
	progressGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "triplegen_enumeration_progress",
			Help: "Hypotenuse of the last extracted triple divided by the bound (0.0 to 1.0)",
		},
		[]string{"generator"},
	)
)

// MetricsObserver exports generator progress to Prometheus.
type MetricsObserver struct {
	extracted *prometheus.CounterVec
	frontier  *prometheus.GaugeVec
	progress  *prometheus.GaugeVec
}

// NewMetricsObserver creates an observer backed by the package collectors.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		extracted: extractedCounter,
		frontier:  frontierGauge,
		progress:  progressGauge,
	}
}

// Update implements ProgressObserver.
func (o *MetricsObserver) Update(ev ProgressEvent) {
	label := strconv.Itoa(ev.Index)
	o.progress.WithLabelValues(label).Set(ev.Progress)
	if ev.Exhausted {
		o.frontier.WithLabelValues(label).Set(0)
		return
	}
	o.extracted.WithLabelValues(label).Inc()
	o.frontier.WithLabelValues(label).Set(float64(ev.Frontier))
}

// Forget drops the gauge series of generator index. Callers that reuse
// indexes across generators call it once a generator is done, so a finished
// search leaves no stale frontier or progress value behind.
func (o *MetricsObserver) Forget(index int) {
	label := strconv.Itoa(index)
	o.frontier.DeleteLabelValues(label)
	o.progress.DeleteLabelValues(label)
}

// ResetMetrics clears the per-generator gauges.
func (o *MetricsObserver) ResetMetrics() {
	o.frontier.Reset()
	o.progress.Reset()
}

// ─────────────────────────────────────────────────────────────────────────────
// No-Op Observer (Null Object Pattern)
// ─────────────────────────────────────────────────────────────────────────────

// NoOpObserver discards all events.
type NoOpObserver struct{}

// NewNoOpObserver creates a no-op observer.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// Update implements ProgressObserver by doing nothing.
func (o *NoOpObserver) Update(ProgressEvent) {}
