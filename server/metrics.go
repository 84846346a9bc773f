package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the HTTP API.
type Metrics struct {
	sessionsStarted *prometheus.CounterVec
	steps           *prometheus.CounterVec
	stepErrors      *prometheus.CounterVec
	stepDuration    *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg. A nil reg uses
// prometheus.DefaultRegisterer; pass a private registry for isolation.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		sessionsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stepgraph",
			Name:      "sessions_started_total",
			Help:      "Traversal sessions created, by algorithm",
		}, []string{"algorithm"}),
		steps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stepgraph",
			Name:      "steps_total",
			Help:      "Steps executed, by algorithm and executed phase",
		}, []string{"algorithm", "phase"}),
		stepErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stepgraph",
			Name:      "step_errors_total",
			Help:      "Failed API calls, by error code",
		}, []string{"code"}),
		stepDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stepgraph",
			Name:      "step_duration_seconds",
			Help:      "Wall time of one step including state load and save",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), // 100µs to ~1.6s
		}, []string{"algorithm"}),
	}
}

func (m *Metrics) sessionStarted(algorithm string) {
	m.sessionsStarted.WithLabelValues(algorithm).Inc()
}

func (m *Metrics) stepDone(algorithm, phase string, d time.Duration) {
	m.steps.WithLabelValues(algorithm, phase).Inc()
	m.stepDuration.WithLabelValues(algorithm).Observe(d.Seconds())
}

func (m *Metrics) failed(code string) {
	m.stepErrors.WithLabelValues(code).Inc()
}
