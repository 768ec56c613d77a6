// Package observability provides Prometheus instrumentation for network
// runs, exposed as scheduler hooks.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/debeat/essentia/pkg/scheduler"
	"github.com/debeat/essentia/pkg/streaming"
)

// Metrics holds the run-time metrics of a scheduler.
type Metrics struct {
	registry      *prometheus.Registry
	processTotal  *prometheus.CounterVec
	processTiming *prometheus.HistogramVec
}

// NewMetrics creates the metric set on its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		processTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "essentia_process_steps_total",
				Help: "Total number of algorithm process steps",
			},
			[]string{"algorithm", "status"},
		),
		processTiming: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "essentia_process_duration_seconds",
				Help: "Duration of algorithm process steps",
			},
			[]string{"algorithm"},
		),
	}
	m.registry.MustRegister(m.processTotal, m.processTiming)
	return m
}

// Hooks returns scheduler hooks recording every process step.
func (m *Metrics) Hooks() scheduler.Hooks {
	return scheduler.Hooks{
		OnProcess: func(algorithm string, status streaming.Status, elapsed time.Duration) {
			m.processTotal.WithLabelValues(algorithm, status.String()).Inc()
			m.processTiming.WithLabelValues(algorithm).Observe(elapsed.Seconds())
		},
	}
}

// Handler returns the /metrics endpoint for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for callers that mount extra
// collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
