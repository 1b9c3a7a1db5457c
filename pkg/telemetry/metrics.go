// Package telemetry exports view-model action metrics to Prometheus.
package telemetry

import (
	"time"

	"github.com/Rahulguptaid/ViewModelExample/pkg/viewmodel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures ActionMetrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vmkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// Buckets are the histogram buckets for action duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures ActionMetrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vmkit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// ActionMetrics counts and times view-model actions. It implements
// viewmodel.Observer.
type ActionMetrics struct {
	started  *prometheus.CounterVec
	finished *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewActionMetrics registers the action metrics. Registering twice on the
// same registry panics, as with any promauto collector.
func NewActionMetrics(opts ...MetricsOption) *ActionMetrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &ActionMetrics{
		started: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "actions_started_total",
			Help:      "Total number of view-model actions started",
		}, []string{"action"}),

		finished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "actions_finished_total",
			Help:      "Total number of view-model actions finished, by outcome",
		}, []string{"action", "outcome"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "action_duration_seconds",
			Help:      "View-model action duration in seconds",
			Buckets:   config.Buckets,
		}, []string{"action"}),
	}
}

// ActionStarted implements viewmodel.Observer.
func (m *ActionMetrics) ActionStarted(action string) {
	m.started.WithLabelValues(action).Inc()
}

// ActionFinished implements viewmodel.Observer.
func (m *ActionMetrics) ActionFinished(action string, outcome viewmodel.Outcome, elapsed time.Duration) {
	m.finished.WithLabelValues(action, string(outcome)).Inc()
	m.duration.WithLabelValues(action).Observe(elapsed.Seconds())
}

var _ viewmodel.Observer = (*ActionMetrics)(nil)
