// Package metrics provides Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Model call outcomes
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Manager owns the collectors and the registry they are exposed from.
// A nil or disabled Manager accepts every call and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	modelRequests        *prometheus.CounterVec
	modelRequestDuration *prometheus.HistogramVec

	extractionFailures *prometheus.CounterVec
}

// Option applies a configuration option to the Manager
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom histogram buckets for latency metrics
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithMetricsEnabled enables or disables metrics collection
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithRegistry sets the registry the collectors are registered on
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates a metrics manager with its own registry unless one is supplied
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "multitool",
		// model calls routinely take seconds
		histogramBuckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		enabled:          true,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "route"})

	m.modelRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "model",
		Name:      "requests_total",
		Help:      "Total number of calls to the model backend by model and outcome",
	}, []string{"model", "outcome"})

	m.modelRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "model",
		Name:      "request_duration_seconds",
		Help:      "Latency of calls to the model backend",
		Buckets:   m.histogramBuckets,
	}, []string{"model"})

	m.extractionFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "extraction",
		Name:      "failures_total",
		Help:      "Model responses that could not be turned into results, by failure kind",
	}, []string{"kind"})
}

func (m *Manager) active() bool {
	return m != nil && m.enabled
}

// ObserveHTTPRequest records one served request
func (m *Manager) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if !m.active() {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveModelCall records one call to the model backend
func (m *Manager) ObserveModelCall(model string, err error, duration time.Duration) {
	if !m.active() {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.modelRequests.WithLabelValues(model, outcome).Inc()
	m.modelRequestDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// IncExtractionFailure counts a model response rejected by the extraction pipeline
func (m *Manager) IncExtractionFailure(kind string) {
	if !m.active() {
		return
	}
	m.extractionFailures.WithLabelValues(kind).Inc()
}

// Enabled reports whether the manager records anything
func (m *Manager) Enabled() bool {
	return m.active()
}

// Registry returns the registry holding the collectors
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the collected metrics in the Prometheus exposition format
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
