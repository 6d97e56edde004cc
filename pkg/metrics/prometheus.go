// Package metrics provides Prometheus metrics for the Aeris flight gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for upstream calls.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeUnavailable = "unavailable"
	OutcomeConfig      = "config_error"
	OutcomeInvalid     = "invalid_query"
)

// Manager manages all Prometheus metrics for the gateway.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Upstream provider calls
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec

	// Resolution
	resolutions         *prometheus.CounterVec
	enrichmentsDegraded *prometheus.CounterVec
	resolutionLatency   prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "aeris",
		subsystem: "gateway",
		// Upstream calls are slow; buckets are in milliseconds.
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "upstream_requests_total",
		Help:        "Provider calls by provider and outcome",
		ConstLabels: m.constLabels,
	}, []string{"provider", "outcome"})

	m.upstreamLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "upstream_latency_milliseconds",
		Help:        "Provider call latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"provider"})

	m.resolutions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "resolutions_total",
		Help:        "Flight resolutions by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.enrichmentsDegraded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "enrichments_degraded_total",
		Help:        "Enrichment lookups replaced by an unavailable marker, by kind",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.resolutionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "resolution_latency_milliseconds",
		Help:        "End-to-end resolution latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_type_total",
		Help:        "Errors by type and severity",
		ConstLabels: m.constLabels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Errors by endpoint, method and type",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})
}

// RecordUpstream records one provider call.
func (m *Manager) RecordUpstream(provider, outcome string, latencyMs float64) {
	m.upstreamRequests.WithLabelValues(provider, outcome).Inc()
	m.upstreamLatency.WithLabelValues(provider).Observe(latencyMs)
}

// RecordResolution records one resolver run.
func (m *Manager) RecordResolution(outcome string, latencyMs float64) {
	m.resolutions.WithLabelValues(outcome).Inc()
	m.resolutionLatency.Observe(latencyMs)
}

// RecordEnrichmentDegraded counts an enrichment replaced by an error marker.
func (m *Manager) RecordEnrichmentDegraded(kind string) {
	m.enrichmentsDegraded.WithLabelValues(kind).Inc()
}

// RecordHTTP records one served request.
func (m *Manager) RecordHTTP(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError records an error by type and by endpoint.
func (m *Manager) RecordError(endpoint, method, errorType, severity string) {
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// Package-level helpers backed by the global manager.

func RecordUpstream(provider, outcome string, latencyMs float64) {
	globalManager.RecordUpstream(provider, outcome, latencyMs)
}

func RecordResolution(outcome string, latencyMs float64) {
	globalManager.RecordResolution(outcome, latencyMs)
}

func RecordEnrichmentDegraded(kind string) {
	globalManager.RecordEnrichmentDegraded(kind)
}

func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTP(endpoint, method, statusCode, durationMs)
}

func RecordErrorByEndpoint(endpoint, method, errorType, severity string) {
	globalManager.RecordError(endpoint, method, errorType, severity)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
