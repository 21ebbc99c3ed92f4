package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ExternalCalls   *prometheus.CounterVec
	CacheEvents     *prometheus.CounterVec
}

// NewMetrics creates a metrics registry with process and Go collectors
// plus the application instruments.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ExternalCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "external_calls_total",
			Help: "Calls to external services by service and outcome",
		}, []string{"service", "outcome"}),
		CacheEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recommendation_cache_events_total",
			Help: "Recommendation cache lookups by outcome",
		}, []string{"outcome"}),
	}
}

// Handler returns the Prometheus exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
