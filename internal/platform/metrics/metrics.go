// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rate lookup sources.
const (
	SourceIdentity     = "identity"
	SourceCacheDirect  = "cache_direct"
	SourceCacheInverse = "cache_inverse"
	SourceProvider     = "provider"
)

// Provider request outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeBusinessError = "business_error"
	OutcomeTimeout       = "timeout"
	OutcomeUnavailable   = "unavailable"
)

// Metrics groups the service's collectors on one registry.
type Metrics struct {
	registry *prometheus.Registry

	rateLookups      *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry; pass withRuntime to also
// export Go runtime and process collectors.
func New(withRuntime bool) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		rateLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_rate_lookups_total",
			Help: "Exchange rate lookups by the source that answered them.",
		}, []string{"source"}),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_provider_requests_total",
			Help: "Requests to the pricing provider by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "invoice_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "invoice_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.rateLookups, m.providerRequests, m.httpRequests, m.httpDuration)
	if withRuntime {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RateLookup counts one resolved lookup. Safe on a nil receiver.
func (m *Metrics) RateLookup(source string) {
	if m == nil {
		return
	}
	m.rateLookups.WithLabelValues(source).Inc()
}

// ProviderRequest counts one pricing provider call. Safe on a nil receiver.
func (m *Metrics) ProviderRequest(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(endpoint, outcome).Inc()
}

// ObserveHTTPRequest records one served request. Safe on a nil receiver.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RateLookupCount returns the counter for source; used by tests.
func (m *Metrics) RateLookupCount(source string) prometheus.Counter {
	return m.rateLookups.WithLabelValues(source)
}

// ProviderRequestCount returns the counter for endpoint/outcome; used by tests.
func (m *Metrics) ProviderRequestCount(endpoint, outcome string) prometheus.Counter {
	return m.providerRequests.WithLabelValues(endpoint, outcome)
}
