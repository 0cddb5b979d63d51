package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the offer service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	externalErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	rateLimited     prometheus.Counter
	pdfGenerated    prometheus.Counter
	decodeFailures  prometheus.Counter
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "offer_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "offer_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "offer_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "offer_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		rateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "offer_rate_limited_total",
				Help: "Total requests rejected by the rate limiter.",
			},
		),
		pdfGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "offer_pdf_generated_total",
				Help: "Total offer PDFs rendered and uploaded.",
			},
		),
		decodeFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "offer_cost_decode_failures_total",
				Help: "Total warehouse cost-detail payloads that failed to decode.",
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrRateLimited increments the 429 rejection counter.
func (m *Metrics) IncrRateLimited() {
	m.rateLimited.Inc()
}

// IncrPDFGenerated increments the rendered-offer counter.
func (m *Metrics) IncrPDFGenerated() {
	m.pdfGenerated.Inc()
}

// IncrDecodeFailure increments the cost-detail decode failure counter.
func (m *Metrics) IncrDecodeFailure() {
	m.decodeFailures.Inc()
}
