package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the BFF.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration     *prometheus.HistogramVec
	externalErrors      *prometheus.CounterVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	aggregationDuration *prometheus.HistogramVec
	aggregationEntries  prometheus.Histogram
	requestsTotal       *prometheus.CounterVec
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
				Name:    "grana_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grana_external_errors_total",
				Help: "Total errors from the finance API.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grana_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grana_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		aggregationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "grana_ledger_aggregation_duration_seconds",
				Help:    "Duration of ledger aggregation runs by operation.",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"operation"},
		),
		aggregationEntries: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "grana_ledger_aggregation_entries",
				Help:    "Number of ledger entries per aggregation run.",
				Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000},
			},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grana_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
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

// RecordAggregation records one ledger aggregation run.
func (m *Metrics) RecordAggregation(operation string, entries int, d time.Duration) {
	m.aggregationDuration.WithLabelValues(operation).Observe(d.Seconds())
	m.aggregationEntries.Observe(float64(entries))
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// CacheHitRate returns the observed hit rate for a named cache, for the
// ops snapshot endpoint.
func (m *Metrics) CacheHitRate(cache string) float64 {
	hits := getCounterValue(m.cacheHits, cache)
	misses := getCounterValue(m.cacheMisses, cache)
	if hits+misses == 0 {
		return 0
	}
	return hits / (hits + misses)
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
