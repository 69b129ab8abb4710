package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ResolverOutcome labels how a category resolver call ended.
type ResolverOutcome string

const (
	ResolverOutcomeSuccess ResolverOutcome = "success"
	ResolverOutcomeFailure ResolverOutcome = "failure"
	ResolverOutcomeTimeout ResolverOutcome = "timeout"
)

// CacheResult labels a response cache lookup.
type CacheResult string

const (
	CacheHit   CacheResult = "hit"
	CacheMiss  CacheResult = "miss"
	CacheError CacheResult = "error"
)

// ResolverMetrics records per-category compatibility resolution.
type ResolverMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
	products *prometheus.HistogramVec
	cache    *prometheus.CounterVec
}

// NewResolverMetrics registers the resolver metrics on the provided registerer.
// A nil registerer yields a no-op collector.
func NewResolverMetrics(reg prometheus.Registerer) *ResolverMetrics {
	if reg == nil {
		return &ResolverMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "resolver",
		Name:      "duration_seconds",
		Help:      "Duration of category resolver calls in seconds.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"category"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "resolver",
		Name:      "calls_total",
		Help:      "Category resolver calls by outcome.",
	}, []string{"category", "outcome"})
	products := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "resolver",
		Name:      "products",
		Help:      "Products returned per category resolver call.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
	}, []string{"category"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "vehicle_products",
		Name:      "cache_lookups_total",
		Help:      "Vehicle products cache lookups by result.",
	}, []string{"result"})
	reg.MustRegister(duration, outcomes, products, cache)
	return &ResolverMetrics{
		duration: duration,
		outcomes: outcomes,
		products: products,
		cache:    cache,
	}
}

// ObserveCall records one resolver call.
func (m *ResolverMetrics) ObserveCall(category string, outcome ResolverOutcome, duration time.Duration, productCount int) {
	if m == nil || m.duration == nil {
		return
	}
	category = normalizeLabel(category)
	m.duration.WithLabelValues(category).Observe(duration.Seconds())
	m.outcomes.WithLabelValues(category, string(outcome)).Inc()
	if outcome == ResolverOutcomeSuccess {
		m.products.WithLabelValues(category).Observe(float64(productCount))
	}
}

// IncCache counts a cache lookup.
func (m *ResolverMetrics) IncCache(result CacheResult) {
	if m == nil || m.cache == nil {
		return
	}
	m.cache.WithLabelValues(string(result)).Inc()
}
