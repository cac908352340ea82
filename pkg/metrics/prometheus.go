package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerFetches *prometheus.CounterVec
	fallbacksTotal  *prometheus.CounterVec
	cacheEvents     *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		providerFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoboard_provider_fetches_total",
				Help: "Provider fetch attempts by outcome",
			},
			[]string{"domain", "provider", "result"},
		),
		fallbacksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoboard_fallbacks_total",
				Help: "Times a domain fell back to static data after provider exhaustion",
			},
			[]string{"domain"},
		),
		cacheEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoboard_cache_events_total",
				Help: "Cache lookups by key and outcome",
			},
			[]string{"key", "event"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ecoboard_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records a provider fetch attempt outcome (ok, error, skipped).
func (r *Recorder) RecordFetch(domain, provider, result string) {
	r.providerFetches.WithLabelValues(domain, provider, result).Inc()
}

// RecordFallback records a chain exhaustion resolved by static data.
func (r *Recorder) RecordFallback(domain string) {
	r.fallbacksTotal.WithLabelValues(domain).Inc()
}

// RecordCache records a cache lookup outcome.
func (r *Recorder) RecordCache(key string, hit bool) {
	event := "miss"
	if hit {
		event = "hit"
	}
	r.cacheEvents.WithLabelValues(key, event).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
