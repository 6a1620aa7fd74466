// Package metrics exposes pantry's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	cacheLookups  *prometheus.CounterVec
	requests      *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pantry",
			Name:      "fetches_total",
			Help:      "Recipe fetches by outcome (ok, error, cache).",
		}, []string{"result"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pantry",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of remote recipe fetches.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pantry",
			Name:      "cache_lookups_total",
			Help:      "Cache slot lookups by result (hit, miss).",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pantry",
			Name:      "http_requests_total",
			Help:      "HTTP requests served by route and status code.",
		}, []string{"route", "code"}),
	}
	reg.MustRegister(m.fetches, m.fetchDuration, m.cacheLookups, m.requests)
	return m
}

// ObserveFetch records one remote fetch.
func (m *Metrics) ObserveFetch(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(result).Inc()
	if result != "cache" {
		m.fetchDuration.Observe(elapsed.Seconds())
	}
}

// ObserveCache records a cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveRequest records a served HTTP request.
func (m *Metrics) ObserveRequest(route, code string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, code).Inc()
}
