// Package metrics exposes Prometheus counters for rate fetches and quotes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements rates.MetricsCollector and counts quotes.
type Collector struct {
	registry      *prometheus.Registry
	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	cacheLookups  *prometheus.CounterVec
	quotes        *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "petquote",
			Name:      "rate_fetches_total",
			Help:      "Exchange rate fetches by source and result.",
		}, []string{"source", "result"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "petquote",
			Name:      "rate_fetch_duration_seconds",
			Help:      "Exchange rate fetch latency by source.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "petquote",
			Name:      "rate_cache_lookups_total",
			Help:      "Rate cache lookups by source and outcome.",
		}, []string{"source", "outcome"}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "petquote",
			Name:      "quotes_total",
			Help:      "Quotes calculated by endpoint.",
		}, []string{"endpoint"}),
	}
	c.registry.MustRegister(
		c.fetches,
		c.fetchDuration,
		c.cacheLookups,
		c.quotes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) RecordFetch(source, result string) {
	c.fetches.WithLabelValues(source, result).Inc()
}

func (c *Collector) RecordFetchDuration(source string, d time.Duration) {
	c.fetchDuration.WithLabelValues(source).Observe(d.Seconds())
}

func (c *Collector) RecordCacheHit(source string) {
	c.cacheLookups.WithLabelValues(source, "hit").Inc()
}

func (c *Collector) RecordCacheMiss(source string) {
	c.cacheLookups.WithLabelValues(source, "miss").Inc()
}

func (c *Collector) RecordQuote(endpoint string) {
	c.quotes.WithLabelValues(endpoint).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
