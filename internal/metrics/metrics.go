package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the service's Prometheus metrics on a private registry.
type Collector struct {
	reg *prometheus.Registry

	FeedFetches        prometheus.Counter
	FeedFetchErrors    prometheus.Counter
	CacheHits          prometheus.Counter
	FetchWaitersJoined prometheus.Counter

	ResolveDuration prometheus.Histogram
}

// NewCollector creates and registers all metrics.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		FeedFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nexttrain_feed_fetches_total",
			Help: "Total successful upstream feed fetches.",
		}),
		FeedFetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nexttrain_feed_fetch_errors_total",
			Help: "Total failed upstream feed fetches.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nexttrain_cache_hits_total",
			Help: "Requests answered from a fresh cached snapshot.",
		}),
		FetchWaitersJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nexttrain_fetch_waiters_joined_total",
			Help: "Requests that joined an already in-flight feed fetch.",
		}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nexttrain_resolve_duration_seconds",
			Help:    "Duration of departure resolution over one snapshot.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
	}

	reg.MustRegister(
		c.FeedFetches, c.FeedFetchErrors,
		c.CacheHits, c.FetchWaitersJoined,
		c.ResolveDuration,
	)

	return c
}

// Handler exposes the registry in Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
