// Package metrics registers the dashboard's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storedash_api_requests_total",
		Help: "Backend API calls by resource, method and response code.",
	}, []string{"resource", "method", "code"})

	APILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storedash_api_request_duration_seconds",
		Help:    "Backend API call latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "method"})

	CacheEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storedash_query_cache_events_total",
		Help: "Query cache hits, misses, invalidations and discarded out-of-order responses.",
	}, []string{"key", "event"})
)

func Handler() http.Handler { return promhttp.Handler() }
