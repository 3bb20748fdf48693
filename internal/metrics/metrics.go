// Package metrics holds the Prometheus collectors of the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notes_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notes_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	AnalyticsCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notes_analytics_cache_lookups_total",
		Help: "Analytics cache lookups by statistic and result (hit or miss)",
	}, []string{"statistic", "result"})

	AnalyticsCacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notes_analytics_cache_invalidations_total",
		Help: "Number of times the analytics cache was purged after a write",
	})

	SummariesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notes_summaries_total",
		Help: "Summarization attempts by outcome",
	}, []string{"outcome"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
