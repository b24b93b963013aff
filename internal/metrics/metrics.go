// Package metrics exposes the Prometheus instruments of the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayfarer_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	PlaceQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayfarer_place_query_duration_seconds",
			Help:    "Duration of place browse and search queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"}, // "browse", "search"
	)

	RatingRecomputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfarer_rating_recomputations_total",
			Help: "Total number of review mutations that recomputed a place rating",
		},
		[]string{"trigger", "result"}, // trigger: create, update, delete, moderate
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wayfarer_rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// RecordAPIRequest records a served request. route is the chi route pattern,
// never the raw path, to keep label cardinality bounded.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordPlaceQuery(mode string, duration time.Duration) {
	PlaceQueryDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

func RecordRatingRecompute(trigger string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	RatingRecomputations.WithLabelValues(trigger, result).Inc()
}
