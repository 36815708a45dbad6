// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangout_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hangout_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	FeedResolutions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hangout_feed_resolutions_total",
		Help: "Feed requests resolved through the visibility rules.",
	})

	FeedCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hangout_feed_candidates",
		Help:    "Candidate activities considered per feed request.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	FeedVisible = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hangout_feed_visible",
		Help:    "Activities returned per feed request after filtering.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	ResponsesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangout_activity_responses_total",
		Help: "Activity responses recorded, by kind.",
	}, []string{"response"})

	ConnectionsUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hangout_previous_connections_upserted_total",
		Help: "Previous connection rows written by the participation fan-out.",
	})
)
