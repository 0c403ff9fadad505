package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationRequestsTotal tracks single HTTP requests to the operation server
	OperationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appstore_operation_requests_total",
			Help: "Total number of requests sent to the operation server",
		},
		[]string{"path", "result"},
	)

	// OperationRequestLatency tracks operation server request latency
	OperationRequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "appstore_operation_request_latency_seconds",
			Help:    "Operation server request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	// CategoryFetchesTotal tracks fetches including their retries
	CategoryFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appstore_category_fetches_total",
			Help: "Total number of category fetches by outcome",
		},
		[]string{"outcome"}, // remote, empty, failed
	)

	// CategoryThrottleTotal tracks throttle decisions on the fetch entry point
	CategoryThrottleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appstore_category_throttle_total",
			Help: "Throttle decisions for category fetch triggers",
		},
		[]string{"decision"},
	)

	// CategoryCacheHitsTotal counts calls answered from the resolved cache
	CategoryCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "appstore_category_cache_hits_total",
			Help: "Category requests served from the replay cache",
		},
	)

	// CategoryFallback is 1 when the cached list is the built-in default
	CategoryFallback = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "appstore_category_fallback",
			Help: "Whether the cached category list is the default fallback",
		},
	)
)
