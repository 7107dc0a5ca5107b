// Package metrics provides Prometheus metrics collection for the rate service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// RateRequestsTotal counts rate requests by source (carrier or estimated).
	RateRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_requests_total",
			Help: "Total number of rate requests by source",
		},
		[]string{"source"},
	)

	// CategoryRequestsTotal counts per-category carrier requests by outcome.
	CategoryRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_category_requests_total",
			Help: "Total number of carrier rate requests per service category",
		},
		[]string{"category", "status"},
	)

	// CarrierRetriesTotal counts retry attempts by operation and error kind.
	CarrierRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrier_retries_total",
			Help: "Total number of carrier request retries",
		},
		[]string{"op", "kind"},
	)

	// TokenRefreshesTotal counts OAuth token refreshes.
	TokenRefreshesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carrier_token_refreshes_total",
			Help: "Total number of carrier OAuth token refreshes",
		},
	)

	// PackingDuration tracks bin-packing duration.
	PackingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "packing_duration_seconds",
			Help:    "Box packing duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// PackingBoxes tracks the number of boxes produced per packing call.
	PackingBoxes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "packing_boxes",
			Help:    "Boxes produced per packing call",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
	)
)

// RecordRateRequest records a rate request by source.
func RecordRateRequest(source string) {
	RateRequestsTotal.WithLabelValues(source).Inc()
}

// RecordCategoryRequest records a per-category carrier request outcome.
func RecordCategoryRequest(category, status string) {
	CategoryRequestsTotal.WithLabelValues(category, status).Inc()
}

// RecordCarrierRetry records a retry attempt.
func RecordCarrierRetry(op, kind string) {
	CarrierRetriesTotal.WithLabelValues(op, kind).Inc()
}

// RecordTokenRefresh records an OAuth token refresh.
func RecordTokenRefresh() {
	TokenRefreshesTotal.Inc()
}

// RecordPacking records one packing call.
func RecordPacking(duration time.Duration, boxes int) {
	PackingDuration.Observe(duration.Seconds())
	PackingBoxes.Observe(float64(boxes))
}

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration.Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
