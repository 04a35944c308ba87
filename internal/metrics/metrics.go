// Package metrics defines the Prometheus collectors exported by the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instanti8_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "instanti8_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// GenerationsTotal counts completed generations by the source of the
	// returned code (remote or template).
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instanti8_generations_total",
			Help: "Total number of infrastructure generations by code source",
		},
		[]string{"source", "provider", "infra_type"},
	)

	RemoteGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "instanti8_remote_generation_duration_seconds",
			Help:    "Latency of chat-completion calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		},
		[]string{"outcome"},
	)

	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "instanti8_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// ObserveRemote records the latency of one chat-completion call
func ObserveRemote(outcome string, started time.Time) {
	RemoteGenerationDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
}

// Middleware instruments requests with RED metrics. The route template is
// used as the path label so unmatched paths do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
