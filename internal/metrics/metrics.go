package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "managerpro_http_requests_total",
			Help: "Total HTTP requests by method, path, and status",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "managerpro_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	notificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "managerpro_notifications_created_total",
			Help: "Total notifications created by type",
		},
		[]string{"type"},
	)

	remindersEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "managerpro_reminders_emitted_total",
			Help: "Total event reminders emitted by the poller",
		},
	)
)

// RecordNotificationCreated increments the per-type creation counter.
func RecordNotificationCreated(notifType string) {
	notificationsCreated.WithLabelValues(notifType).Inc()
}

// RecordRemindersEmitted adds to the reminder counter.
func RecordRemindersEmitted(n int) {
	remindersEmitted.Add(float64(n))
}

// Middleware records request counts and latencies per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
