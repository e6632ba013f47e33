package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	ua "github.com/mileusna/useragent"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics are the request counters exported on /metrics.
type HTTPMetrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

var metricLabels = []string{"method", "path", "status", "response_code", "user_agent"}

// NewHTTPMetrics creates the collectors and registers them with reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests handled.",
		}, metricLabels),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portfolio",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time spent handling HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, metricLabels),
	}
	reg.MustRegister(m.Requests, m.Duration)
	return m
}

// Metrics records count and latency per route template. Unmatched routes
// share one label so scanners cannot blow up cardinality.
func Metrics(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		code := c.Writer.Status()
		labels := prometheus.Labels{
			"method":        c.Request.Method,
			"path":          path,
			"status":        strconv.Itoa(code/100) + "XX",
			"response_code": strconv.Itoa(code),
			"user_agent":    userAgent(c.Request.UserAgent()),
		}
		m.Duration.With(labels).Observe(time.Since(start).Seconds())
		m.Requests.With(labels).Inc()
	}
}

func userAgent(header string) string {
	if header == "" {
		return "unknown"
	}
	name := ua.Parse(header).Name
	if name == "" {
		return "other"
	}
	return name
}
