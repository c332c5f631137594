package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"travelapi/internal/metrics"
)

// Metrics records request count and latency labelled by route template, so
// /api/transport/:mode stays one series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
