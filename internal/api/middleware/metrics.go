package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/EnesCagri/kaankutuphane/pkg/metrics"
)

// Metrics counts requests per route, split by outcome.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		if c.Writer.Status() < 400 {
			m.SuccessfulRequests.WithLabelValues(path).Inc()
		} else {
			m.BadRequests.WithLabelValues(path).Inc()
		}
	}
}
