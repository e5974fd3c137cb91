package middlewares

import (
	"time"

	"github.com/admin/astro-core/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics считает запросы по шаблону маршрута
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.IncInFlight()
		defer metrics.DecInFlight()

		c.Next()

		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
