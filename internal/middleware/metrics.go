package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/career-guide-api/internal/service"
)

const unmatchedRoute = "unmatched"

// probePaths are scraped or polled constantly and would drown real traffic.
var probePaths = map[string]struct{}{
	"/metrics": {},
	"/health":  {},
	"/ready":   {},
}

// Metrics records request counts and latency labelled by route template.
// Requests that match no route share a single label.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if _, skip := probePaths[route]; skip || metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
