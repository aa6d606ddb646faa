package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"aaaas/sequence-api/pkg/log"
)

// LoggerMiddleware writes one structured line per request
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client", c.ClientIP(),
		)
	}
}
