package middleware

import (
	"time"

	"trove-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger writes one structured line per request
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		entry := logger.WithContext(c.Request.Context()).WithFields(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
		})

		level := logrus.InfoLevel
		switch {
		case status >= 500:
			level = logrus.ErrorLevel
		case status >= 400:
			level = logrus.WarnLevel
		}
		entry.Log(level, "HTTP request")
	}
}
