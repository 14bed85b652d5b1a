package middleware

import (
	"net/http"

	apperrors "trove-backend/internal/errors"
	"trove-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 with the standard error body
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithContext(c.Request.Context()).
					WithField("panic", err).
					Error("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  apperrors.CodeInternal,
				})
			}
		}()

		c.Next()
	}
}
