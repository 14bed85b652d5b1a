package auth

import (
	"net/http"

	apperrors "trove-backend/internal/errors"
	"trove-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware provides API key authentication middleware
type AuthMiddleware struct {
	authenticator *APIKeyAuthenticator
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authenticator *APIKeyAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// RequireAPIKey rejects requests without a valid bearer API key
func (m *AuthMiddleware) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := m.authenticator.Authenticate(c.GetHeader("Authorization"))
		if err == nil {
			c.Next()
			return
		}

		status := http.StatusUnauthorized
		if apperrors.IsAuthorization(err) {
			status = http.StatusForbidden
		}

		logger.WithContext(c.Request.Context()).
			WithField("path", c.Request.URL.Path).
			Warn("api key authentication failed: ", err)

		c.AbortWithStatusJSON(status, gin.H{
			"error": err.Error(),
			"code":  apperrors.Code(err),
		})
	}
}
