package handlers

import (
	"errors"
	"io"
	"net/http"

	apperrors "trove-backend/internal/errors"
	"trove-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error   string                      `json:"error" example:"Resource already exists"`
	Code    string                      `json:"code" example:"conflict"`
	Details []apperrors.ValidationError `json:"details,omitempty"`
}

var statusByCode = map[string]int{
	apperrors.CodeBadRequest:      http.StatusBadRequest,
	apperrors.CodeUnauthenticated: http.StatusUnauthorized,
	apperrors.CodeForbidden:       http.StatusForbidden,
	apperrors.CodeNotFound:        http.StatusNotFound,
	apperrors.CodeConflict:        http.StatusConflict,
	apperrors.CodeInternal:        http.StatusInternalServerError,
}

// MaxRequestBodyBytes bounds POST bodies on /resources and the webhook route
const MaxRequestBodyBytes = 1 << 20

// readBody reads the whole request body, refusing anything over MaxRequestBodyBytes
func readBody(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBodyBytes)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.ErrRequestBodyTooLarge
		}
		return nil, apperrors.ErrInvalidJSONBody
	}
	return body, nil
}

// respondError writes the error body for err. Internal failures are logged and replaced
// with a generic message.
func respondError(c *gin.Context, err error) {
	code := apperrors.Code(err)
	resp := ErrorResponse{Error: err.Error(), Code: code}

	var fieldErrs *apperrors.ValidationErrors
	var fieldErr *apperrors.ValidationError
	switch {
	case errors.As(err, &fieldErrs):
		resp.Error = "Validation failed"
		resp.Details = fieldErrs.Fields
	case errors.As(err, &fieldErr):
		resp.Error = "Validation failed"
		resp.Details = []apperrors.ValidationError{*fieldErr}
	case apperrors.IsAlreadyExists(err):
		resp.Error = "Resource already exists"
	case code == apperrors.CodeInternal:
		logger.WithContext(c.Request.Context()).WithError(err).
			WithField("path", c.FullPath()).
			Error("request failed")
		resp.Error = "Internal server error"
	}

	c.JSON(statusByCode[code], resp)
}
