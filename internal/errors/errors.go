package errors

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this URL"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a single field-level validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors carries every field error found in one submission.
type ValidationErrors struct {
	Fields []ValidationError
}

func (e *ValidationErrors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error
func (e *ValidationErrors) Add(field, message string) {
	e.Fields = append(e.Fields, ValidationError{Field: field, Message: message})
}

// Empty reports whether no errors were recorded
func (e *ValidationErrors) Empty() bool {
	return len(e.Fields) == 0
}

// BadRequestError represents malformed client input that is not tied to a field
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// AuthenticationError represents a missing or malformed credential
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents a credential or signature that is present but invalid
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrResourceNotFound = &NotFoundError{Entity: "resource"}
	ErrAuthorNotFound   = &NotFoundError{Entity: "resource author"}
)

// Already Exists Errors
var (
	ErrResourceExists = &AlreadyExistsError{Entity: "resource", Context: "with this URL"}
)

// Bad Request Errors
var (
	ErrInvalidJSONBody         = &BadRequestError{Message: "invalid JSON body"}
	ErrRequestBodyTooLarge     = &BadRequestError{Message: "request body exceeds 1 MiB"}
	ErrMalformedWebhookPayload = &BadRequestError{Message: "malformed JSON body"}
	ErrInvalidPaginationParams = &BadRequestError{Message: "limit must be between 1 and 100"}
	ErrInvalidCursor           = &BadRequestError{Message: "cursor is not a valid timestamp"}
)

// Authentication Errors
var (
	ErrMissingAuthorization = &AuthenticationError{Message: "missing Authorization header"}
	ErrInvalidAuthScheme    = &AuthenticationError{Message: "Authorization must use Bearer scheme"}
	ErrMissingSignature     = &AuthenticationError{Message: "missing signature header"}
	ErrInvalidAPIKey        = &AuthorizationError{Message: "invalid API key"}
	ErrInvalidSignature     = &AuthorizationError{Message: "invalid signature"}
	ErrWebhookNotConfigured = &ConfigurationError{Message: "GITHUB_WEBHOOK_SECRET is not configured"}
	ErrAPIKeyNotConfigured  = &ConfigurationError{Message: "API_KEY is not configured"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError or ValidationErrors
func IsValidation(err error) bool {
	var validationErr *ValidationError
	var validationErrs *ValidationErrors
	return errors.As(err, &validationErr) || errors.As(err, &validationErrs)
}

// IsBadRequest checks if an error is a BadRequestError
func IsBadRequest(err error) bool {
	var badReq *BadRequestError
	return errors.As(err, &badReq)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string) error {
	return &BadRequestError{Message: message}
}

// Machine-stable error categories carried in every error response body
const (
	CodeBadRequest      = "bad_request"
	CodeUnauthenticated = "unauthenticated"
	CodeForbidden       = "forbidden"
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeInternal        = "internal_error"
)

// Code maps an error to its response category. Anything unrecognised is internal.
func Code(err error) string {
	switch {
	case IsValidation(err), IsBadRequest(err):
		return CodeBadRequest
	case IsAuthentication(err):
		return CodeUnauthenticated
	case IsAuthorization(err):
		return CodeForbidden
	case IsNotFound(err):
		return CodeNotFound
	case IsAlreadyExists(err):
		return CodeConflict
	default:
		return CodeInternal
	}
}
