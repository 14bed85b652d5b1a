package auth

import (
	"strings"

	apperrors "trove-backend/internal/errors"
)

const bearerScheme = "Bearer"

// APIKeyAuthenticator checks "Authorization: Bearer <key>" headers against one configured key
type APIKeyAuthenticator struct {
	apiKey []byte
}

// NewAPIKeyAuthenticator creates an authenticator for the given key. An empty key rejects
// every request.
func NewAPIKeyAuthenticator(apiKey string) *APIKeyAuthenticator {
	return &APIKeyAuthenticator{apiKey: []byte(apiKey)}
}

// Configured returns a configuration error when no key was supplied
func (a *APIKeyAuthenticator) Configured() error {
	if len(a.apiKey) == 0 {
		return apperrors.ErrAPIKeyNotConfigured
	}
	return nil
}

// Authenticate validates an Authorization header value.
//
// Missing header or anything other than "Bearer <token>" is an AuthenticationError (401).
// A well-formed token that does not match is an AuthorizationError (403).
func (a *APIKeyAuthenticator) Authenticate(header string) error {
	if header == "" {
		return apperrors.ErrMissingAuthorization
	}

	token, err := parseBearer(header)
	if err != nil {
		return err
	}

	if len(a.apiKey) == 0 || !ConstantTimeEqual([]byte(token), a.apiKey) {
		return apperrors.ErrInvalidAPIKey
	}
	return nil
}

// parseBearer splits on the first space only; the scheme is case-sensitive and the token
// must be non-empty and contain no further spaces.
func parseBearer(header string) (string, error) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != bearerScheme || token == "" || strings.Contains(token, " ") {
		return "", apperrors.ErrInvalidAuthScheme
	}
	return token, nil
}
