package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	apperrors "trove-backend/internal/errors"
)

// SignaturePrefix precedes the hex digest in X-Hub-Signature-256
const SignaturePrefix = "sha256="

// SignatureVerifier validates HMAC-SHA256 webhook signatures over raw request bodies
type SignatureVerifier struct {
	secret []byte
}

// NewSignatureVerifier creates a verifier keyed with the shared webhook secret
func NewSignatureVerifier(secret string) *SignatureVerifier {
	return &SignatureVerifier{secret: []byte(secret)}
}

// Configured returns a configuration error when no secret was supplied
func (v *SignatureVerifier) Configured() error {
	if len(v.secret) == 0 {
		return apperrors.ErrWebhookNotConfigured
	}
	return nil
}

// Sign returns "sha256=" followed by the lowercase hex HMAC of body
func (v *SignatureVerifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	return SignaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify compares the received signature, prefix included, against the one computed over
// the exact body bytes. With no secret configured nothing verifies.
func (v *SignatureVerifier) Verify(body []byte, signature string) bool {
	if len(v.secret) == 0 {
		return false
	}
	return ConstantTimeEqualString(v.Sign(body), signature)
}
