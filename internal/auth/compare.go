package auth

import "crypto/subtle"

// ConstantTimeEqual reports whether a and b hold the same bytes. Sequences of different
// length return false immediately; for equal lengths the running time does not depend on
// where the first difference is.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// ConstantTimeEqualString is ConstantTimeEqual over the UTF-8 bytes of two strings
func ConstantTimeEqualString(a, b string) bool {
	return ConstantTimeEqual([]byte(a), []byte(b))
}
