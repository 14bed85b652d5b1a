package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyPrefixMetadata namespaces every metadata entry
const KeyPrefixMetadata = "trove:metadata:"

// MetadataKey returns the key for a page URL. URLs are hashed so arbitrary input stays a
// fixed-length key.
func MetadataKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return KeyPrefixMetadata + hex.EncodeToString(sum[:])
}
