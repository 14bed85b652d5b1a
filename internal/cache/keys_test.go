package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataKey(t *testing.T) {
	a := MetadataKey("https://example.com/a")
	b := MetadataKey("https://example.com/b")

	assert.True(t, strings.HasPrefix(a, KeyPrefixMetadata))
	assert.Len(t, a, len(KeyPrefixMetadata)+64)
	assert.Equal(t, a, MetadataKey("https://example.com/a"))
	assert.NotEqual(t, a, b)
}

func TestNewMetadataCache_DefaultTTL(t *testing.T) {
	c := NewMetadataCache(nil, 0)
	assert.Equal(t, DefaultMetadataTTL, c.ttl)
}
