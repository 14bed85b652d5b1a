package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trove-backend/internal/service"

	"github.com/redis/go-redis/v9"
)

// DefaultMetadataTTL is used when no TTL is configured
const DefaultMetadataTTL = 24 * time.Hour

// MetadataCache keeps fetched page metadata in Redis
type MetadataCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ service.MetadataCache = (*MetadataCache)(nil)

// NewMetadataCache creates a Redis-backed metadata cache
func NewMetadataCache(client *redis.Client, ttl time.Duration) *MetadataCache {
	if ttl <= 0 {
		ttl = DefaultMetadataTTL
	}
	return &MetadataCache{
		client: client,
		ttl:    ttl,
	}
}

// NewClient builds a client from the connection settings and checks it answers
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// Get returns the cached value for url, or nil on a miss
func (c *MetadataCache) Get(ctx context.Context, url string) ([]byte, error) {
	data, err := c.client.Get(ctx, MetadataKey(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached metadata: %w", err)
	}
	return data, nil
}

// Set stores value for url with the configured TTL
func (c *MetadataCache) Set(ctx context.Context, url string, value []byte) error {
	if err := c.client.Set(ctx, MetadataKey(url), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache metadata: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable
func (c *MetadataCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
