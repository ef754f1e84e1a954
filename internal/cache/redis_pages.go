// Package cache time-bound storage for raw upstream pages
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPageTTL applies when no TTL is configured
const DefaultPageTTL = 5 * time.Minute

const keyPrefix = "propscope:page:"

// RedisPageCache implements interfaces.PageCache on redis. Every entry carries a TTL.
type RedisPageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPageCache wraps an existing client
func NewRedisPageCache(client *redis.Client, ttl time.Duration) *RedisPageCache {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &RedisPageCache{client: client, ttl: ttl}
}

// PageKey redis key for a request URL
func PageKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached body for url; false on a miss
func (c *RedisPageCache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, PageKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get page: %w", err)
	}
	return body, true, nil
}

// Set stores body for url until the TTL runs out
func (c *RedisPageCache) Set(ctx context.Context, url string, body []byte) error {
	if err := c.client.Set(ctx, PageKey(url), body, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set page: %w", err)
	}
	return nil
}

// Ping checks the connection at startup
func (c *RedisPageCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
