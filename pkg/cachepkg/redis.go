// Package cachepkg provides a redis backed cache for read-heavy reference data.
package cachepkg

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indicates that the key is not present in the cache.
var ErrCacheMiss = errors.New("cache miss")

// RedisCache wraps a redis client with a minimal get/set surface.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to redis at the given address and returns the cache.
func NewRedisCache(ctx context.Context, address string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: address})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Get returns the cached value for the key or ErrCacheMiss.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}

		return "", err
	}

	return value, nil
}

// Set stores the value under the key for the given TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
