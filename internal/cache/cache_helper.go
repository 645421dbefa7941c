package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache key not found")
)

// CacheHelper provides common caching operations. A nil client degrades
// gracefully: writes become no-ops and reads miss.
type CacheHelper struct {
	client *redis.Client
	prefix string
}

func NewCacheHelper(client *redis.Client, prefix string) *CacheHelper {
	return &CacheHelper{
		client: client,
		prefix: prefix,
	}
}

// CacheConfig defines cache configuration for different data types
type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

var (
	// Lesson listings and details change on every write, keep them short
	LessonCacheConfig = CacheConfig{
		TTL:    5 * time.Minute,
		Prefix: "lesson:",
	}

	StudentCacheConfig = CacheConfig{
		TTL:    5 * time.Minute,
		Prefix: "student:",
	}

	SchoolCacheConfig = CacheConfig{
		TTL:    10 * time.Minute,
		Prefix: "school:",
	}

	// Stats cache for expensive dashboard queries
	StatsCacheConfig = CacheConfig{
		TTL:    time.Minute,
		Prefix: "stats:",
	}
)

func (c *CacheHelper) GetCacheKey(key string) string {
	return c.prefix + key
}

// Get retrieves and unmarshals data from cache
func (c *CacheHelper) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := c.client.Get(ctx, c.GetCacheKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

// Set marshals and stores data in cache
func (c *CacheHelper) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	return c.client.Set(ctx, c.GetCacheKey(key), data, ttl).Err()
}

// Delete removes data from cache
func (c *CacheHelper) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}

	cacheKeys := make([]string, len(keys))
	for i, key := range keys {
		cacheKeys[i] = c.GetCacheKey(key)
	}

	return c.client.Del(ctx, cacheKeys...).Err()
}

// InvalidatePattern removes all keys matching a pattern. SCAN keeps the
// server responsive on large keyspaces.
func (c *CacheHelper) InvalidatePattern(ctx context.Context, pattern string) error {
	if c.client == nil {
		return nil
	}

	fullPattern := c.GetCacheKey(pattern)
	var cursor uint64

	for {
		scanKeys, next, err := c.client.Scan(ctx, cursor, fullPattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan pattern error: %w", err)
		}
		if len(scanKeys) > 0 {
			if err := c.client.Del(ctx, scanKeys...).Err(); err != nil {
				return fmt.Errorf("cache delete pattern error: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return nil
}
