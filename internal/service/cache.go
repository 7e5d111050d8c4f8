package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a JSON cache on Redis. A Cache built from a nil client misses on
// every read and drops every write, so services run unchanged without Redis.
type Cache struct {
	rdb *redis.Client
}

// NewCache creates a Cache. rdb may be nil.
func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil
}

// Get decodes the cached value for key into dst and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	if !c.enabled() {
		return false
	}
	cached, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(cached), dst); err != nil {
		slog.Warn("cache entry undecodable", "key", key, "error", err)
		return false
	}
	slog.Debug("cache hit", "key", key)
	return true
}

// Set stores v under key for ttl.
func (c *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

// Delete removes the given keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.enabled() || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Error("failed to delete cache keys", "keys", keys, "error", err)
	}
}

// DeletePattern removes every key matching the glob pattern.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) {
	if !c.enabled() {
		return
	}
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	var n int
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err == nil {
			n++
		}
	}
	if err := iter.Err(); err != nil {
		slog.Error("cache scan failed", "pattern", pattern, "error", err)
		return
	}
	slog.Debug("cache invalidated", "pattern", pattern, "keys", n)
}
