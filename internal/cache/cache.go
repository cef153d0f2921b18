// Package cache provides an optional Redis cache-aside for report responses.
// Reports are recomputed from scratch on every request; caching the rendered
// JSON keeps a dashboard that polls the same window cheap. The cache is a
// pure accelerator: with no Redis configured every call degrades to a miss.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisClient is the slice of the redis API the cache uses, kept narrow so
// tests can substitute a fake.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// ReportCache caches rendered report payloads keyed by window size and
// remembers which keys it wrote so a mutation can drop them all.
type ReportCache struct {
	redis RedisClient
	ttl   time.Duration

	mu   sync.Mutex
	keys map[string]struct{}
}

// New returns a cache backed by the Redis at addr. An empty addr returns a
// disabled cache on which every operation is a no-op.
func New(addr string, ttl time.Duration) *ReportCache {
	c := &ReportCache{ttl: ttl, keys: make(map[string]struct{})}
	if addr == "" {
		return c
	}
	c.redis = redis.NewClient(&redis.Options{Addr: addr})
	return c
}

// NewWithClient returns a cache over an existing client.
func NewWithClient(cli RedisClient, ttl time.Duration) *ReportCache {
	return &ReportCache{redis: cli, ttl: ttl, keys: make(map[string]struct{})}
}

func reportKey(months int) string {
	return fmt.Sprintf("report:monthly:%d", months)
}

// Get returns the cached payload for the window, if present.
func (c *ReportCache) Get(ctx context.Context, months int) ([]byte, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, reportKey(months)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores the payload for the window.
func (c *ReportCache) Set(ctx context.Context, months int, data []byte) {
	if c == nil || c.redis == nil {
		return
	}
	key := reportKey(months)
	if err := c.redis.SetEx(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Report cache write failed")
		return
	}
	c.mu.Lock()
	c.keys[key] = struct{}{}
	c.mu.Unlock()
}

// Invalidate drops every cached report. Called after any mutation, since any
// entity change can shift the figures.
func (c *ReportCache) Invalidate(ctx context.Context) {
	if c == nil || c.redis == nil {
		return
	}
	c.mu.Lock()
	keys := make([]string, 0, len(c.keys))
	for k := range c.keys {
		keys = append(keys, k)
	}
	c.keys = make(map[string]struct{})
	c.mu.Unlock()
	if len(keys) == 0 {
		return
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("Report cache invalidation failed")
	}
}

// Close releases the underlying client.
func (c *ReportCache) Close() error {
	if c == nil || c.redis == nil {
		return nil
	}
	return c.redis.Close()
}
