// Package cache provides a TTL key/value store with a preferred redis
// backend and an automatic in-process fallback. Backend failures never
// surface to callers; every operation degrades silently to the
// fallback tier.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"league-activity/internal/config"
	"league-activity/internal/constants"
	"league-activity/internal/dependencies/clock"
)

type Cache struct {
	preferred *redis.Client // nil in fallback-only mode
	fallback  *memoryStore
	logger    zerolog.Logger
}

// New builds a cache from configuration. An empty redis URL, or one
// that does not parse, yields fallback-only mode; an unreachable redis
// is kept and degraded around per operation.
func New(cfg *config.Config, clk clock.Clock, logger zerolog.Logger) *Cache {
	c := &Cache{
		fallback: newMemoryStore(clk, constants.CacheSweepInterval),
		logger:   logger,
	}

	if cfg.RedisURL == "" {
		logger.Info().Msg("no redis configured, cache running fallback-only")
		return c
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("invalid redis url, cache running fallback-only")
		return c
	}
	c.preferred = redis.NewClient(opts)

	logger.Info().Str("addr", opts.Addr).Msg("redis cache backend configured")
	return c
}

// NewWithClient builds a cache around an existing redis client (for testing).
func NewWithClient(client *redis.Client, clk clock.Clock, logger zerolog.Logger) *Cache {
	return &Cache{
		preferred: client,
		fallback:  newMemoryStore(clk, constants.CacheSweepInterval),
		logger:    logger,
	}
}

// Get returns the value for key, or false when absent or expired.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.preferred != nil {
		value, err := c.preferred.Get(ctx, key).Bytes()
		if err == nil {
			return value, true
		}
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("redis get failed, falling back")
		}
	}
	return c.fallback.get(key)
}

// Set stores value under key for ttl. Never returns an error: a
// preferred-backend write failure degrades to the fallback store.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c.preferred != nil {
		err := c.preferred.Set(ctx, key, value, ttl).Err()
		if err == nil {
			return
		}
		c.logger.Warn().Err(err).Str("key", key).Msg("redis set failed, falling back")
	}
	c.fallback.set(key, value, ttl)
}

// Delete removes key from both tiers.
func (c *Cache) Delete(ctx context.Context, key string) {
	if c.preferred != nil {
		if err := c.preferred.Del(ctx, key).Err(); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("redis delete failed")
		}
	}
	c.fallback.delete(key)
}

// Close stops the fallback sweeper and closes the redis client.
func (c *Cache) Close() error {
	c.fallback.close()
	if c.preferred != nil {
		return c.preferred.Close()
	}
	return nil
}
