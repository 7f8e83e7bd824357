package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"skill-quest/internal/domain"
	"skill-quest/internal/logger"
	"skill-quest/internal/monitoring"

	"go.uber.org/zap"
)

// jsonCache stores JSON documents in a domain.Cache. A nil cache disables
// caching; cache failures are logged and treated as misses.
type jsonCache struct {
	cache domain.Cache
	name  string
	ttl   time.Duration
}

func newJSONCache(cache domain.Cache, name string, ttl time.Duration) *jsonCache {
	return &jsonCache{cache: cache, name: name, ttl: ttl}
}

// get decodes the value at key into dest and reports whether it was found.
func (c *jsonCache) get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.cache == nil {
		return false
	}
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Cache get failed", zap.String("cache", c.name), zap.String("key", key), zap.Error(err))
		}
		monitoring.RecordCacheLookup(c.name, false)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.Get().Warn("Cache entry is not valid JSON, ignoring", zap.String("cache", c.name), zap.String("key", key), zap.Error(err))
		monitoring.RecordCacheLookup(c.name, false)
		return false
	}
	monitoring.RecordCacheLookup(c.name, true)
	return true
}

func (c *jsonCache) set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.Get().Warn("Cache value marshal failed", zap.String("cache", c.name), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
		logger.Get().Warn("Cache set failed", zap.String("cache", c.name), zap.String("key", key), zap.Error(err))
	}
}

func (c *jsonCache) invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		logger.Get().Warn("Cache invalidation failed", zap.String("cache", c.name), zap.Strings("keys", keys), zap.Error(err))
	}
}
