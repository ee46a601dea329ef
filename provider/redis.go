package provider

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/ayushbridge/conceptmapper/service"
)

// DefaultRedisTTL is how long cached lookup results live in Redis.
const DefaultRedisTTL = 15 * time.Minute

const redisKeyPrefix = "conceptmapper:lookup:"

// RedisCache wraps a provider with a shared Redis-backed cache so that
// multiple service instances reuse each other's lookups. Redis being
// down only costs the caching: every Redis failure falls through to the
// inner provider.
type RedisCache struct {
	inner  service.CandidateProvider
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a Redis-backed caching wrapper. A non-positive
// ttl falls back to DefaultRedisTTL; a nil logger falls back to a nop
// logger.
func NewRedisCache(inner service.CandidateProvider, client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Lookup implements service.CandidateProvider with Redis caching.
func (c *RedisCache) Lookup(ctx context.Context, system, query string, limit int) ([]service.CandidateEntry, error) {
	key := redisKeyPrefix + lookupKey(system, query, limit)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var entries []service.CandidateEntry
		if jsonErr := json.Unmarshal(data, &entries); jsonErr == nil {
			return entries, nil
		}
		c.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("redis get failed, falling through to provider",
			zap.String("key", key),
			zap.Error(err))
	}

	entries, err := c.inner.Lookup(ctx, system, query, limit)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(entries); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			c.logger.Warn("redis set failed", zap.String("key", key), zap.Error(setErr))
		}
	}
	return entries, nil
}

// Verify interface compliance.
var _ service.CandidateProvider = (*RedisCache)(nil)
