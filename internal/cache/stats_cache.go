package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StatsCache is a read-through JSON cache for the public aggregate
// endpoints. A missing or unreachable Redis degrades to cache misses; it
// never fails a request.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New builds the cache.
func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *StatsCache {
	return &StatsCache{client: client, ttl: ttl, logger: logger}
}

// Get loads a cached payload into dest, reporting whether it was a hit.
func (s *StatsCache) Get(ctx context.Context, key string, dest any) bool {
	if s == nil || s.client == nil {
		return false
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Debug("cache payload unreadable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores a payload under the configured TTL.
func (s *StatsCache) Set(ctx context.Context, key string, val any) {
	if s == nil || s.client == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		s.logger.Debug("cache payload not serializable", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
	}
}
