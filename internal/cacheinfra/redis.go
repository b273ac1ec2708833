// Package cacheinfra provides the cache.Store backends: Redis for
// production and an in-process sturdyc cache for development and tests.
// Both speak msgpack on the wire and both swallow their own faults, logging
// them and degrading to a miss or a no-op as the cache contract requires.
package cacheinfra

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// RedisStore implements cache.Store on top of a shared Redis client. The
// client is established once at process start and reused by all requests.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisStore creates a Redis-backed cache store. A nil logger falls back
// to slog.Default.
func NewRedisStore(client *redis.Client, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{client: client, logger: logger}
}

// Get implements cache.Store. Any fault, including a payload that no longer
// decodes into dest, reports a miss.
func (s *RedisStore) Get(ctx context.Context, key string, dest any) bool {
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	if err := msgpack.Unmarshal(payload, dest); err != nil {
		s.logger.Warn("cache decode failed", "key", key, "error", err)
		return false
	}
	return true
}

// Set implements cache.Store.
func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	payload, err := msgpack.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// Delete implements cache.Store. Deleting an absent key is a no-op in Redis
// already, so only transport failures are logged.
func (s *RedisStore) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("cache delete failed", "key", key, "error", err)
	}
}
