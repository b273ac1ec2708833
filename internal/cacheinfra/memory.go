package cacheinfra

import (
	"context"
	"log/slog"
	"time"

	"github.com/viccon/sturdyc"
	"github.com/vmihailenco/msgpack/v5"
)

// MemoryConfig holds the configuration for the in-process cache backend.
type MemoryConfig struct {
	// Capacity is the maximum number of entries. Must be greater than 0.
	Capacity int

	// NumShards determines how many shards back the cache for concurrent
	// access. Must be greater than 0.
	NumShards int

	// TTL is the time-to-live applied to every entry. sturdyc expires
	// entries with a client-wide TTL, so unlike the Redis backend this
	// value applies uniformly rather than per call.
	TTL time.Duration

	// EvictionPercentage is the share of entries evicted when the cache is
	// full. Must be between 1 and 100.
	EvictionPercentage int
}

// DefaultMemoryConfig returns a MemoryConfig with sensible defaults.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Capacity:           10000,
		NumShards:          64,
		TTL:                time.Hour,
		EvictionPercentage: 10,
	}
}

// Validate checks whether the configuration values are valid.
func (c MemoryConfig) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// MemoryStore implements cache.Store with an in-process sturdyc cache. It is
// selected by the memory:// cache URI and exists for local development and
// tests, where running a Redis server is not worth the ceremony.
type MemoryStore struct {
	client *sturdyc.Client[[]byte]
	logger *slog.Logger
}

// NewMemoryStore creates an in-process cache store with the provided
// configuration. A nil logger falls back to slog.Default.
func NewMemoryStore(cfg MemoryConfig, logger *slog.Logger) (*MemoryStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := sturdyc.New[[]byte](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage)

	return &MemoryStore{client: client, logger: logger}, nil
}

// Get implements cache.Store.
func (s *MemoryStore) Get(ctx context.Context, key string, dest any) bool {
	payload, ok := s.client.Get(key)
	if !ok {
		return false
	}
	if err := msgpack.Unmarshal(payload, dest); err != nil {
		s.logger.Warn("cache decode failed", "key", key, "error", err)
		return false
	}
	return true
}

// Set implements cache.Store. The ttl argument is accepted for contract
// parity with the Redis backend; entries expire with the client-wide TTL.
func (s *MemoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	payload, err := msgpack.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	s.client.Set(key, payload)
}

// Delete implements cache.Store.
func (s *MemoryStore) Delete(ctx context.Context, key string) {
	s.client.Delete(key)
}
