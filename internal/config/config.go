// Package config loads the process configuration from the environment, with
// an optional .env file merged in for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-campus-api/cache"
)

// Config carries everything the server needs to wire its dependencies.
type Config struct {
	// Port is the TCP port the HTTP server binds to.
	Port string

	// MongoURI and MongoDBName select the document store.
	MongoURI    string
	MongoDBName string

	// CacheURI selects the cache backend. A redis:// or rediss:// URI picks
	// the Redis adapter; the literal "memory://" picks the in-process one.
	CacheURI string

	// CacheTTL is the expiry applied to every cache entry.
	CacheTTL time.Duration

	// CourseKeys and StudentKeys name the cache entries per collection.
	CourseKeys  cache.Keys
	StudentKeys cache.Keys
}

// Load reads the configuration from the environment. A .env file in the
// working directory is merged in first when present; already-set variables
// win. Missing required variables fail fast with a named error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:        envOr("PORT", "3000"),
		MongoURI:    os.Getenv("MONGODB_URI"),
		MongoDBName: os.Getenv("MONGODB_DB_NAME"),
		CacheURI:    os.Getenv("REDIS_URI"),
		CacheTTL:    cache.DefaultTTL,
		CourseKeys:  cache.CourseKeys(),
		StudentKeys: cache.StudentKeys(),
	}

	for name, value := range map[string]string{
		"MONGODB_URI":     cfg.MongoURI,
		"MONGODB_DB_NAME": cfg.MongoDBName,
		"REDIS_URI":       cfg.CacheURI,
	} {
		if value == "" {
			return Config{}, fmt.Errorf("config: %s is required", name)
		}
	}

	if raw := os.Getenv("CACHE_TTL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("config: CACHE_TTL_SECONDS must be a positive integer, got %q", raw)
		}
		cfg.CacheTTL = time.Duration(seconds) * time.Second
	}

	cfg.CourseKeys = cache.Keys{
		All:    envOr("REDIS_KEY_ALL_COURSES", cfg.CourseKeys.All),
		Prefix: envOr("REDIS_KEY_COURSE_PREFIX", cfg.CourseKeys.Prefix),
		Stats:  envOr("REDIS_KEY_COURSE_STATS", cfg.CourseKeys.Stats),
	}
	cfg.StudentKeys = cache.Keys{
		All:    envOr("REDIS_KEY_ALL_STUDENTS", cfg.StudentKeys.All),
		Prefix: envOr("REDIS_KEY_STUDENT_PREFIX", cfg.StudentKeys.Prefix),
		Stats:  envOr("REDIS_KEY_STUDENT_STATS", cfg.StudentKeys.Stats),
	}

	return cfg, nil
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
