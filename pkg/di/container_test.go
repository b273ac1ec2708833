package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/goliatone/go-campus-api/internal/config"
)

func TestBuildCache_MemoryBackendHonorsConfiguredTTL(t *testing.T) {
	c := &Container{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	cfg := config.Config{
		CacheURI: "memory://",
		CacheTTL: 50 * time.Millisecond,
	}
	cacheStore, err := c.buildCache(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	cacheStore.Set(ctx, "k", "v", cfg.CacheTTL)

	var got string
	if !cacheStore.Get(ctx, "k", &got) || got != "v" {
		t.Fatal("expected a hit before the TTL elapses")
	}

	time.Sleep(4 * cfg.CacheTTL)

	if cacheStore.Get(ctx, "k", &got) {
		t.Fatal("entry served past the configured TTL")
	}
}

func TestBuildCache_RejectsMalformedCacheURI(t *testing.T) {
	c := &Container{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	cfg := config.Config{CacheURI: "://not-a-uri", CacheTTL: time.Hour}
	if _, err := c.buildCache(context.Background(), cfg); err == nil {
		t.Fatal("expected an error")
	}
}
