package cacheinfra

import (
	"context"
	"testing"
	"time"
)

type record struct {
	Name  string
	Count int
}

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()

	store, err := NewMemoryStore(DefaultMemoryConfig(), nil)
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	return store
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	want := record{Name: "algebra", Count: 3}
	store.Set(ctx, "record:1", want, time.Hour)

	var got record
	if !store.Get(ctx, "record:1", &got) {
		t.Fatal("expected hit after Set")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMemoryStore_MissOnAbsentKey(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	var got record
	if store.Get(ctx, "nope", &got) {
		t.Error("expected miss for absent key")
	}
}

func TestMemoryStore_MissOnDecodeFailure(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.Set(ctx, "record:1", record{Name: "algebra"}, time.Hour)

	// A destination the payload cannot decode into must degrade to a miss,
	// never surface an error.
	var wrong int
	if store.Get(ctx, "record:1", &wrong) {
		t.Error("expected miss when payload does not decode into dest")
	}
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.Set(ctx, "record:1", record{Name: "algebra"}, time.Hour)
	store.Delete(ctx, "record:1")

	var got record
	if store.Get(ctx, "record:1", &got) {
		t.Error("expected miss after delete")
	}

	// Deleting an already-absent key is a no-op.
	store.Delete(ctx, "record:1")
}

func TestMemoryStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.Set(ctx, "record:1", record{Name: "algebra", Count: 1}, time.Hour)
	store.Set(ctx, "record:1", record{Name: "geometry", Count: 2}, time.Hour)

	var got record
	if !store.Get(ctx, "record:1", &got) {
		t.Fatal("expected hit")
	}
	if got.Name != "geometry" || got.Count != 2 {
		t.Errorf("expected overwritten value, got %+v", got)
	}
}

func TestMemoryConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MemoryConfig)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *MemoryConfig) {}},
		{name: "zero capacity", mutate: func(c *MemoryConfig) { c.Capacity = 0 }, wantErr: true},
		{name: "zero shards", mutate: func(c *MemoryConfig) { c.NumShards = 0 }, wantErr: true},
		{name: "zero ttl", mutate: func(c *MemoryConfig) { c.TTL = 0 }, wantErr: true},
		{name: "eviction out of range", mutate: func(c *MemoryConfig) { c.EvictionPercentage = 101 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMemoryConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
