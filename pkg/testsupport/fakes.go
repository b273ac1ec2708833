// Package testsupport provides the in-memory fakes and fixture helpers the
// service and handler tests share: a counting store gateway and a counting
// cache gateway, both honoring the same contracts as the real adapters.
package testsupport

import (
	"context"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/goliatone/go-campus-api/store"
)

// NewID returns a fresh well-formed document identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// StoreFake is an in-memory store.Store[T] that counts calls and can be
// forced to fail, so tests can assert exactly how many store round-trips an
// operation performed.
type StoreFake[T any] struct {
	mu      sync.Mutex
	records map[string]T
	order   []string

	getID func(T) string
	setID func(T, string) T

	CreateCalls   int
	FindByIDCalls int
	FindAllCalls  int
	UpdateCalls   int
	DeleteCalls   int

	// FailWith, when non-nil, makes every operation fail with it.
	FailWith error
}

// NewStoreFake builds a store fake around the entity's identifier accessors.
func NewStoreFake[T any](getID func(T) string, setID func(T, string) T) *StoreFake[T] {
	return &StoreFake[T]{
		records: make(map[string]T),
		getID:   getID,
		setID:   setID,
	}
}

// Create implements store.Store.
func (f *StoreFake[T]) Create(ctx context.Context, record T) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateCalls++
	if f.FailWith != nil {
		var zero T
		return zero, f.FailWith
	}

	record = f.setID(record, NewID())
	id := f.getID(record)
	f.records[id] = record
	f.order = append(f.order, id)
	return record, nil
}

// FindByID implements store.Store.
func (f *StoreFake[T]) FindByID(ctx context.Context, id string) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.FindByIDCalls++
	var zero T
	if f.FailWith != nil {
		return zero, f.FailWith
	}
	if !store.IsValidID(id) {
		return zero, store.ErrInvalidID
	}
	record, ok := f.records[id]
	if !ok {
		return zero, store.ErrNotFound
	}
	return record, nil
}

// FindAll implements store.Store, preserving insertion order.
func (f *StoreFake[T]) FindAll(ctx context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.FindAllCalls++
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	all := []T{}
	for _, id := range f.order {
		all = append(all, f.records[id])
	}
	return all, nil
}

// Update implements store.Store.
func (f *StoreFake[T]) Update(ctx context.Context, id string, record T) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.UpdateCalls++
	var zero T
	if f.FailWith != nil {
		return zero, f.FailWith
	}
	if !store.IsValidID(id) {
		return zero, store.ErrInvalidID
	}
	if _, ok := f.records[id]; !ok {
		return zero, store.ErrNotFound
	}
	record = f.setID(record, id)
	f.records[id] = record
	return record, nil
}

// Delete implements store.Store.
func (f *StoreFake[T]) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.DeleteCalls++
	if f.FailWith != nil {
		return f.FailWith
	}
	if !store.IsValidID(id) {
		return store.ErrInvalidID
	}
	if _, ok := f.records[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.records, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// StoreCalls sums every store round-trip the fake has served.
func (f *StoreFake[T]) StoreCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CreateCalls + f.FindByIDCalls + f.FindAllCalls + f.UpdateCalls + f.DeleteCalls
}

// CacheFake is an in-memory cache.Store speaking the same msgpack codec as
// the real adapters. It records the TTL of every write and can simulate a
// broken backend, which per the cache contract must look like a miss.
type CacheFake struct {
	mu      sync.Mutex
	entries map[string][]byte

	// TTLs records the expiry passed with the most recent Set per key.
	TTLs map[string]time.Duration

	GetCalls    int
	SetCalls    int
	DeleteCalls int

	// Broken simulates a failed backend: every Get misses and every Set is
	// dropped. Deletes stay no-ops either way.
	Broken bool
}

// NewCacheFake returns an empty cache fake.
func NewCacheFake() *CacheFake {
	return &CacheFake{
		entries: make(map[string][]byte),
		TTLs:    make(map[string]time.Duration),
	}
}

// Get implements cache.Store.
func (c *CacheFake) Get(ctx context.Context, key string, dest any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.GetCalls++
	if c.Broken {
		return false
	}
	payload, ok := c.entries[key]
	if !ok {
		return false
	}
	if err := msgpack.Unmarshal(payload, dest); err != nil {
		return false
	}
	return true
}

// Set implements cache.Store.
func (c *CacheFake) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.SetCalls++
	if c.Broken {
		return
	}
	payload, err := msgpack.Marshal(value)
	if err != nil {
		return
	}
	c.entries[key] = payload
	c.TTLs[key] = ttl
}

// Delete implements cache.Store.
func (c *CacheFake) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.DeleteCalls++
	delete(c.entries, key)
}

// Has reports whether an entry currently exists for key without counting as
// a cache read.
func (c *CacheFake) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Len reports how many entries the fake currently holds.
func (c *CacheFake) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
