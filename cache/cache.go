package cache

import (
	"context"
	"time"
)

// DefaultTTL is the staleness bound applied to cache entries unless
// configured otherwise.
const DefaultTTL = 3600 * time.Second

// Store is the cache gateway: a key/value store with per-entry expiry.
//
// All three operations are best effort. Implementations must swallow and log
// their own failures: Get folds any fault into a miss, Set and Delete never
// propagate errors to the caller. See the package documentation for the
// rationale.
type Store interface {
	// Get decodes the entry for key into dest and reports whether it was a
	// hit. A missing key, an expired entry and any backend or decode fault
	// all report false.
	Get(ctx context.Context, key string, dest any) bool

	// Set overwrites the entry for key unconditionally, expiring after ttl.
	Set(ctx context.Context, key string, value any, ttl time.Duration)

	// Delete removes the entry for key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string)
}
