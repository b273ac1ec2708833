// Package cache defines the cache-gateway contract and the cache-key scheme
// used by the entity services.
//
// # Overview
//
// The cache is a derived, TTL-bounded view of the store, never the source of
// truth. The package exports two things:
//
//   - Store: a best-effort key/value contract with per-entry expiry
//   - Keys: the explicit key-formatting scheme (all-entities key, per-id
//     key, statistics key) each entity service owns
//
// Backends live under internal/cacheinfra; the production backend is Redis,
// with an in-process backend available for development and tests.
//
// # Best-effort semantics
//
// The cache is a pure performance layer, so a cache fault must degrade to a
// store round-trip rather than abort the request. The contract encodes that
// explicitly: Get reports hit/miss as a bool and folds every failure mode
// (missing key, expired entry, connectivity error, decode error) into a
// miss; Set and Delete are side effects that never fail the caller. Adapters
// log swallowed faults so they stay observable.
//
// # Key scheme
//
// Each entity type owns three keys: one for the full collection, one per
// individual record (prefix + id), and one for the statistics summary. Key
// names are part of the operational contract (they are visible to anyone
// inspecting the cache) and are overridable through configuration. Keys are
// always produced by the formatter on this type; a key must never be derived
// through a read call or any other indirection.
//
// # Consistency discipline
//
// Reads are read-through: probe, fetch from the store on miss, populate with
// TTL. Empty results are never cached. After any successful mutation the
// service invalidates every key that could hold stale data about the record
// or the aggregates before returning. Between the store write and the
// invalidation a concurrent reader can still observe the old entry; that
// window is accepted and bounded by the TTL.
package cache
