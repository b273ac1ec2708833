// Package store defines the data-access contract the entity services depend
// on, together with the error taxonomy adapters are expected to speak.
//
// The store is the single source of truth. Implementations live under
// internal/mongostore; callers program against Store[T] so that tests can
// substitute in-memory fakes.
package store

import "context"

// Store executes CRUD operations against one document collection, keyed by a
// unique identifier the store assigns on creation.
//
// There are deliberately no batch operations, no transactions and no
// pagination: FindAll always returns the complete collection.
type Store[T any] interface {
	// Create inserts a new record and returns it with its assigned
	// identifier. Fails with *Fault on driver or constraint errors.
	Create(ctx context.Context, record T) (T, error)

	// FindByID returns the record for a well-formed identifier. It fails
	// with ErrInvalidID before any round-trip when the identifier is
	// malformed, and with ErrNotFound when no record matches.
	FindByID(ctx context.Context, id string) (T, error)

	// FindAll returns every record in the collection. An empty collection
	// yields an empty slice, not an error.
	FindAll(ctx context.Context) ([]T, error)

	// Update replaces the stored record. Field merging is the caller's
	// concern; by the time Update runs the record is complete. Fails with
	// ErrNotFound when the identifier does not exist.
	Update(ctx context.Context, id string, record T) (T, error)

	// Delete removes the record. Hard delete, no tombstone. Fails with
	// ErrNotFound when the identifier does not exist.
	Delete(ctx context.Context, id string) error
}

// IsValidID reports whether id is a well-formed document identifier: a
// 24-character hex string. Services check this before touching the cache or
// the store so that malformed identifiers cost zero round-trips.
func IsValidID(id string) bool {
	if len(id) != 24 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
