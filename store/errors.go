package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a well-formed identifier matches no record.
var ErrNotFound = errors.New("record not found")

// ErrInvalidID is returned when an identifier is not well-formed. It is
// detected before any store or cache round-trip.
var ErrInvalidID = errors.New("invalid record identifier")

// Fault wraps a driver or connectivity failure from the document store.
// Faults abort the enclosing operation and surface as a generic server
// error; retries are the driver's concern, not this layer's.
type Fault struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("store fault during %s: %v", f.Op, f.Err)
}

// Unwrap exposes the underlying driver error.
func (f *Fault) Unwrap() error {
	return f.Err
}
