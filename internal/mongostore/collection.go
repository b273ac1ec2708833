// Package mongostore implements the store.Store contract against a MongoDB
// collection, one collection per entity type. It is the source of truth the
// cache layer sits in front of.
package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/goliatone/go-campus-api/store"
)

// defaultOpTimeout bounds each round-trip so a dead store cannot hang the
// calling request indefinitely.
const defaultOpTimeout = 5 * time.Second

// ModelHandlers teaches the generic collection how to stamp an identifier
// onto a record. Entities are plain structs, so the wiring site supplies the
// accessor.
type ModelHandlers[T any] struct {
	SetID func(record T, id primitive.ObjectID) T
}

// Collection is a store.Store[T] backed by a single MongoDB collection. The
// underlying client is a process-wide shared resource owned by the DI
// container.
type Collection[T any] struct {
	coll      *mongo.Collection
	handlers  ModelHandlers[T]
	opTimeout time.Duration
}

// NewCollection wraps coll as a typed store gateway.
func NewCollection[T any](coll *mongo.Collection, handlers ModelHandlers[T]) *Collection[T] {
	return &Collection[T]{
		coll:      coll,
		handlers:  handlers,
		opTimeout: defaultOpTimeout,
	}
}

// Create implements store.Store. The gateway assigns the identifier before
// inserting so the returned record is complete without a second read.
func (c *Collection[T]) Create(ctx context.Context, record T) (T, error) {
	record = c.handlers.SetID(record, primitive.NewObjectID())

	ctx, cancel := c.bound(ctx)
	defer cancel()

	if _, err := c.coll.InsertOne(ctx, record); err != nil {
		var zero T
		return zero, &store.Fault{Op: "create", Err: err}
	}
	return record, nil
}

// FindByID implements store.Store.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return zero, store.ErrInvalidID
	}

	ctx, cancel := c.bound(ctx)
	defer cancel()

	var record T
	err = c.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return zero, store.ErrNotFound
	}
	if err != nil {
		return zero, &store.Fault{Op: "findById", Err: err}
	}
	return record, nil
}

// FindAll implements store.Store. An empty collection yields an empty slice.
func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	cursor, err := c.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, &store.Fault{Op: "findAll", Err: err}
	}

	records := []T{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, &store.Fault{Op: "findAll", Err: err}
	}
	return records, nil
}

// Update implements store.Store as a full-document replace; partial-field
// merging happens in the entity service before the record reaches here.
func (c *Collection[T]) Update(ctx context.Context, id string, record T) (T, error) {
	var zero T

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return zero, store.ErrInvalidID
	}
	record = c.handlers.SetID(record, oid)

	ctx, cancel := c.bound(ctx)
	defer cancel()

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)

	var updated T
	err = c.coll.FindOneAndReplace(ctx, bson.M{"_id": oid}, record, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return zero, store.ErrNotFound
	}
	if err != nil {
		return zero, &store.Fault{Op: "update", Err: err}
	}
	return updated, nil
}

// Delete implements store.Store. Hard delete, no tombstone.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrInvalidID
	}

	ctx, cancel := c.bound(ctx)
	defer cancel()

	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return &store.Fault{Op: "delete", Err: err}
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *Collection[T]) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.opTimeout)
}
