package courses

import (
	"context"
	"time"

	"github.com/goliatone/go-campus-api/cache"
	"github.com/goliatone/go-campus-api/store"
)

// Service orchestrates the store and cache gateways for courses. It owns the
// course key scheme and the invalidation rules; every cache interaction is
// best effort, so a cache fault only costs an extra store round-trip.
type Service struct {
	store store.Store[Course]
	cache cache.Store
	keys  cache.Keys
	ttl   time.Duration
}

// NewService wires a course service. keys and ttl usually come from
// configuration; cache.CourseKeys() and cache.DefaultTTL are the defaults.
func NewService(st store.Store[Course], cs cache.Store, keys cache.Keys, ttl time.Duration) *Service {
	return &Service{store: st, cache: cs, keys: keys, ttl: ttl}
}

// Create validates the input, inserts the course and invalidates the
// aggregate keys. The new record's own key cannot exist yet, so only the
// collection and statistics entries go stale.
func (s *Service) Create(ctx context.Context, in CreateInput) (Course, error) {
	if err := in.Validate(); err != nil {
		return Course{}, err
	}

	created, err := s.store.Create(ctx, Course{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Instructor:  in.Instructor,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   nil,
	})
	if err != nil {
		return Course{}, err
	}

	s.cache.Delete(ctx, s.keys.All)
	s.cache.Delete(ctx, s.keys.Stats)

	return created, nil
}

// List returns every course, read-through cached under the all-courses key.
// The bool reports whether the cache served the result. An empty collection
// is returned as-is and never cached.
func (s *Service) List(ctx context.Context) ([]Course, bool, error) {
	var cached []Course
	if s.cache.Get(ctx, s.keys.All, &cached) {
		return cached, true, nil
	}

	all, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(all) == 0 {
		return all, false, nil
	}

	s.cache.Set(ctx, s.keys.All, all, s.ttl)
	return all, false, nil
}

// Get returns one course, read-through cached under its per-id key. A
// malformed identifier fails before any cache or store round-trip.
func (s *Service) Get(ctx context.Context, id string) (Course, bool, error) {
	if !store.IsValidID(id) {
		return Course{}, false, store.ErrInvalidID
	}

	key := s.keys.ForID(id)

	var cached Course
	if s.cache.Get(ctx, key, &cached) {
		return cached, true, nil
	}

	course, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Course{}, false, err
	}

	s.cache.Set(ctx, key, course, s.ttl)
	return course, false, nil
}

// Update merges the partial field set over the current record, writes it,
// then refreshes the per-id entry and drops the aggregates before returning.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Course, error) {
	if !store.IsValidID(id) {
		return Course{}, store.ErrInvalidID
	}
	if err := in.Validate(); err != nil {
		return Course{}, err
	}

	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Course{}, err
	}

	updated, err := s.store.Update(ctx, id, in.apply(current))
	if err != nil {
		return Course{}, err
	}

	s.cache.Set(ctx, s.keys.ForID(id), updated, s.ttl)
	s.cache.Delete(ctx, s.keys.All)
	s.cache.Delete(ctx, s.keys.Stats)

	return updated, nil
}

// Delete confirms the course exists, removes it, and invalidates its per-id
// entry along with the aggregates.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !store.IsValidID(id) {
		return store.ErrInvalidID
	}

	if _, err := s.store.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(ctx, s.keys.ForID(id))
	s.cache.Delete(ctx, s.keys.All)
	s.cache.Delete(ctx, s.keys.Stats)

	return nil
}

// Stats returns the aggregate summary, read-through cached under the stats
// key. An empty collection yields store.ErrNotFound and is never cached.
func (s *Service) Stats(ctx context.Context) (Stats, bool, error) {
	var cached Stats
	if s.cache.Get(ctx, s.keys.Stats, &cached) {
		return cached, true, nil
	}

	all, err := s.store.FindAll(ctx)
	if err != nil {
		return Stats{}, false, err
	}
	if len(all) == 0 {
		return Stats{}, false, store.ErrNotFound
	}

	stats := Stats{TotalCourses: len(all)}
	s.cache.Set(ctx, s.keys.Stats, stats, s.ttl)
	return stats, false, nil
}
