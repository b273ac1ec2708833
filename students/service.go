package students

import (
	"context"
	"math"
	"time"

	"github.com/goliatone/go-campus-api/cache"
	"github.com/goliatone/go-campus-api/store"
)

// Service orchestrates the store and cache gateways for students, owning the
// student key scheme and invalidation rules.
type Service struct {
	store store.Store[Student]
	cache cache.Store
	keys  cache.Keys
	ttl   time.Duration
}

// NewService wires a student service. cache.StudentKeys() and
// cache.DefaultTTL are the usual arguments outside of tests.
func NewService(st store.Store[Student], cs cache.Store, keys cache.Keys, ttl time.Duration) *Service {
	return &Service{store: st, cache: cs, keys: keys, ttl: ttl}
}

// Create validates the input, inserts the student and invalidates the
// aggregate keys.
func (s *Service) Create(ctx context.Context, in CreateInput) (Student, error) {
	if err := in.Validate(); err != nil {
		return Student{}, err
	}

	created, err := s.store.Create(ctx, Student{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		DateOfBirth: in.DateOfBirth,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return Student{}, err
	}

	s.cache.Delete(ctx, s.keys.All)
	s.cache.Delete(ctx, s.keys.Stats)

	return created, nil
}

// List returns every student, read-through cached under the all-students
// key. The bool reports whether the cache served the result; an empty
// collection is never cached.
func (s *Service) List(ctx context.Context) ([]Student, bool, error) {
	var cached []Student
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

// Get returns one student, read-through cached under its per-id key.
func (s *Service) Get(ctx context.Context, id string) (Student, bool, error) {
	if !store.IsValidID(id) {
		return Student{}, false, store.ErrInvalidID
	}

	key := s.keys.ForID(id)

	var cached Student
	if s.cache.Get(ctx, key, &cached) {
		return cached, true, nil
	}

	student, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Student{}, false, err
	}

	s.cache.Set(ctx, key, student, s.ttl)
	return student, false, nil
}

// Update merges the partial field set over the current record, writes it,
// then refreshes the per-id entry and drops the aggregates.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Student, error) {
	if !store.IsValidID(id) {
		return Student{}, store.ErrInvalidID
	}
	if err := in.Validate(); err != nil {
		return Student{}, err
	}

	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Student{}, err
	}

	updated, err := s.store.Update(ctx, id, in.apply(current))
	if err != nil {
		return Student{}, err
	}

	s.cache.Set(ctx, s.keys.ForID(id), updated, s.ttl)
	s.cache.Delete(ctx, s.keys.All)
	s.cache.Delete(ctx, s.keys.Stats)

	return updated, nil
}

// Delete confirms the student exists, removes it, and invalidates its per-id
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

	currentYear := time.Now().Year()
	total := 0
	for _, student := range all {
		total += currentYear - student.DateOfBirth.Year()
	}

	stats := Stats{
		StudentCount: len(all),
		AverageAge:   int(math.Round(float64(total) / float64(len(all)))),
	}
	s.cache.Set(ctx, s.keys.Stats, stats, s.ttl)
	return stats, false, nil
}
