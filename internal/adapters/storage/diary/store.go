package diary

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"kinetic/internal/adapters/storage/kv"
	domain "kinetic/internal/domain/diary"
)

// Persisted key layout. Diary entries and lesson plans live under their own
// keys, independent of the main aggregate blob.
const (
	EntriesKey = "trainer_diary_entries"
	PlansKey   = "trainer_lesson_plans"
)

// Store persists the trainer diary: session notes and lesson plans, each as
// its own JSON array in the kv backend.
type Store struct {
	kv kv.Store
	mu sync.Mutex
}

// NewStore creates a diary store over the given kv backend.
func NewStore(backend kv.Store) *Store {
	return &Store{kv: backend}
}

// Entries returns all diary entries, oldest first.
func (s *Store) Entries(ctx context.Context) ([]domain.Entry, error) {
	var entries []domain.Entry
	if err := s.load(ctx, EntriesKey, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddEntry appends one diary entry.
// PRE: entry has been validated
// POST: entry is persisted after all existing entries
func (s *Store) AddEntry(ctx context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []domain.Entry
	if err := s.load(ctx, EntriesKey, &entries); err != nil {
		return err
	}
	entries = append(entries, entry)
	return s.save(ctx, EntriesKey, entries)
}

// DeleteEntry removes the entry with the given id, if present.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []domain.Entry
	if err := s.load(ctx, EntriesKey, &entries); err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			return s.save(ctx, EntriesKey, entries)
		}
	}
	return nil
}

// Plans returns all lesson plans, oldest first.
func (s *Store) Plans(ctx context.Context) ([]domain.LessonPlan, error) {
	var plans []domain.LessonPlan
	if err := s.load(ctx, PlansKey, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// AddPlan appends one lesson plan.
// PRE: plan has been validated
// POST: plan is persisted after all existing plans
func (s *Store) AddPlan(ctx context.Context, plan domain.LessonPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var plans []domain.LessonPlan
	if err := s.load(ctx, PlansKey, &plans); err != nil {
		return err
	}
	plans = append(plans, plan)
	return s.save(ctx, PlansKey, plans)
}

// DeletePlan removes the plan with the given id, if present.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var plans []domain.LessonPlan
	if err := s.load(ctx, PlansKey, &plans); err != nil {
		return err
	}
	for i := range plans {
		if plans[i].ID == id {
			plans = append(plans[:i], plans[i+1:]...)
			return s.save(ctx, PlansKey, plans)
		}
	}
	return nil
}

func (s *Store) load(ctx context.Context, key string, dest any) error {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil || !found {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("corrupt diary data under %s: %w", key, err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(raw))
}
