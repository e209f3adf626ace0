package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"kinetic/internal/adapters/storage/kv"
	"kinetic/internal/domain/activity"
	"kinetic/internal/domain/application"
	"kinetic/internal/domain/chat"
	"kinetic/internal/domain/purchase"
	"kinetic/internal/domain/record"
	"kinetic/internal/domain/user"
)

// AggregateKey is the kv key holding the serialized aggregate.
const AggregateKey = "kinetic_app_data"

// Store errors
var (
	// ErrStaleAggregate rejects a save whose base version is no longer
	// current: another writer saved since the caller's load.
	ErrStaleAggregate = errors.New("aggregate was modified since it was loaded")
	// ErrCorruptData wraps a parse failure of the persisted blob. There is no
	// schema versioning or migration; the operation fails hard.
	ErrCorruptData = errors.New("persisted aggregate is corrupt")
)

// SeedConfig describes the bootstrap director account created on first run.
// All other accounts originate from registration or director-issued creation.
type SeedConfig struct {
	DirectorID       string
	DirectorEmail    string
	DirectorPassword string
	DirectorName     string
}

// DefaultSeed returns the development seed credentials.
func DefaultSeed() SeedConfig {
	return SeedConfig{
		DirectorID:       "director-1",
		DirectorEmail:    "director@kinetickids.school",
		DirectorPassword: "kinetic-director",
		DirectorName:     "School Director",
	}
}

// Store owns the persisted aggregate. It is the only sanctioned writer of
// AggregateKey; all reads and mutations go through Load, Save and Update.
//
// Save is whole-object with a version stamp: the original design's
// last-write-wins blob is kept at the persistence layer, but concurrent
// read-modify-write sequences are detected instead of silently losing one
// writer's update.
type Store struct {
	kv   kv.Store
	seed SeedConfig

	mu      sync.Mutex
	version uint64
	seeded  bool
}

// NewStore creates a record store over the given kv backend.
func NewStore(backend kv.Store, seed SeedConfig) *Store {
	return &Store{kv: backend, seed: seed}
}

// Load returns the current aggregate. On first run the seed state (exactly
// one director user) is created and persisted immediately; subsequent loads
// read the stored blob.
// POST: Returned aggregate carries the store's current version stamp
func (s *Store) Load(ctx context.Context) (record.Aggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Save overwrites the entire persisted aggregate. Callers must pass an
// aggregate obtained from Load (or Update) with its version stamp intact.
// POST: Blob replaced and version advanced, or ErrStaleAggregate
func (s *Store) Save(ctx context.Context, agg record.Aggregate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, agg)
}

// Update runs fn over the current aggregate and persists the result as one
// write. The whole load→mutate→save sequence is serialized, so independent
// writers cannot clobber each other. This is the sanctioned mutation path.
// INVARIANT: fn mutates only the slices it owns; the rest round-trip intact
func (s *Store) Update(ctx context.Context, fn func(*record.Aggregate) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	if err := fn(&agg); err != nil {
		return err
	}
	return s.saveLocked(ctx, agg)
}

func (s *Store) loadLocked(ctx context.Context) (record.Aggregate, error) {
	raw, found, err := s.kv.Get(ctx, AggregateKey)
	if err != nil {
		return record.Aggregate{}, err
	}

	if !found {
		agg, err := s.seedAggregate()
		if err != nil {
			return record.Aggregate{}, err
		}
		if err := s.persistLocked(ctx, agg); err != nil {
			return record.Aggregate{}, err
		}
		s.seeded = true
		slog.Info("record_event", "event", "seeded", "director_email", s.seed.DirectorEmail)
		agg.Version = s.version
		return agg.Clone(), nil
	}

	var agg record.Aggregate
	if err := json.Unmarshal([]byte(raw), &agg); err != nil {
		return record.Aggregate{}, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	agg.Version = s.version
	return agg, nil
}

func (s *Store) saveLocked(ctx context.Context, agg record.Aggregate) error {
	if agg.Version != s.version {
		return ErrStaleAggregate
	}
	if err := s.persistLocked(ctx, agg); err != nil {
		return err
	}
	s.version++
	return nil
}

func (s *Store) persistLocked(ctx context.Context, agg record.Aggregate) error {
	raw, err := json.Marshal(agg)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, AggregateKey, string(raw))
}

// seedAggregate builds the first-run state: one director and empty
// collections. Seeding happens at most once per store; the blob is persisted
// before Load returns.
func (s *Store) seedAggregate() (record.Aggregate, error) {
	if s.seeded {
		return record.Aggregate{}, errors.New("aggregate blob disappeared after seeding")
	}

	now := time.Now()
	director := user.User{
		ID:           s.seed.DirectorID,
		Email:        s.seed.DirectorEmail,
		Name:         s.seed.DirectorName,
		Role:         user.RoleDirector,
		CreatedAt:    now,
		LastActivity: now,
		IsActive:     true,
	}
	if err := director.SetPassword(s.seed.DirectorPassword); err != nil {
		return record.Aggregate{}, fmt.Errorf("seed director password: %w", err)
	}

	// Slices start empty, not nil, so the persisted blob holds arrays.
	return record.Aggregate{
		Users:          []user.User{director},
		ChatMessages:   []chat.Message{},
		Purchases:      []purchase.Purchase{},
		Applications:   []application.Application{},
		UserActivities: []activity.Entry{},
	}, nil
}
