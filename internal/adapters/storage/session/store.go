package session

import (
	"context"
	"encoding/json"
	"fmt"

	"kinetic/internal/adapters/storage/kv"
	"kinetic/internal/domain/user"
)

// Persisted key layout. PointerKey holds a denormalized copy of the signed-in
// user; IDKey redundantly holds just the id for quick lookups. The two are
// always set and cleared together.
const (
	PointerKey = "current_user"
	IDKey      = "current_user_id"
)

// Store owns the persisted session pointer: the record identifying the
// currently authenticated identity. It stores a full denormalized User copy,
// not just an id, so profile edits made elsewhere are not reflected until the
// pointer is rewritten. Session Store is the only sanctioned writer of its
// keys.
type Store struct {
	kv kv.Store
}

// NewStore creates a session store over the given kv backend.
func NewStore(backend kv.Store) *Store {
	return &Store{kv: backend}
}

// Set persists u as the active session. The stored copy is sanitized: the
// password hash never reaches the pointer blob.
// POST: PointerKey and IDKey both reference u
func (s *Store) Set(ctx context.Context, u user.User) error {
	raw, err := json.Marshal(u.Sanitized())
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, PointerKey, string(raw)); err != nil {
		return err
	}
	return s.kv.Set(ctx, IDKey, u.ID)
}

// Current returns the persisted session pointer, if any. The pointer is
// adopted as-is, without revalidating against the record store: a stale copy
// of a since-edited or deleted user remains "logged in" until the next login.
// POST: found is false when no session is persisted
func (s *Store) Current(ctx context.Context) (user.User, bool, error) {
	raw, found, err := s.kv.Get(ctx, PointerKey)
	if err != nil || !found {
		return user.User{}, false, err
	}
	var u user.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return user.User{}, false, fmt.Errorf("corrupt session pointer: %w", err)
	}
	return u, true, nil
}

// Clear removes the session pointer. Idempotent; the aggregate is untouched.
// POST: PointerKey and IDKey are both absent
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, PointerKey); err != nil {
		return err
	}
	return s.kv.Delete(ctx, IDKey)
}
