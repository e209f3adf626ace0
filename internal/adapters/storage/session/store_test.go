package session

import (
	"context"
	"strings"
	"testing"

	"kinetic/internal/adapters/storage/kv"
	"kinetic/internal/domain/user"
)

func testUser() user.User {
	u := user.User{
		ID:    "user-1",
		Email: "parent@example.com",
		Name:  "Sam Parent",
		Role:  user.RoleClient,
	}
	_ = u.SetPassword("secret123")
	return u
}

func TestSetAndCurrent(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()
	store := NewStore(backend)

	if err := store.Set(ctx, testUser()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	current, found, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if !found {
		t.Fatal("expected a session")
	}
	if current.ID != "user-1" || current.Email != "parent@example.com" {
		t.Errorf("pointer holds wrong user: %+v", current)
	}

	// Both keys are written, and the pointer blob is sanitized.
	raw, found, err := backend.Get(ctx, PointerKey)
	if err != nil || !found {
		t.Fatalf("pointer key missing: found=%v err=%v", found, err)
	}
	if strings.Contains(raw, "$2a$") {
		t.Error("password hash leaked into the session pointer")
	}
	id, found, err := backend.Get(ctx, IDKey)
	if err != nil || !found {
		t.Fatalf("id key missing: found=%v err=%v", found, err)
	}
	if id != "user-1" {
		t.Errorf("id key = %q, want user-1", id)
	}
}

func TestCurrentWithoutSession(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore())

	_, found, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if found {
		t.Error("expected no session")
	}
}

// The pointer is denormalized: an edit to the underlying record does not
// show up until Set is called again.
func TestCurrentIsDenormalized(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore())

	u := testUser()
	if err := store.Set(ctx, u); err != nil {
		t.Fatalf("Set: %v", err)
	}

	u.Name = "Renamed Elsewhere"

	current, _, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current.Name != "Sam Parent" {
		t.Errorf("pointer picked up an external edit: %q", current.Name)
	}

	if err := store.Set(ctx, u); err != nil {
		t.Fatalf("second Set: %v", err)
	}
	current, _, err = store.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current.Name != "Renamed Elsewhere" {
		t.Errorf("rewritten pointer = %q", current.Name)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()
	store := NewStore(backend)

	if err := store.Set(ctx, testUser()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, found, _ := backend.Get(ctx, PointerKey); found {
		t.Error("pointer key still present after Clear")
	}
	if _, found, _ := backend.Get(ctx, IDKey); found {
		t.Error("id key still present after Clear")
	}

	// Clearing an absent session is not an error.
	if err := store.Clear(ctx); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}
