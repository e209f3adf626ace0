package orchestrators

import (
	"context"
	"testing"

	"kinetic/internal/adapters/storage/kv"
	recordStore "kinetic/internal/adapters/storage/record"
	sessionStore "kinetic/internal/adapters/storage/session"
	"kinetic/internal/domain/record"
	"kinetic/internal/domain/user"
)

// testEnv wires real stores over an in-memory backend. The seed director is
// created on first aggregate load, exactly as in production.
type testEnv struct {
	records  *recordStore.Store
	sessions *sessionStore.Store
}

const (
	seedDirectorID    = "director-1"
	seedDirectorEmail = "director@test.local"
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := kv.NewMemoryStore()
	return &testEnv{
		records: recordStore.NewStore(backend, recordStore.SeedConfig{
			DirectorID:       seedDirectorID,
			DirectorEmail:    seedDirectorEmail,
			DirectorPassword: "director-pass",
			DirectorName:     "Test Director",
		}),
		sessions: sessionStore.NewStore(backend),
	}
}

// addUser inserts a user with a hashed password straight into the aggregate.
func (e *testEnv) addUser(t *testing.T, id, email, name, role, password string) {
	t.Helper()
	u := user.User{ID: id, Email: email, Name: name, Role: role, IsActive: true}
	if err := u.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	err := e.records.Update(context.Background(), func(agg *record.Aggregate) error {
		agg.Users = append(agg.Users, u)
		return nil
	})
	if err != nil {
		t.Fatalf("addUser: %v", err)
	}
}

func (e *testEnv) aggregate(t *testing.T) *record.Aggregate {
	t.Helper()
	agg, err := e.records.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return &agg
}

// countActivities returns how many activity entries carry the given action.
func countActivities(agg *record.Aggregate, action string) int {
	n := 0
	for _, entry := range agg.UserActivities {
		if entry.Action == action {
			n++
		}
	}
	return n
}
