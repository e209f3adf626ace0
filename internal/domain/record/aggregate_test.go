package record

import (
	"testing"

	"kinetic/internal/domain/activity"
	"kinetic/internal/domain/user"
)

func testAggregate() Aggregate {
	return Aggregate{
		Users: []user.User{
			{ID: "u1", Email: "one@example.com", Name: "One", Role: user.RoleClient},
			{ID: "u2", Email: "two@example.com", Name: "Two", Role: user.RoleAdmin},
			{ID: "u3", Email: "three@example.com", Name: "Three", Role: user.RoleClient},
		},
		UserActivities: []activity.Entry{
			{ID: "a1", UserID: "u1", Action: activity.ActionLogin},
		},
	}
}

func TestFindUserByEmail(t *testing.T) {
	agg := testAggregate()

	if u := agg.FindUserByEmail("one@example.com"); u == nil || u.ID != "u1" {
		t.Errorf("expected u1, got %v", u)
	}
	// Exact byte equality: case variants do not match.
	if u := agg.FindUserByEmail("One@example.com"); u != nil {
		t.Errorf("case variant matched: %v", u)
	}
	if u := agg.FindUserByEmail("missing@example.com"); u != nil {
		t.Errorf("missing email matched: %v", u)
	}
}

func TestFindUserByIDReturnsPointerIntoSlice(t *testing.T) {
	agg := testAggregate()
	u := agg.FindUserByID("u2")
	if u == nil {
		t.Fatal("expected u2")
	}
	u.Name = "Renamed"
	if agg.Users[1].Name != "Renamed" {
		t.Error("expected mutation through the returned pointer to stick")
	}
}

func TestEmailTaken(t *testing.T) {
	agg := testAggregate()

	if !agg.EmailTaken("one@example.com", "") {
		t.Error("expected taken")
	}
	// The holder itself is excluded, so a profile save keeping the same
	// email passes.
	if agg.EmailTaken("one@example.com", "u1") {
		t.Error("expected not taken when excluding the holder")
	}
	if agg.EmailTaken("free@example.com", "") {
		t.Error("expected free email to be available")
	}
}

func TestRemoveUser(t *testing.T) {
	agg := testAggregate()

	if !agg.RemoveUser("u1") {
		t.Fatal("expected removal to succeed")
	}
	if len(agg.Users) != 2 {
		t.Errorf("len(Users) = %d, want 2", len(agg.Users))
	}
	if agg.FindUserByID("u1") != nil {
		t.Error("u1 still present")
	}
	// The activity log is append-only; deletion never cascades.
	if len(agg.UserActivities) != 1 {
		t.Errorf("activity log was cascaded: %d entries", len(agg.UserActivities))
	}
	if agg.RemoveUser("u1") {
		t.Error("second removal reported success")
	}
}

func TestCountByRole(t *testing.T) {
	agg := testAggregate()
	if n := agg.CountByRole(user.RoleClient); n != 2 {
		t.Errorf("clients = %d, want 2", n)
	}
	if n := agg.CountByRole(user.RoleDirector); n != 0 {
		t.Errorf("directors = %d, want 0", n)
	}
}

func TestCloneIsolation(t *testing.T) {
	agg := testAggregate()
	clone := agg.Clone()

	clone.Users[0].Name = "Changed"
	clone.RemoveUser("u2")
	clone.UserActivities = append(clone.UserActivities, activity.Entry{ID: "a2"})

	if agg.Users[0].Name != "One" {
		t.Error("clone mutation leaked into original user slice")
	}
	if len(agg.Users) != 3 {
		t.Error("clone removal leaked into original")
	}
	if len(agg.UserActivities) != 1 {
		t.Error("clone append leaked into original")
	}
}
