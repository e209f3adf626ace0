package orchestrators

import (
	"context"
	"errors"
	"testing"

	"kinetic/internal/domain/activity"
	"kinetic/internal/domain/user"
)

// --- ExecuteCreateUser tests ---

func TestExecuteCreateUser_AssignableRoles(t *testing.T) {
	for _, role := range []string{user.RoleClient, user.RoleAdmin, user.RoleTrainer} {
		t.Run(role, func(t *testing.T) {
			env := newTestEnv(t)
			result, err := ExecuteCreateUser(context.Background(), CreateUserInput{
				ActorID:  seedDirectorID,
				Email:    "staff@example.com",
				Password: "secret123",
				Name:     "New Staff",
				Role:     role,
			}, CreateUserDeps{Records: env.records})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Role != role {
				t.Errorf("role = %s, want %s", result.Role, role)
			}
		})
	}
}

func TestExecuteCreateUser_DirectorRoleRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := ExecuteCreateUser(context.Background(), CreateUserInput{
		ActorID:  seedDirectorID,
		Email:    "second-director@example.com",
		Password: "secret123",
		Name:     "Second Director",
		Role:     user.RoleDirector,
	}, CreateUserDeps{Records: env.records})
	if !errors.Is(err, ErrDirectorNotAssignable) {
		t.Fatalf("got %v, want %v", err, ErrDirectorNotAssignable)
	}
	if got := env.aggregate(t).CountByRole(user.RoleDirector); got != 1 {
		t.Errorf("director count = %d, want the seeded one only", got)
	}
}

func TestExecuteCreateUser_WritesActivityNotSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := ExecuteCreateUser(context.Background(), CreateUserInput{
		ActorID:  seedDirectorID,
		Email:    "trainer@example.com",
		Password: "secret123",
		Name:     "New Trainer",
		Role:     user.RoleTrainer,
	}, CreateUserDeps{Records: env.records})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	agg := env.aggregate(t)
	if n := countActivities(agg, activity.ActionUserCreated); n != 1 {
		t.Errorf("user_created entries = %d, want 1", n)
	}
	// The entry is attributed to the acting director, not the new account.
	for _, e := range agg.UserActivities {
		if e.Action == activity.ActionUserCreated && e.UserID != seedDirectorID {
			t.Errorf("entry attributed to %s, want %s", e.UserID, seedDirectorID)
		}
	}

	// Unlike registration, the new account does not become the session.
	if _, ok, _ := env.sessions.Current(context.Background()); ok {
		t.Error("director-issued creation set the session pointer")
	}
}

func TestExecuteCreateUser_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := ExecuteCreateUser(context.Background(), CreateUserInput{
		ActorID:  seedDirectorID,
		Email:    seedDirectorEmail,
		Password: "secret123",
		Name:     "Clone",
		Role:     user.RoleAdmin,
	}, CreateUserDeps{Records: env.records})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("got %v, want %v", err, ErrEmailTaken)
	}
}

// --- ExecuteAssignRole tests ---

func TestExecuteAssignRole_Success(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user-1", "member@example.com", "Member", user.RoleClient, "secret123")

	err := ExecuteAssignRole(context.Background(), AssignRoleInput{
		ActorID:  seedDirectorID,
		TargetID: "user-1",
		Role:     user.RoleTrainer,
	}, AssignRoleDeps{Records: env.records})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	agg := env.aggregate(t)
	if got := agg.FindUserByID("user-1").Role; got != user.RoleTrainer {
		t.Errorf("role = %s, want trainer", got)
	}
	if n := countActivities(agg, activity.ActionRoleChange); n != 1 {
		t.Errorf("role_change entries = %d, want 1", n)
	}
}

func TestExecuteAssignRole_SameRoleIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user-1", "member@example.com", "Member", user.RoleClient, "secret123")

	err := ExecuteAssignRole(context.Background(), AssignRoleInput{
		ActorID:  seedDirectorID,
		TargetID: "user-1",
		Role:     user.RoleClient,
	}, AssignRoleDeps{Records: env.records})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := countActivities(env.aggregate(t), activity.ActionRoleChange); n != 0 {
		t.Errorf("no-op wrote %d role_change entries", n)
	}
}

func TestExecuteAssignRole_Rejections(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user-1", "member@example.com", "Member", user.RoleClient, "secret123")

	tests := []struct {
		name    string
		input   AssignRoleInput
		wantErr error
	}{
		{"invalid role", AssignRoleInput{ActorID: seedDirectorID, TargetID: "user-1", Role: "root"}, user.ErrInvalidRole},
		{"unknown target", AssignRoleInput{ActorID: seedDirectorID, TargetID: "ghost", Role: user.RoleAdmin}, ErrUserNotFound},
		{"director protected", AssignRoleInput{ActorID: seedDirectorID, TargetID: seedDirectorID, Role: user.RoleClient}, ErrDirectorProtected},
		{"director not grantable", AssignRoleInput{ActorID: seedDirectorID, TargetID: "user-1", Role: user.RoleDirector}, ErrDirectorNotAssignable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExecuteAssignRole(context.Background(), tt.input, AssignRoleDeps{Records: env.records})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExecuteAssignRole_PromotionToDirectorLeavesTargetUntouched(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user-1", "member@example.com", "Member", user.RoleClient, "secret123")

	err := ExecuteAssignRole(context.Background(), AssignRoleInput{
		ActorID:  seedDirectorID,
		TargetID: "user-1",
		Role:     user.RoleDirector,
	}, AssignRoleDeps{Records: env.records})
	if !errors.Is(err, ErrDirectorNotAssignable) {
		t.Fatalf("got %v, want %v", err, ErrDirectorNotAssignable)
	}

	agg := env.aggregate(t)
	if got := agg.FindUserByID("user-1").Role; got != user.RoleClient {
		t.Errorf("role = %s, want client", got)
	}
	if n := countActivities(agg, activity.ActionRoleChange); n != 0 {
		t.Errorf("refused promotion wrote %d role_change entries", n)
	}
	// The target remains demotable and deletable.
	if err := ExecuteAssignRole(context.Background(), AssignRoleInput{
		ActorID: seedDirectorID, TargetID: "user-1", Role: user.RoleAdmin,
	}, AssignRoleDeps{Records: env.records}); err != nil {
		t.Fatalf("follow-up role change: %v", err)
	}
}

// --- ExecuteDeleteUser tests ---

func TestExecuteDeleteUser_Success(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user-1", "member@example.com", "Member", user.RoleClient, "secret123")

	// Give the target some history first.
	if _, err := ExecuteLogin(context.Background(), LoginInput{
		Email: "member@example.com", Password: "secret123",
	}, LoginDeps{Records: env.records, Sessions: env.sessions}); err != nil {
		t.Fatalf("login: %v", err)
	}

	err := ExecuteDeleteUser(context.Background(), DeleteUserInput{
		ActorID:  seedDirectorID,
		TargetID: "user-1",
	}, DeleteUserDeps{Records: env.records})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	agg := env.aggregate(t)
	if agg.FindUserByID("user-1") != nil {
		t.Error("target still present")
	}
	// The activity log is never cascaded.
	if n := countActivities(agg, activity.ActionLogin); n != 1 {
		t.Errorf("login entries after delete = %d, want 1", n)
	}

	// Logging in as a deleted user fails.
	_, err = ExecuteLogin(context.Background(), LoginInput{
		Email: "member@example.com", Password: "secret123",
	}, LoginDeps{Records: env.records, Sessions: env.sessions})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("login after delete: got %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestExecuteDeleteUser_Rejections(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user-1", "member@example.com", "Member", user.RoleClient, "secret123")

	tests := []struct {
		name    string
		input   DeleteUserInput
		wantErr error
	}{
		{"self deletion", DeleteUserInput{ActorID: "user-1", TargetID: "user-1"}, ErrSelfDeletion},
		{"director protected", DeleteUserInput{ActorID: "user-1", TargetID: seedDirectorID}, ErrDirectorProtected},
		{"unknown target", DeleteUserInput{ActorID: seedDirectorID, TargetID: "ghost"}, ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExecuteDeleteUser(context.Background(), tt.input, DeleteUserDeps{Records: env.records})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}

	// The rejected deletes changed nothing.
	if len(env.aggregate(t).Users) != 2 {
		t.Error("rejected delete mutated the aggregate")
	}
}
