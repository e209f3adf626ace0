package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kinetic/internal/domain/activity"
	"kinetic/internal/domain/record"
	"kinetic/internal/domain/user"
)

// AssignRoleInput carries input for a role change.
type AssignRoleInput struct {
	ActorID  string
	TargetID string
	Role     string
}

// AssignRoleDeps holds dependencies for AssignRole.
type AssignRoleDeps struct {
	Records RecordStore
}

// Role-change errors
var (
	ErrUserNotFound = errors.New("user not found")
	// ErrDirectorProtected guards director records: they can never be demoted
	// or deleted, by anyone.
	ErrDirectorProtected = errors.New("director accounts cannot be changed or removed")
	// ErrDirectorNotAssignable keeps the director role a seeded singleton: no
	// operation may grant it.
	ErrDirectorNotAssignable = errors.New("director role cannot be assigned")
)

// ExecuteAssignRole changes a user's role. Client, admin and trainer are
// assignable; the director role is not.
// PRE: Role is a valid, assignable role value
// POST: Target's role updated; one "role_change" activity entry appended
// INVARIANT: A director's role is never changed, and no user is ever promoted
// to director
func ExecuteAssignRole(ctx context.Context, input AssignRoleInput, deps AssignRoleDeps) error {
	if !user.IsValidRole(input.Role) {
		return user.ErrInvalidRole
	}
	if input.Role == user.RoleDirector {
		return ErrDirectorNotAssignable
	}

	err := deps.Records.Update(ctx, func(agg *record.Aggregate) error {
		target := agg.FindUserByID(input.TargetID)
		if target == nil {
			return ErrUserNotFound
		}
		if target.IsDirector() {
			return ErrDirectorProtected
		}
		if target.Role == input.Role {
			return nil
		}

		old := target.Role
		target.Role = input.Role
		agg.UserActivities = append(agg.UserActivities, activity.NewEntry(
			uuid.New().String(),
			input.ActorID,
			activity.ActionRoleChange,
			fmt.Sprintf("Changed role of %s: %s -> %s", target.Email, old, input.Role),
			time.Now(),
		))
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("auth_event", "event", "role_assigned", "target", input.TargetID, "role", input.Role, "actor", input.ActorID)
	return nil
}
