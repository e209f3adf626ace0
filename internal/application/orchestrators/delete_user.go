package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"kinetic/internal/domain/record"
)

// DeleteUserInput carries input for user deletion.
type DeleteUserInput struct {
	ActorID  string
	TargetID string
}

// DeleteUserDeps holds dependencies for DeleteUser.
type DeleteUserDeps struct {
	Records RecordStore
}

// ErrSelfDeletion rejects deleting your own account.
var ErrSelfDeletion = errors.New("you cannot delete your own account")

// ExecuteDeleteUser removes a non-director user. Deletion is irreversible;
// the target's historical activity entries are kept (the log is append-only
// and never cascaded).
// PRE: Actor and target are distinct
// POST: Target removed from Users; all other slices untouched
// INVARIANT: Director records are never deletable, self-deletion is rejected
func ExecuteDeleteUser(ctx context.Context, input DeleteUserInput, deps DeleteUserDeps) error {
	if input.ActorID == input.TargetID {
		return ErrSelfDeletion
	}

	err := deps.Records.Update(ctx, func(agg *record.Aggregate) error {
		target := agg.FindUserByID(input.TargetID)
		if target == nil {
			return ErrUserNotFound
		}
		if target.IsDirector() {
			return ErrDirectorProtected
		}
		agg.RemoveUser(input.TargetID)
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("auth_event", "event", "user_deleted", "target", input.TargetID, "actor", input.ActorID)
	return nil
}
