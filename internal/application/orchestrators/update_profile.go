package orchestrators

import (
	"context"
	"log/slog"

	"kinetic/internal/domain/record"
	"kinetic/internal/domain/user"
)

// UpdateProfileInput carries input for a profile save.
type UpdateProfileInput struct {
	UserID string
	Name   string
	Email  string
}

// UpdateProfileDeps holds dependencies for UpdateProfile.
type UpdateProfileDeps struct {
	Records  RecordStore
	Sessions SessionStore
}

// ExecuteUpdateProfile saves name and email edits for a user. When the
// edited user is the active session, the persisted session pointer is
// rewritten so the change is visible without a re-login.
// PRE: Name and email pass domain validation
// POST: Record updated; session pointer refreshed if it references UserID
// INVARIANT: Email must stay unique across live users
func ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput, deps UpdateProfileDeps) (user.User, error) {
	var updated user.User

	err := deps.Records.Update(ctx, func(agg *record.Aggregate) error {
		target := agg.FindUserByID(input.UserID)
		if target == nil {
			return ErrUserNotFound
		}
		if agg.EmailTaken(input.Email, input.UserID) {
			return ErrEmailTaken
		}

		candidate := *target
		candidate.Name = input.Name
		candidate.Email = input.Email
		if err := candidate.Validate(); err != nil {
			return err
		}

		*target = candidate
		updated = candidate
		return nil
	})
	if err != nil {
		return user.User{}, err
	}

	if current, ok, err := deps.Sessions.Current(ctx); err == nil && ok && current.ID == updated.ID {
		if err := deps.Sessions.Set(ctx, updated); err != nil {
			return user.User{}, err
		}
	}

	slog.Info("auth_event", "event", "profile_updated", "user", updated.ID)
	return updated.Sanitized(), nil
}
