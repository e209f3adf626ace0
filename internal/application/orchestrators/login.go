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

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Records  RecordStore
	Sessions SessionStore
}

// ErrInvalidCredentials covers both "no such email" and "wrong password":
// callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ExecuteLogin authenticates a user and establishes the session.
// PRE: none — empty fields simply fail the lookup
// POST: On success lastActivity is updated and exactly one "login" activity
// entry is appended, both in the same aggregate write; the session pointer
// holds a denormalized copy of the updated record
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (user.User, error) {
	var matched user.User

	err := deps.Records.Update(ctx, func(agg *record.Aggregate) error {
		u := agg.FindUserByEmail(input.Email)
		if u == nil {
			slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
			return ErrInvalidCredentials
		}
		if err := u.CheckPassword(input.Password); err != nil {
			slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password")
			return ErrInvalidCredentials
		}

		u.Touch(time.Now())
		agg.UserActivities = append(agg.UserActivities, activity.NewEntry(
			uuid.New().String(),
			u.ID,
			activity.ActionLogin,
			fmt.Sprintf("Signed in: %s", input.Email),
			time.Now(),
		))
		matched = *u
		return nil
	})
	if err != nil {
		return user.User{}, err
	}

	if err := deps.Sessions.Set(ctx, matched); err != nil {
		return user.User{}, err
	}

	slog.Info("auth_event", "event", "login_success", "email", matched.Email, "role", matched.Role)
	return matched.Sanitized(), nil
}
