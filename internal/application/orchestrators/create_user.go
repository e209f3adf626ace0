package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kinetic/internal/domain/activity"
	"kinetic/internal/domain/record"
	"kinetic/internal/domain/user"
)

// CreateUserInput carries input for director-issued account creation.
type CreateUserInput struct {
	ActorID  string // the director performing the action
	Email    string
	Password string
	Name     string
	Role     string
}

// CreateUserDeps holds dependencies for CreateUser.
type CreateUserDeps struct {
	Records RecordStore
}

// ExecuteCreateUser lets a director create an account with an assigned role.
// Unlike registration, the new user does not become the active session.
// PRE: Role is a valid, assignable role value (director is not)
// POST: User appended; one "user_created" activity entry for the actor
// INVARIANT: Email must be unique across live users
func ExecuteCreateUser(ctx context.Context, input CreateUserInput, deps CreateUserDeps) (user.User, error) {
	if input.Role == user.RoleDirector {
		return user.User{}, ErrDirectorNotAssignable
	}
	newUser := user.User{
		ID:           "user-" + uuid.New().String(),
		Email:        input.Email,
		Name:         input.Name,
		Role:         input.Role,
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
		IsActive:     true,
	}
	if err := newUser.Validate(); err != nil {
		return user.User{}, err
	}
	if err := newUser.SetPassword(input.Password); err != nil {
		return user.User{}, err
	}

	err := deps.Records.Update(ctx, func(agg *record.Aggregate) error {
		if agg.EmailTaken(input.Email, "") {
			return ErrEmailTaken
		}
		agg.Users = append(agg.Users, newUser)
		agg.UserActivities = append(agg.UserActivities, activity.NewEntry(
			uuid.New().String(),
			input.ActorID,
			activity.ActionUserCreated,
			fmt.Sprintf("Created account %s (%s)", newUser.Email, newUser.Role),
			time.Now(),
		))
		return nil
	})
	if err != nil {
		return user.User{}, err
	}

	slog.Info("auth_event", "event", "user_created", "email", newUser.Email, "role", newUser.Role, "actor", input.ActorID)
	return newUser.Sanitized(), nil
}
