package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kinetic/internal/adapters/email"
	"kinetic/internal/domain/record"
	"kinetic/internal/domain/user"
)

// RegisterInput carries input for the registration orchestrator.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Age      int // optional; zero means not given
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	Records  RecordStore
	Sessions SessionStore
	Email    email.Sender // optional; nil skips the welcome email
	From     string
}

// ErrEmailTaken rejects a registration whose email collides with a live
// record. Comparison is exact byte equality.
var ErrEmailTaken = errors.New("an account with this email already exists")

// ExecuteRegister creates a client account and establishes the session.
// Registration does not write an activity entry; only logins do.
// PRE: Valid email, name >= 2 chars, password >= 6 chars, age 0 or in [3,99]
// POST: New user with role client appended; session pointer set
// INVARIANT: Email must be unique across live users
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (user.User, error) {
	newUser := user.User{
		ID:           "user-" + uuid.New().String(),
		Email:        input.Email,
		Name:         input.Name,
		Role:         user.RoleClient,
		Age:          input.Age,
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
		return nil
	})
	if err != nil {
		return user.User{}, err
	}

	if err := deps.Sessions.Set(ctx, newUser); err != nil {
		return user.User{}, err
	}

	slog.Info("auth_event", "event", "registered", "email", newUser.Email)

	if deps.Email != nil {
		_, err := deps.Email.Send(ctx, email.SendRequest{
			To:      []string{newUser.Email},
			From:    deps.From,
			Subject: "Welcome to Kinetic Kids",
			HTML: fmt.Sprintf("<p>Hi %s!</p><p>Your Kinetic Kids account is ready. "+
				"Sign in and leave an application for your first free class.</p>",
				html.EscapeString(newUser.Name)),
		})
		if err != nil {
			// Registration already succeeded; the welcome mail is best-effort.
			slog.Error("email_event", "event", "welcome_failed", "email", newUser.Email, "error", err.Error())
		}
	}

	return newUser.Sanitized(), nil
}
