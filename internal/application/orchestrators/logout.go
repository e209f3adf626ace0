package orchestrators

import (
	"context"
	"log/slog"
)

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Sessions SessionStore
}

// ExecuteLogout clears the session pointer. The aggregate is untouched.
// POST: No session is persisted; calling again is a no-op
func ExecuteLogout(ctx context.Context, deps LogoutDeps) error {
	if err := deps.Sessions.Clear(ctx); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "logout")
	return nil
}
