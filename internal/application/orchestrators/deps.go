package orchestrators

import (
	"context"

	"kinetic/internal/domain/record"
	"kinetic/internal/domain/user"
)

// RecordStore is the aggregate access the orchestrators need. Update is the
// sanctioned mutation path: one serialized load→mutate→save per use case.
type RecordStore interface {
	Load(ctx context.Context) (record.Aggregate, error)
	Update(ctx context.Context, fn func(*record.Aggregate) error) error
}

// SessionStore is the persisted session pointer access the auth
// orchestrators need.
type SessionStore interface {
	Set(ctx context.Context, u user.User) error
	Current(ctx context.Context) (user.User, bool, error)
	Clear(ctx context.Context) error
}
