package projections

import (
	"context"

	"kinetic/internal/domain/record"
)

// RecordReader is the read-only aggregate access every projection needs.
// Projections never write.
type RecordReader interface {
	Load(ctx context.Context) (record.Aggregate, error)
}
