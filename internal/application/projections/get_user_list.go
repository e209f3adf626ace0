package projections

import (
	"context"
	"strings"

	"kinetic/internal/domain/user"
)

// GetUserListQuery carries input for the user list projection.
type GetUserListQuery struct {
	Search string // case-insensitive substring over name and email
	Role   string // empty matches every role
}

// GetUserListDeps holds dependencies for the user list projection.
type GetUserListDeps struct {
	Records RecordReader
}

// GetUserList returns users matching the query, sanitized for display.
// POST: No returned record carries a password hash
func GetUserList(ctx context.Context, query GetUserListQuery, deps GetUserListDeps) ([]user.User, error) {
	agg, err := deps.Records.Load(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(query.Search)
	var results []user.User
	for _, u := range agg.Users {
		if query.Role != "" && u.Role != query.Role {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		results = append(results, u.Sanitized())
	}
	return results, nil
}
