package activity

import "time"

// Well-known action tags. The field is free text; these are the tags the
// portal itself writes.
const (
	ActionLogin       = "login"
	ActionRoleChange  = "role_change"
	ActionUserCreated = "user_created"
)

// Entry is one append-only audit record. Entries are never mutated or
// deleted, even when the referenced user is removed.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntry creates an audit entry stamped with the given time.
// PRE: id, userID and action are non-empty
// POST: Returns an Entry with the provided fields
func NewEntry(id, userID, action, details string, now time.Time) Entry {
	return Entry{
		ID:        id,
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: now,
	}
}
