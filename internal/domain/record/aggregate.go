package record

import (
	"kinetic/internal/domain/activity"
	"kinetic/internal/domain/application"
	"kinetic/internal/domain/chat"
	"kinetic/internal/domain/purchase"
	"kinetic/internal/domain/user"
)

// Aggregate is the single durable collection of all portal records. It is
// persisted whole: any writer that mutates one slice must round-trip the
// others unchanged or data is silently lost.
type Aggregate struct {
	Users          []user.User               `json:"users"`
	ChatMessages   []chat.Message            `json:"chatMessages"`
	Purchases      []purchase.Purchase       `json:"purchases"`
	Applications   []application.Application `json:"applications"`
	UserActivities []activity.Entry          `json:"userActivities"`

	// Version is the optimistic-concurrency stamp assigned by the store at
	// load time. It never appears in the persisted blob.
	Version uint64 `json:"-"`
}

// FindUserByID returns a pointer into Users for the given id.
// INVARIANT: Aggregate slices are not reordered
func (a *Aggregate) FindUserByID(id string) *user.User {
	for i := range a.Users {
		if a.Users[i].ID == id {
			return &a.Users[i]
		}
	}
	return nil
}

// FindUserByEmail returns a pointer into Users for the given email.
// Comparison is exact byte equality.
func (a *Aggregate) FindUserByEmail(email string) *user.User {
	for i := range a.Users {
		if a.Users[i].Email == email {
			return &a.Users[i]
		}
	}
	return nil
}

// EmailTaken reports whether any live user other than excludeID holds email.
func (a *Aggregate) EmailTaken(email, excludeID string) bool {
	for i := range a.Users {
		if a.Users[i].Email == email && a.Users[i].ID != excludeID {
			return true
		}
	}
	return false
}

// RemoveUser deletes the user with the given id from Users. Historical
// activity entries are kept: the log is append-only and never cascaded.
// POST: Returns true if a user was removed
func (a *Aggregate) RemoveUser(id string) bool {
	for i := range a.Users {
		if a.Users[i].ID == id {
			a.Users = append(a.Users[:i], a.Users[i+1:]...)
			return true
		}
	}
	return false
}

// CountByRole returns the number of users holding role.
func (a *Aggregate) CountByRole(role string) int {
	n := 0
	for i := range a.Users {
		if a.Users[i].Role == role {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the aggregate. Mutating the copy never
// touches the original's slices.
func (a Aggregate) Clone() Aggregate {
	c := a
	c.Users = append([]user.User(nil), a.Users...)
	c.ChatMessages = append([]chat.Message(nil), a.ChatMessages...)
	c.Purchases = append([]purchase.Purchase(nil), a.Purchases...)
	c.Applications = append([]application.Application(nil), a.Applications...)
	c.UserActivities = append([]activity.Entry(nil), a.UserActivities...)
	return c
}
