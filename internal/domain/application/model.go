package application

import (
	"errors"
	"strings"
	"time"
)

// Application status constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Domain errors
var (
	ErrEmptyProgram   = errors.New("program cannot be empty")
	ErrAlreadyDecided = errors.New("application has already been reviewed")
)

// Application is an enrollment request a client files for one program.
// Reviewed applications keep who decided and when.
type Application struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	UserName   string     `json:"userName"`
	UserEmail  string     `json:"userEmail"`
	Program    string     `json:"program"`
	Message    string     `json:"message"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	ReviewedBy string     `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
}

// Validate checks if the Application has valid data.
// PRE: Application struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Application) Validate() error {
	if strings.TrimSpace(a.Program) == "" {
		return ErrEmptyProgram
	}
	return nil
}

// IsPending returns true if the application has not been reviewed yet.
// INVARIANT: Application fields are not mutated
func (a *Application) IsPending() bool {
	return a.Status == StatusPending
}

// Approve marks the application approved by the given reviewer.
// PRE: Application is pending
// POST: Status is approved, reviewer and time recorded
func (a *Application) Approve(reviewerID string, now time.Time) error {
	return a.decide(StatusApproved, reviewerID, now)
}

// Reject marks the application rejected by the given reviewer.
// PRE: Application is pending
// POST: Status is rejected, reviewer and time recorded
func (a *Application) Reject(reviewerID string, now time.Time) error {
	return a.decide(StatusRejected, reviewerID, now)
}

func (a *Application) decide(status, reviewerID string, now time.Time) error {
	if !a.IsPending() {
		return ErrAlreadyDecided
	}
	a.Status = status
	a.ReviewedBy = reviewerID
	a.ReviewedAt = &now
	return nil
}
