package purchase

import (
	"errors"
	"time"
)

// Purchase status constants
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Domain errors
var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrNotPending    = errors.New("purchase is not pending")
)

// Purchase records one program payment by a user.
type Purchase struct {
	ID      string    `json:"id"`
	UserID  string    `json:"userId"`
	Program string    `json:"program"`
	Amount  int       `json:"amount"`
	Date    time.Time `json:"date"`
	Status  string    `json:"status"`
}

// Validate checks if the Purchase has valid data.
// PRE: Purchase struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Purchase) Validate() error {
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Complete transitions a pending purchase to completed.
// PRE: Purchase is pending
// POST: Status is completed
func (p *Purchase) Complete() error {
	if p.Status != StatusPending {
		return ErrNotPending
	}
	p.Status = StatusCompleted
	return nil
}

// Cancel transitions a pending purchase to cancelled.
// PRE: Purchase is pending
// POST: Status is cancelled
func (p *Purchase) Cancel() error {
	if p.Status != StatusPending {
		return ErrNotPending
	}
	p.Status = StatusCancelled
	return nil
}
