package application

import (
	"errors"
	"testing"
	"time"
)

var reviewTime = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

func pendingApplication() Application {
	return Application{
		ID:      "app-1",
		UserID:  "user-1",
		Program: "Skateboarding",
		Status:  StatusPending,
	}
}

func TestValidate(t *testing.T) {
	a := pendingApplication()
	if err := a.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	a.Program = "  "
	if err := a.Validate(); !errors.Is(err, ErrEmptyProgram) {
		t.Errorf("blank program: got %v, want %v", err, ErrEmptyProgram)
	}
}

func TestApprove(t *testing.T) {
	a := pendingApplication()
	if err := a.Approve("admin-1", reviewTime); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusApproved {
		t.Errorf("Status = %s, want %s", a.Status, StatusApproved)
	}
	if a.ReviewedBy != "admin-1" {
		t.Errorf("ReviewedBy = %s, want admin-1", a.ReviewedBy)
	}
	if a.ReviewedAt == nil || !a.ReviewedAt.Equal(reviewTime) {
		t.Errorf("ReviewedAt = %v, want %v", a.ReviewedAt, reviewTime)
	}
	if a.IsPending() {
		t.Error("approved application still pending")
	}
}

func TestReject(t *testing.T) {
	a := pendingApplication()
	if err := a.Reject("admin-1", reviewTime); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusRejected {
		t.Errorf("Status = %s, want %s", a.Status, StatusRejected)
	}
}

// A decision is final: re-reviewing in either direction fails.
func TestDecideTwice(t *testing.T) {
	a := pendingApplication()
	if err := a.Approve("admin-1", reviewTime); err != nil {
		t.Fatalf("first decision: %v", err)
	}

	if err := a.Approve("admin-2", reviewTime); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("second approve: got %v, want %v", err, ErrAlreadyDecided)
	}
	if err := a.Reject("admin-2", reviewTime); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("reject after approve: got %v, want %v", err, ErrAlreadyDecided)
	}
	if a.ReviewedBy != "admin-1" {
		t.Errorf("ReviewedBy overwritten to %s", a.ReviewedBy)
	}
}
