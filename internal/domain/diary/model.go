package diary

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyNotes   = errors.New("notes cannot be empty")
	ErrEmptyTopic   = errors.New("topic cannot be empty")
	ErrEmptyTrainer = errors.New("trainer name cannot be empty")
)

// Entry is one trainer diary note about a student's session.
type Entry struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	TrainerName string    `json:"trainerName"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LessonPlan is a planned session a trainer prepares ahead of time.
type LessonPlan struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Details   string    `json:"details"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks if the Entry has valid data.
// PRE: Entry struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Notes) == "" {
		return ErrEmptyNotes
	}
	if strings.TrimSpace(e.TrainerName) == "" {
		return ErrEmptyTrainer
	}
	return nil
}

// Validate checks if the LessonPlan has valid data.
// PRE: LessonPlan struct is populated
// POST: Returns nil if valid, error otherwise
func (p *LessonPlan) Validate() error {
	if strings.TrimSpace(p.Topic) == "" {
		return ErrEmptyTopic
	}
	return nil
}
