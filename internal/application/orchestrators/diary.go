package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kinetic/internal/domain/diary"
)

// DiaryStore is the trainer diary access the diary orchestrators need.
type DiaryStore interface {
	AddEntry(ctx context.Context, entry diary.Entry) error
	DeleteEntry(ctx context.Context, id string) error
	AddPlan(ctx context.Context, plan diary.LessonPlan) error
	DeletePlan(ctx context.Context, id string) error
}

// AddDiaryEntryInput carries one trainer note about a student's session.
type AddDiaryEntryInput struct {
	StudentID   string
	StudentName string
	TrainerName string
	Notes       string
}

// AddLessonPlanInput carries one planned session.
type AddLessonPlanInput struct {
	Topic   string
	Details string
	Date    string
}

// DiaryDeps holds dependencies for the diary orchestrators.
type DiaryDeps struct {
	Diary DiaryStore
}

// ExecuteAddDiaryEntry records a trainer note for a student.
// PRE: Notes and trainer name are non-empty
// POST: Entry persisted after all existing entries
func ExecuteAddDiaryEntry(ctx context.Context, input AddDiaryEntryInput, deps DiaryDeps) (diary.Entry, error) {
	entry := diary.Entry{
		ID:          uuid.New().String(),
		StudentID:   input.StudentID,
		StudentName: input.StudentName,
		TrainerName: input.TrainerName,
		Notes:       input.Notes,
		CreatedAt:   time.Now(),
	}
	if err := entry.Validate(); err != nil {
		return diary.Entry{}, err
	}
	if err := deps.Diary.AddEntry(ctx, entry); err != nil {
		return diary.Entry{}, err
	}
	slog.Info("diary_event", "event", "entry_added", "student", input.StudentID)
	return entry, nil
}

// ExecuteAddLessonPlan records a planned session.
// PRE: Topic is non-empty
// POST: Plan persisted after all existing plans
func ExecuteAddLessonPlan(ctx context.Context, input AddLessonPlanInput, deps DiaryDeps) (diary.LessonPlan, error) {
	plan := diary.LessonPlan{
		ID:        uuid.New().String(),
		Topic:     input.Topic,
		Details:   input.Details,
		Date:      input.Date,
		CreatedAt: time.Now(),
	}
	if err := plan.Validate(); err != nil {
		return diary.LessonPlan{}, err
	}
	if err := deps.Diary.AddPlan(ctx, plan); err != nil {
		return diary.LessonPlan{}, err
	}
	slog.Info("diary_event", "event", "plan_added", "topic", input.Topic)
	return plan, nil
}
