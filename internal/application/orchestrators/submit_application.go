package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kinetic/internal/domain/application"
	"kinetic/internal/domain/record"
)

// SubmitApplicationInput carries input for an enrollment application.
type SubmitApplicationInput struct {
	UserID  string
	Program string
	Message string
}

// SubmitApplicationDeps holds dependencies for SubmitApplication.
type SubmitApplicationDeps struct {
	Records RecordStore
}

// ExecuteSubmitApplication files an enrollment application for a program.
// The applicant's name and email are denormalized onto the application so
// reviewer panels need no join.
// PRE: UserID references a live user; program is non-empty
// POST: One pending application appended; every other slice untouched
func ExecuteSubmitApplication(ctx context.Context, input SubmitApplicationInput, deps SubmitApplicationDeps) (application.Application, error) {
	var app application.Application

	err := deps.Records.Update(ctx, func(agg *record.Aggregate) error {
		applicant := agg.FindUserByID(input.UserID)
		if applicant == nil {
			return ErrUserNotFound
		}

		app = application.Application{
			ID:        uuid.New().String(),
			UserID:    applicant.ID,
			UserName:  applicant.Name,
			UserEmail: applicant.Email,
			Program:   input.Program,
			Message:   input.Message,
			Status:    application.StatusPending,
			CreatedAt: time.Now(),
		}
		if err := app.Validate(); err != nil {
			return err
		}
		agg.Applications = append(agg.Applications, app)
		return nil
	})
	if err != nil {
		return application.Application{}, err
	}

	slog.Info("application_event", "event", "submitted", "user", input.UserID, "program", input.Program)
	return app, nil
}
