package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"kinetic/internal/adapters/email"
	"kinetic/internal/domain/application"
	"kinetic/internal/domain/record"
)

// ReviewApplicationInput carries input for an application decision.
type ReviewApplicationInput struct {
	ReviewerID    string
	ApplicationID string
	Approve       bool
}

// ReviewApplicationDeps holds dependencies for ReviewApplication.
type ReviewApplicationDeps struct {
	Records RecordStore
	Email   email.Sender // optional; nil skips the decision email
	From    string
}

// ErrApplicationNotFound rejects a review of an unknown application.
var ErrApplicationNotFound = errors.New("application not found")

// ExecuteReviewApplication approves or rejects a pending application and
// mails the decision to the applicant.
// PRE: Application is pending
// POST: Status, reviewedBy and reviewedAt set; other slices untouched
func ExecuteReviewApplication(ctx context.Context, input ReviewApplicationInput, deps ReviewApplicationDeps) error {
	var decided application.Application

	err := deps.Records.Update(ctx, func(agg *record.Aggregate) error {
		for i := range agg.Applications {
			if agg.Applications[i].ID != input.ApplicationID {
				continue
			}
			app := &agg.Applications[i]
			var err error
			if input.Approve {
				err = app.Approve(input.ReviewerID, time.Now())
			} else {
				err = app.Reject(input.ReviewerID, time.Now())
			}
			if err != nil {
				return err
			}
			decided = *app
			return nil
		}
		return ErrApplicationNotFound
	})
	if err != nil {
		return err
	}

	slog.Info("application_event", "event", "reviewed", "application", decided.ID, "status", decided.Status, "reviewer", input.ReviewerID)

	if deps.Email != nil {
		name := html.EscapeString(decided.UserName)
		program := html.EscapeString(decided.Program)
		subject := "Your Kinetic Kids application was approved"
		body := fmt.Sprintf("<p>Hi %s!</p><p>Your application for <b>%s</b> was approved. "+
			"Group times are on your dashboard.</p>", name, program)
		if decided.Status == application.StatusRejected {
			subject = "About your Kinetic Kids application"
			body = fmt.Sprintf("<p>Hi %s,</p><p>We couldn't approve your application for <b>%s</b> "+
				"this time. Reply to this email and we'll find an option together.</p>", name, program)
		}
		_, err := deps.Email.Send(ctx, email.SendRequest{
			To:      []string{decided.UserEmail},
			From:    deps.From,
			Subject: subject,
			HTML:    body,
		})
		if err != nil {
			slog.Error("email_event", "event", "decision_failed", "application", decided.ID, "error", err.Error())
		}
	}

	return nil
}
