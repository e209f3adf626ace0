package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"kinetic/internal/adapters/email"
	"kinetic/internal/domain/application"
	"kinetic/internal/domain/chat"
	"kinetic/internal/domain/purchase"
	"kinetic/internal/domain/user"
)

// recordingSender captures requests for assertions.
type recordingSender struct {
	sent []email.SendRequest
}

func (s *recordingSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	s.sent = append(s.sent, req)
	return email.SendResult{MessageID: "msg-1"}, nil
}

// --- ExecuteSubmitApplication tests ---

func TestExecuteSubmitApplication_Success(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user-1", "parent@example.com", "Sam Parent", user.RoleClient, "secret123")

	app, err := ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		UserID:  "user-1",
		Program: "Skateboarding",
		Message: "My kid is 7 and fearless",
	}, SubmitApplicationDeps{Records: env.records})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if app.Status != application.StatusPending {
		t.Errorf("status = %s, want pending", app.Status)
	}
	// Applicant name and email are denormalized onto the application.
	if app.UserName != "Sam Parent" || app.UserEmail != "parent@example.com" {
		t.Errorf("denormalized fields wrong: %+v", app)
	}

	agg := env.aggregate(t)
	if len(agg.Applications) != 1 {
		t.Errorf("applications = %d, want 1", len(agg.Applications))
	}
}

func TestExecuteSubmitApplication_Rejections(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user-1", "parent@example.com", "Sam Parent", user.RoleClient, "secret123")

	if _, err := ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		UserID: "ghost", Program: "BMX",
	}, SubmitApplicationDeps{Records: env.records}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user: got %v, want %v", err, ErrUserNotFound)
	}

	if _, err := ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		UserID: "user-1", Program: "  ",
	}, SubmitApplicationDeps{Records: env.records}); !errors.Is(err, application.ErrEmptyProgram) {
		t.Errorf("blank program: got %v, want %v", err, application.ErrEmptyProgram)
	}

	if len(env.aggregate(t).Applications) != 0 {
		t.Error("rejected submission persisted an application")
	}
}

// --- ExecuteReviewApplication tests ---

func submitTestApplication(t *testing.T, env *testEnv) application.Application {
	t.Helper()
	env.addUser(t, "user-1", "parent@example.com", "Sam Parent", user.RoleClient, "secret123")
	app, err := ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		UserID: "user-1", Program: "Parkour",
	}, SubmitApplicationDeps{Records: env.records})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return app
}

func TestExecuteReviewApplication_Approve(t *testing.T) {
	env := newTestEnv(t)
	app := submitTestApplication(t, env)
	sender := &recordingSender{}

	err := ExecuteReviewApplication(context.Background(), ReviewApplicationInput{
		ReviewerID:    seedDirectorID,
		ApplicationID: app.ID,
		Approve:       true,
	}, ReviewApplicationDeps{Records: env.records, Email: sender, From: "noreply@test.local"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := env.aggregate(t).Applications[0]
	if stored.Status != application.StatusApproved {
		t.Errorf("status = %s, want approved", stored.Status)
	}
	if stored.ReviewedBy != seedDirectorID || stored.ReviewedAt == nil {
		t.Errorf("review metadata missing: %+v", stored)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(sender.sent))
	}
	if got := sender.sent[0].To; len(got) != 1 || got[0] != "parent@example.com" {
		t.Errorf("decision email to %v", got)
	}
}

func TestExecuteReviewApplication_DecisionMailEscapesFields(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user-1", "parent@example.com", `Sam <b>Parent</b>`, user.RoleClient, "secret123")
	app, err := ExecuteSubmitApplication(context.Background(), SubmitApplicationInput{
		UserID: "user-1", Program: `<script>Parkour</script>`,
	}, SubmitApplicationDeps{Records: env.records})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	sender := &recordingSender{}
	err = ExecuteReviewApplication(context.Background(), ReviewApplicationInput{
		ReviewerID:    seedDirectorID,
		ApplicationID: app.ID,
		Approve:       true,
	}, ReviewApplicationDeps{Records: env.records, Email: sender, From: "noreply@test.local"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(sender.sent))
	}
	body := sender.sent[0].HTML
	if strings.Contains(body, "<script>") || strings.Contains(body, "Sam <b>") {
		t.Errorf("applicant-controlled markup not escaped: %s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Errorf("escaped program missing from body: %s", body)
	}
}

func TestExecuteReviewApplication_RejectWithoutSender(t *testing.T) {
	env := newTestEnv(t)
	app := submitTestApplication(t, env)

	// A nil sender skips the email without failing the review.
	err := ExecuteReviewApplication(context.Background(), ReviewApplicationInput{
		ReviewerID:    seedDirectorID,
		ApplicationID: app.ID,
		Approve:       false,
	}, ReviewApplicationDeps{Records: env.records})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := env.aggregate(t).Applications[0].Status; got != application.StatusRejected {
		t.Errorf("status = %s, want rejected", got)
	}
}

func TestExecuteReviewApplication_Errors(t *testing.T) {
	env := newTestEnv(t)
	app := submitTestApplication(t, env)

	if err := ExecuteReviewApplication(context.Background(), ReviewApplicationInput{
		ReviewerID: seedDirectorID, ApplicationID: "ghost", Approve: true,
	}, ReviewApplicationDeps{Records: env.records}); !errors.Is(err, ErrApplicationNotFound) {
		t.Errorf("unknown id: got %v, want %v", err, ErrApplicationNotFound)
	}

	if err := ExecuteReviewApplication(context.Background(), ReviewApplicationInput{
		ReviewerID: seedDirectorID, ApplicationID: app.ID, Approve: true,
	}, ReviewApplicationDeps{Records: env.records}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	// A decision is final.
	if err := ExecuteReviewApplication(context.Background(), ReviewApplicationInput{
		ReviewerID: seedDirectorID, ApplicationID: app.ID, Approve: false,
	}, ReviewApplicationDeps{Records: env.records}); !errors.Is(err, application.ErrAlreadyDecided) {
		t.Errorf("second review: got %v, want %v", err, application.ErrAlreadyDecided)
	}
}

// --- Purchase tests ---

func TestExecuteRecordPurchaseAndSettle(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user-1", "parent@example.com", "Sam Parent", user.RoleClient, "secret123")

	p, err := ExecuteRecordPurchase(context.Background(), RecordPurchaseInput{
		UserID:  "user-1",
		Program: "Monthly 8",
		Amount:  160,
	}, RecordPurchaseDeps{Records: env.records})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if p.Status != purchase.StatusPending {
		t.Errorf("status = %s, want pending", p.Status)
	}

	if err := ExecuteSettlePurchase(context.Background(), p.ID, true, RecordPurchaseDeps{Records: env.records}); err != nil {
		t.Fatalf("settle: %v", err)
	}
	if got := env.aggregate(t).Purchases[0].Status; got != purchase.StatusCompleted {
		t.Errorf("status = %s, want completed", got)
	}

	// Settling twice fails: the purchase is no longer pending.
	if err := ExecuteSettlePurchase(context.Background(), p.ID, false, RecordPurchaseDeps{Records: env.records}); !errors.Is(err, purchase.ErrNotPending) {
		t.Errorf("second settle: got %v, want %v", err, purchase.ErrNotPending)
	}
}

func TestExecuteRecordPurchase_Rejections(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user-1", "parent@example.com", "Sam Parent", user.RoleClient, "secret123")

	if _, err := ExecuteRecordPurchase(context.Background(), RecordPurchaseInput{
		UserID: "ghost", Program: "Unlimited", Amount: 220,
	}, RecordPurchaseDeps{Records: env.records}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user: got %v, want %v", err, ErrUserNotFound)
	}

	if _, err := ExecuteRecordPurchase(context.Background(), RecordPurchaseInput{
		UserID: "user-1", Program: "Unlimited", Amount: 0,
	}, RecordPurchaseDeps{Records: env.records}); !errors.Is(err, purchase.ErrInvalidAmount) {
		t.Errorf("zero amount: got %v, want %v", err, purchase.ErrInvalidAmount)
	}

	if err := ExecuteSettlePurchase(context.Background(), "ghost", true, RecordPurchaseDeps{Records: env.records}); !errors.Is(err, ErrPurchaseNotFound) {
		t.Errorf("unknown purchase: got %v, want %v", err, ErrPurchaseNotFound)
	}
}

// --- ExecuteChat tests ---

func TestExecuteChat_SignedInUserIsStored(t *testing.T) {
	env := newTestEnv(t)

	msg, err := ExecuteChat(context.Background(), ChatInput{
		UserID:  "user-1",
		Message: "how much does it cost?",
	}, ChatDeps{Records: env.records})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Response == chat.Fallback {
		t.Error("pricing question got the fallback")
	}

	agg := env.aggregate(t)
	if len(agg.ChatMessages) != 1 {
		t.Fatalf("stored messages = %d, want 1", len(agg.ChatMessages))
	}
	if agg.ChatMessages[0].UserID != "user-1" {
		t.Errorf("stored UserID = %s", agg.ChatMessages[0].UserID)
	}
}

func TestExecuteChat_AnonymousIsNotStored(t *testing.T) {
	env := newTestEnv(t)

	msg, err := ExecuteChat(context.Background(), ChatInput{
		Message: "gibberish nobody understands",
	}, ChatDeps{Records: env.records})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Response != chat.Fallback {
		t.Errorf("response = %q, want fallback", msg.Response)
	}
	if len(env.aggregate(t).ChatMessages) != 0 {
		t.Error("anonymous exchange was stored")
	}
}

func TestExecuteChat_EmptyMessage(t *testing.T) {
	env := newTestEnv(t)

	if _, err := ExecuteChat(context.Background(), ChatInput{
		UserID: "user-1", Message: "   ",
	}, ChatDeps{Records: env.records}); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("got %v, want %v", err, ErrEmptyMessage)
	}
}
