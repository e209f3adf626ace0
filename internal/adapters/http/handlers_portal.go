package web

import (
	"errors"
	"net/http"

	"github.com/gorilla/csrf"

	"kinetic/internal/adapters/http/middleware"
	"kinetic/internal/application/orchestrators"
	"kinetic/internal/application/projections"
	"kinetic/internal/domain/content"
)

// handleClientDashboard renders the member portal for a client.
func handleClientDashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	result, err := projections.GetClientDashboard(r.Context(), sess.UserID, projections.GetClientDashboardDeps{
		Records: stores.Records,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "dashboard_client.html", map[string]any{
		"CSRFToken":    csrf.Token(r),
		"Name":         sess.Name,
		"Applications": result.Applications,
		"Purchases":    result.Purchases,
		"ChatHistory":  result.ChatHistory,
		"Sports":       content.Sports,
		"Plans":        content.Plans,
	})
}

// handleSubmitApplication handles POST /applications
func handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	input := orchestrators.SubmitApplicationInput{
		UserID:  sess.UserID,
		Program: r.FormValue("Program"),
		Message: r.FormValue("Message"),
	}
	if _, err := orchestrators.ExecuteSubmitApplication(r.Context(), input, orchestrators.SubmitApplicationDeps{
		Records: stores.Records,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/dashboard/client", http.StatusSeeOther)
}

// handleRecordPurchase handles POST /purchases
func handleRecordPurchase(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	plan := content.PlanByName(r.FormValue("Plan"))
	if plan == nil {
		http.Error(w, "Unknown plan", http.StatusBadRequest)
		return
	}

	input := orchestrators.RecordPurchaseInput{
		UserID:  sess.UserID,
		Program: plan.Name,
		Amount:  plan.Price,
	}
	if _, err := orchestrators.ExecuteRecordPurchase(r.Context(), input, orchestrators.RecordPurchaseDeps{
		Records: stores.Records,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/dashboard/client", http.StatusSeeOther)
}

// handleSettlePurchase handles POST /purchases/settle (staff only)
func handleSettlePurchase(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	complete := r.FormValue("Outcome") == "complete"
	err := orchestrators.ExecuteSettlePurchase(r.Context(), r.FormValue("PurchaseID"), complete, orchestrators.RecordPurchaseDeps{
		Records: stores.Records,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrPurchaseNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/dashboard/admin", http.StatusSeeOther)
}

// handleAdminDashboard renders the staff panel: pending applications and
// open purchases.
func handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	agg, err := stores.Records.Load(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	overview, err := projections.GetDirectorOverview(r.Context(), projections.GetDirectorOverviewDeps{
		Records: stores.Records,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "dashboard_admin.html", map[string]any{
		"CSRFToken":           csrf.Token(r),
		"Name":                sess.Name,
		"PendingApplications": overview.PendingApplications,
		"Purchases":           agg.Purchases,
	})
}

// handleReviewApplication handles POST /applications/review
func handleReviewApplication(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	input := orchestrators.ReviewApplicationInput{
		ReviewerID:    sess.UserID,
		ApplicationID: r.FormValue("ApplicationID"),
		Approve:       r.FormValue("Decision") == "approve",
	}
	err := orchestrators.ExecuteReviewApplication(r.Context(), input, orchestrators.ReviewApplicationDeps{
		Records: stores.Records,
		Email:   emailSender,
		From:    emailFromAddress,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrApplicationNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/dashboard/admin", http.StatusSeeOther)
}
