package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"kinetic/internal/adapters/http/middleware"
	"kinetic/internal/application/orchestrators"
	"kinetic/internal/application/projections"
	"kinetic/internal/domain/user"
)

// handleDirectorDashboard renders the director overview.
func handleDirectorDashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	overview, err := projections.GetDirectorOverview(r.Context(), projections.GetDirectorOverviewDeps{
		Records: stores.Records,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "dashboard_director.html", map[string]any{
		"CSRFToken":           csrf.Token(r),
		"Name":                sess.Name,
		"TotalUsers":          overview.TotalUsers,
		"ClientCount":         overview.ClientCount,
		"AdminCount":          overview.AdminCount,
		"TrainerCount":        overview.TrainerCount,
		"PendingApplications": overview.PendingApplications,
		"RecentActivity":      overview.RecentActivity,
	})
}

// handleDirectorUsers renders the user management table with search and
// role filtering.
func handleDirectorUsers(w http.ResponseWriter, r *http.Request) {
	query := projections.GetUserListQuery{
		Search: r.URL.Query().Get("q"),
		Role:   r.URL.Query().Get("role"),
	}
	users, err := projections.GetUserList(r.Context(), query, projections.GetUserListDeps{
		Records: stores.Records,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "director_users.html", map[string]any{
		"CSRFToken":       csrf.Token(r),
		"Users":           users,
		"Search":          query.Search,
		"Role":            query.Role,
		"Roles":           user.ValidRoles,
		"AssignableRoles": []string{user.RoleClient, user.RoleAdmin, user.RoleTrainer},
	})
}

// handleCreateUser handles POST /director/users/create
func handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	input := orchestrators.CreateUserInput{
		ActorID:  sess.UserID,
		Email:    r.FormValue("Email"),
		Password: r.FormValue("Password"),
		Name:     r.FormValue("Name"),
		Role:     r.FormValue("Role"),
	}
	if _, err := orchestrators.ExecuteCreateUser(r.Context(), input, orchestrators.CreateUserDeps{
		Records: stores.Records,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/director/users", http.StatusSeeOther)
}

// handleAssignRole handles POST /director/users/role
func handleAssignRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	input := orchestrators.AssignRoleInput{
		ActorID:  sess.UserID,
		TargetID: r.FormValue("UserID"),
		Role:     r.FormValue("Role"),
	}
	err := orchestrators.ExecuteAssignRole(r.Context(), input, orchestrators.AssignRoleDeps{
		Records: stores.Records,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, orchestrators.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	// Live sessions pick up the new role immediately.
	if u := lookupUser(r, input.TargetID); u != nil {
		tokens.RefreshUser(u.ID, u.Name, u.Email, u.Role)
	}

	http.Redirect(w, r, "/director/users", http.StatusSeeOther)
}

// handleDeleteUser handles POST /director/users/delete
func handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	input := orchestrators.DeleteUserInput{
		ActorID:  sess.UserID,
		TargetID: r.FormValue("UserID"),
	}
	err := orchestrators.ExecuteDeleteUser(r.Context(), input, orchestrators.DeleteUserDeps{
		Records: stores.Records,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, orchestrators.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	// A deleted user loses any live browser sessions.
	tokens.DropUser(input.TargetID)

	http.Redirect(w, r, "/director/users", http.StatusSeeOther)
}

// handleActivityLog renders the audit trail, optionally filtered to one user.
func handleActivityLog(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	entries, err := projections.GetActivityLog(r.Context(), userID, projections.GetActivityLogDeps{
		Records: stores.Records,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "director_activity.html", map[string]any{
		"Entries":  entries,
		"FilterID": userID,
	})
}

// handlePerfSnapshot serves request and store timings as JSON.
func handlePerfSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	window := time.Hour
	if raw := r.URL.Query().Get("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid window duration"})
			return
		}
		window = parsed
	}

	snap := perfCollector.Snapshot(timeNow().Add(-window), 10)
	writeJSON(w, http.StatusOK, snap)
}

// lookupUser fetches one live user from the aggregate, or nil.
func lookupUser(r *http.Request, id string) *user.User {
	agg, err := stores.Records.Load(r.Context())
	if err != nil {
		return nil
	}
	return agg.FindUserByID(id)
}
