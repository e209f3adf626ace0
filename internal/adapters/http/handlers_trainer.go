package web

import (
	"net/http"

	"github.com/gorilla/csrf"

	"kinetic/internal/adapters/http/middleware"
	"kinetic/internal/application/orchestrators"
	"kinetic/internal/application/projections"
)

// handleTrainerDashboard renders the trainer panel: student roster, diary
// entries and lesson plans.
func handleTrainerDashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	roster, err := projections.GetTrainerRoster(r.Context(), projections.GetTrainerRosterDeps{
		Records: stores.Records,
		Diary:   stores.Diary,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "dashboard_trainer.html", map[string]any{
		"CSRFToken": csrf.Token(r),
		"Name":      sess.Name,
		"Students":  roster.Students,
		"Entries":   roster.Entries,
		"Plans":     roster.Plans,
	})
}

// handleAddDiaryEntry handles POST /trainer/diary
func handleAddDiaryEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	studentID := r.FormValue("StudentID")
	studentName := r.FormValue("StudentName")
	if studentName == "" {
		if u := lookupUser(r, studentID); u != nil {
			studentName = u.Name
		}
	}

	input := orchestrators.AddDiaryEntryInput{
		StudentID:   studentID,
		StudentName: studentName,
		TrainerName: sess.Name,
		Notes:       r.FormValue("Notes"),
	}
	if _, err := orchestrators.ExecuteAddDiaryEntry(r.Context(), input, orchestrators.DiaryDeps{
		Diary: stores.Diary,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/dashboard/trainer", http.StatusSeeOther)
}

// handleDeleteDiaryEntry handles POST /trainer/diary/delete
func handleDeleteDiaryEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	if err := stores.Diary.DeleteEntry(r.Context(), r.FormValue("EntryID")); err != nil {
		internalError(w, err)
		return
	}

	http.Redirect(w, r, "/dashboard/trainer", http.StatusSeeOther)
}

// handleAddLessonPlan handles POST /trainer/plans
func handleAddLessonPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.AddLessonPlanInput{
		Topic:   r.FormValue("Topic"),
		Details: r.FormValue("Details"),
		Date:    r.FormValue("Date"),
	}
	if _, err := orchestrators.ExecuteAddLessonPlan(r.Context(), input, orchestrators.DiaryDeps{
		Diary: stores.Diary,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/dashboard/trainer", http.StatusSeeOther)
}

// handleDeleteLessonPlan handles POST /trainer/plans/delete
func handleDeleteLessonPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	if err := stores.Diary.DeletePlan(r.Context(), r.FormValue("PlanID")); err != nil {
		internalError(w, err)
		return
	}

	http.Redirect(w, r, "/dashboard/trainer", http.StatusSeeOther)
}
