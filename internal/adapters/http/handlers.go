package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"kinetic/internal/adapters/http/middleware"
	"kinetic/internal/application/orchestrators"
	"kinetic/internal/domain/access"
	"kinetic/internal/domain/content"
	"kinetic/internal/domain/user"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

const templatesDir = "internal/adapters/http/templates"

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	name := ""
	if ok {
		role = sess.Role
		name = sess.Name
	}

	funcMap := template.FuncMap{
		"currentRole":   func() string { return role },
		"currentName":   func() string { return name },
		"isLoggedIn":    func() bool { return role != "" },
		"isStaff":       func() bool { return role == user.RoleAdmin || role == user.RoleDirector || role == user.RoleTrainer },
		"csrfToken":     func() string { return csrf.Token(r) },
		"dashboardPath": func() string { return access.DashboardPath(role) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"dollars": func(amount int) string {
			return "$" + strconv.Itoa(amount)
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleHome renders the landing page.
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	renderTemplate(w, r, "home.html", map[string]any{
		"Sports": content.Sports,
	})
}

func handleSports(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "sports.html", map[string]any{
		"Sports": content.Sports,
	})
}

func handleSportDetail(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/sports/")
	sport := content.SportBySlug(slug)
	if sport == nil {
		http.NotFound(w, r)
		return
	}
	renderTemplate(w, r, "sport.html", map[string]any{
		"Sport": sport,
	})
}

func handlePricing(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "pricing.html", map[string]any{
		"Plans": content.Plans,
	})
}

func handleFAQ(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "faq.html", map[string]any{
		"FAQ": content.FAQ,
	})
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already logged in, redirect to the role dashboard
		if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, access.DashboardPath(sess.Role), http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
		}
		deps := orchestrators.LoginDeps{
			Records:  stores.Records,
			Sessions: stores.Sessions,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		token, err := tokens.Create(result.ID, result.Email, result.Name, result.Role)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, access.DashboardPath(result.Role), http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleRegister handles GET (form) and POST (create account) for /register
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, access.DashboardPath(sess.Role), http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "register.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		age := 0
		if raw := r.FormValue("Age"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				renderTemplate(w, r, "register.html", map[string]any{
					"CSRFToken": csrf.Token(r),
					"Error":     "Age must be a number",
				})
				return
			}
			age = parsed
		}

		input := orchestrators.RegisterInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
			Name:     r.FormValue("Name"),
			Age:      age,
		}
		deps := orchestrators.RegisterDeps{
			Records:  stores.Records,
			Sessions: stores.Sessions,
			Email:    emailSender,
			From:     emailFromAddress,
		}

		result, err := orchestrators.ExecuteRegister(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "register.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		token, err := tokens.Create(result.ID, result.Email, result.Name, result.Role)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, access.DashboardPath(result.Role), http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if token := middleware.SessionToken(r); token != "" {
		tokens.Delete(token)
	}
	if err := orchestrators.ExecuteLogout(r.Context(), orchestrators.LogoutDeps{Sessions: stores.Sessions}); err != nil {
		internalError(w, err)
		return
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleDashboard redirects to the role-specific dashboard.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, access.DashboardPath(sess.Role), http.StatusSeeOther)
}

// handleProfile handles GET (form) and POST (save) for /profile
func handleProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		renderTemplate(w, r, "profile.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Name":      sess.Name,
			"Email":     sess.Email,
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.UpdateProfileInput{
			UserID: sess.UserID,
			Name:   r.FormValue("Name"),
			Email:  r.FormValue("Email"),
		}
		deps := orchestrators.UpdateProfileDeps{
			Records:  stores.Records,
			Sessions: stores.Sessions,
		}

		updated, err := orchestrators.ExecuteUpdateProfile(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "profile.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Name":      r.FormValue("Name"),
				"Email":     r.FormValue("Email"),
				"Error":     err.Error(),
			})
			return
		}

		// Keep live browser sessions in step with the saved record.
		tokens.RefreshUser(updated.ID, updated.Name, updated.Email, updated.Role)

		renderTemplate(w, r, "profile.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Name":      updated.Name,
			"Email":     updated.Email,
			"Saved":     true,
		})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleChat handles POST /api/chat. Anonymous visitors get answers but no
// stored history.
func handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	userID := ""
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		userID = sess.UserID
	}

	result, err := orchestrators.ExecuteChat(r.Context(), orchestrators.ChatInput{
		UserID:  userID,
		Message: req.Message,
	}, orchestrators.ChatDeps{Records: stores.Records})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmptyMessage) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"response":  result.Response,
		"timestamp": result.Timestamp.Format(time.RFC3339),
	})
}
