package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"kinetic/internal/adapters/email"
	"kinetic/internal/adapters/http/middleware"
	"kinetic/internal/adapters/http/perf"
	diaryStore "kinetic/internal/adapters/storage/diary"
	recordStore "kinetic/internal/adapters/storage/record"
	sessionStore "kinetic/internal/adapters/storage/session"
	"kinetic/internal/domain/user"
)

// Stores holds all storage dependencies.
type Stores struct {
	Records  *recordStore.Store
	Sessions *sessionStore.Store
	Diary    *diaryStore.Store
}

// loadCSRFKey reads the CSRF secret from KINETIC_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("KINETIC_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("KINETIC_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("KINETIC_ENV") == "production" {
		log.Fatal("KINETIC_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set KINETIC_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global token store instance
var tokens *middleware.TokenStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	tokens = middleware.NewTokenStore()
	middleware.SecureCookies = os.Getenv("KINETIC_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()
	trustedOrigins := splitOrigins(os.Getenv("KINETIC_TRUSTED_ORIGINS"))

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: SecurityHeaders -> CSRF -> Auth -> RateLimit -> Timing -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, trustedOrigins),
		middleware.Auth(tokens),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// registerRoutes binds every path to its handler. Role gates are applied
// here so the handlers themselves can assume an authorized caller.
func registerRoutes(mux *http.ServeMux) {
	// Public marketing pages
	mux.HandleFunc("/", handleHome)
	mux.HandleFunc("/sports", handleSports)
	mux.HandleFunc("/sports/", handleSportDetail)
	mux.HandleFunc("/pricing", handlePricing)
	mux.HandleFunc("/faq", handleFAQ)

	// Auth
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/register", handleRegister)
	mux.HandleFunc("/logout", handleLogout)

	// Dashboards
	mux.Handle("/dashboard", middleware.RequireAuth(http.HandlerFunc(handleDashboard)))
	mux.Handle("/dashboard/client", requireRoles(handleClientDashboard, user.RoleClient))
	mux.Handle("/dashboard/admin", requireRoles(handleAdminDashboard, user.RoleAdmin, user.RoleDirector))
	mux.Handle("/dashboard/director", requireRoles(handleDirectorDashboard, user.RoleDirector))
	mux.Handle("/dashboard/trainer", requireRoles(handleTrainerDashboard, user.RoleTrainer, user.RoleDirector))

	// Profile settings
	mux.Handle("/profile", middleware.RequireAuth(http.HandlerFunc(handleProfile)))

	// Portal actions
	mux.Handle("/applications", requireRoles(handleSubmitApplication, user.RoleClient))
	mux.Handle("/applications/review", requireRoles(handleReviewApplication, user.RoleAdmin, user.RoleDirector))
	mux.Handle("/purchases", requireRoles(handleRecordPurchase, user.RoleClient))
	mux.Handle("/purchases/settle", requireRoles(handleSettlePurchase, user.RoleAdmin, user.RoleDirector))

	// Directorate
	mux.Handle("/director/users", requireRoles(handleDirectorUsers, user.RoleDirector))
	mux.Handle("/director/users/create", requireRoles(handleCreateUser, user.RoleDirector))
	mux.Handle("/director/users/role", requireRoles(handleAssignRole, user.RoleDirector))
	mux.Handle("/director/users/delete", requireRoles(handleDeleteUser, user.RoleDirector))
	mux.Handle("/director/activity", requireRoles(handleActivityLog, user.RoleDirector))
	mux.Handle("/director/perf", requireRoles(handlePerfSnapshot, user.RoleDirector))

	// Trainer diary
	mux.Handle("/trainer/diary", requireRoles(handleAddDiaryEntry, user.RoleTrainer, user.RoleDirector))
	mux.Handle("/trainer/diary/delete", requireRoles(handleDeleteDiaryEntry, user.RoleTrainer, user.RoleDirector))
	mux.Handle("/trainer/plans", requireRoles(handleAddLessonPlan, user.RoleTrainer, user.RoleDirector))
	mux.Handle("/trainer/plans/delete", requireRoles(handleDeleteLessonPlan, user.RoleTrainer, user.RoleDirector))

	// Chatbot (anonymous visitors allowed)
	mux.HandleFunc("/api/chat", handleChat)
}

func requireRoles(h http.HandlerFunc, roles ...string) http.Handler {
	return middleware.RequireRole(roles...)(http.HandlerFunc(h))
}
