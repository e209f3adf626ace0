package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"kinetic/internal/domain/access"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

// Session is the per-request view of an authenticated identity. It carries a
// denormalized copy of the user's display fields; profile edits reach it only
// through RefreshUser.
type Session struct {
	UserID    string
	Email     string
	Name      string
	Role      string
	CreatedAt time.Time
}

// TokenStore maps session cookie tokens to sessions, in memory.
type TokenStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewTokenStore creates a new in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		sessions: make(map[string]Session),
	}
}

// Create stores a new session and returns the token.
// PRE: userID, email, role are non-empty
// POST: Session is stored, token is returned
func (ts *TokenStore) Create(userID, email, name, role string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.sessions[token] = Session{
		UserID:    userID,
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now(),
	}
	return token, nil
}

// Get retrieves a session by token.
// PRE: token is non-empty
// POST: Returns session if valid and not expired
func (ts *TokenStore) Get(token string) (Session, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	session, ok := ts.sessions[token]
	if !ok {
		return Session{}, false
	}
	// Sessions expire after 24 hours
	if time.Since(session.CreatedAt) > 24*time.Hour {
		return Session{}, false
	}
	return session, true
}

// Delete removes a session by token.
// PRE: token is non-empty
// POST: Session with given token is removed
func (ts *TokenStore) Delete(token string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.sessions, token)
}

// RefreshUser rewrites the display fields of every live session for userID.
// Called after a profile save so open sessions show the new name without a
// re-login.
// POST: All sessions for userID carry the new name, email and role
func (ts *TokenStore) RefreshUser(userID, name, email, role string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for token, s := range ts.sessions {
		if s.UserID == userID {
			s.Name = name
			s.Email = email
			s.Role = role
			ts.sessions[token] = s
		}
	}
}

// DropUser removes every live session for userID. Called after deletion.
func (ts *TokenStore) DropUser(userID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for token, s := range ts.sessions {
		if s.UserID == userID {
			delete(ts.sessions, token)
		}
	}
}

const sessionCookieName = "kinetic_session"

// SecureCookies controls the Secure flag on session cookies. Enabled in
// production by cmd/server.
var SecureCookies = false

// Auth returns middleware that extracts the session from the cookie and sets it
// in context. It does NOT block unauthenticated requests — use RequireRole for that.
func Auth(tokens *TokenStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				if session, ok := tokens.Get(cookie.Value); ok {
					ctx := context.WithValue(r.Context(), sessionContextKey, session)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole gates a resource on the given role set, following the portal's
// redirect policy: unauthenticated visitors go to the entry page, an
// authenticated visitor with the wrong role goes to the generic dashboard
// landing (which branches by role). There are no partial permissions.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSessionFromContext(r.Context())
			switch access.Decide(ok, session.Role, roles) {
			case access.RedirectToLogin:
				http.Redirect(w, r, "/login", http.StatusSeeOther)
			case access.RedirectToDashboard:
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireAuth gates a resource on any authenticated session.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	return session, ok
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   86400, // 24 hours
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// SessionToken returns the raw session token from the request cookie.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
