package user

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength = 254
	MaxNameLength  = 100
)

// Role constants
const (
	RoleClient   = "client"
	RoleAdmin    = "admin"
	RoleDirector = "director"
	RoleTrainer  = "trainer"
)

// Age bounds for registration. The school takes kids from 3 up; the upper
// bound exists only to reject typos.
const (
	MinAge = 3
	MaxAge = 99
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleClient, RoleAdmin, RoleDirector, RoleTrainer}

// Domain errors
var (
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrInvalidRole      = errors.New("role must be one of: client, admin, director, trainer")
	ErrNameTooShort     = errors.New("name must be at least 2 characters")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrAgeOutOfRange    = errors.New("age must be between 3 and 99")
)

// User holds state for one portal account. Records live inside the shared
// aggregate; email is unique across all live records (exact byte equality).
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password,omitempty"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Age          int       `json:"age,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
	IsActive     bool      `json:"isActive"`
}

// Validate checks if the User has valid data.
// PRE: User struct is populated
// POST: Returns nil if valid, error otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if len(u.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if len(strings.TrimSpace(u.Name)) < 2 {
		return ErrNameTooShort
	}
	if len(u.Name) > MaxNameLength {
		return errors.New("name cannot exceed 100 characters")
	}
	if !IsValidRole(u.Role) {
		return ErrInvalidRole
	}
	if u.Age != 0 && (u.Age < MinAge || u.Age > MaxAge) {
		return ErrAgeOutOfRange
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty and >= 6 characters
// POST: PasswordHash is set to bcrypt hash
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < 6 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: User fields are not mutated
func (u *User) CheckPassword(plaintext string) error {
	if u.PasswordHash == "" {
		return ErrWrongPassword
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext))
	if err != nil {
		return ErrWrongPassword
	}
	return nil
}

// Touch records activity on the account.
// PRE: User exists
// POST: LastActivity is set to now
func (u *User) Touch(now time.Time) {
	u.LastActivity = now
}

// Sanitized returns a copy safe to hand to transport layers and the
// persisted session pointer: the password hash is blanked.
// INVARIANT: User fields are not mutated
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// IsDirector returns true if the user has director role.
// INVARIANT: User fields are not mutated
func (u *User) IsDirector() bool {
	return u.Role == RoleDirector
}

// IsStaff returns true if the user can review applications.
// INVARIANT: User fields are not mutated
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleDirector
}

// IsValidRole reports whether role is one of the known role values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
