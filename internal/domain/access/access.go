package access

import "kinetic/internal/domain/user"

// Decision is the outcome of a gate check for one resource.
type Decision int

const (
	// Allow lets the request through.
	Allow Decision = iota
	// RedirectToLogin sends an unauthenticated visitor to the entry page.
	RedirectToLogin
	// RedirectToDashboard sends an authenticated visitor with the wrong role
	// to the generic dashboard landing, which branches by role.
	RedirectToDashboard
)

// Allowed reports whether role is in the allowed set.
// INVARIANT: pure; total over all role/set combinations
func Allowed(role string, allowedRoles []string) bool {
	for _, r := range allowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Decide maps (session, required role set) to a gate decision. There are no
// partial or graduated permissions: every check resolves to exactly one of
// the three outcomes.
func Decide(authenticated bool, role string, allowedRoles []string) Decision {
	if !authenticated {
		return RedirectToLogin
	}
	if !Allowed(role, allowedRoles) {
		return RedirectToDashboard
	}
	return Allow
}

// DashboardPath returns the dashboard landing for a role. Unknown roles land
// on the client view.
func DashboardPath(role string) string {
	switch role {
	case user.RoleDirector:
		return "/dashboard/director"
	case user.RoleAdmin:
		return "/dashboard/admin"
	case user.RoleTrainer:
		return "/dashboard/trainer"
	default:
		return "/dashboard/client"
	}
}
