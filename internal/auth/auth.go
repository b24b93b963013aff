package auth

import (
	"slices"

	"wayfarer/internal/domain/errs"
)

// Roles are flat: a role gate passes only on an exact match.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type Authenticator interface {
	IssueToken(userID int64, email, role string) (string, error)
	VerifyToken(token string) (*Claims, error)
}

// RequireRole returns errs.ErrForbidden unless role is one of allowed.
func RequireRole(role string, allowed ...string) error {
	if slices.Contains(allowed, role) {
		return nil
	}
	return errs.ErrForbidden
}
