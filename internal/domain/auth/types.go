package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"fmt"
)

// Role represents an application's authority level.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleEmployee      Role = "EMPLOYEE"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// DefaultRole is the effective role of a session that carries none.
const DefaultRole = RoleEmployee

var (
	// ErrInvalidRole is returned when a role string is outside the known set.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInsufficientAuthority is returned when a valid role does not match the required one.
	ErrInsufficientAuthority = errors.New("insufficient authority")
)

// ParseRole converts s into a Role. Matching is exact; "employee" is not EMPLOYEE.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleEmployee, RoleAdministrator:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// CheckAuthority succeeds iff both strings parse and name the same role.
// There is no hierarchy: ADMINISTRATOR does not satisfy EMPLOYEE.
func CheckAuthority(userRole, requiredRole string) error {
	have, err := ParseRole(userRole)
	if err != nil {
		return fmt.Errorf("user authority: %w", err)
	}
	want, err := ParseRole(requiredRole)
	if err != nil {
		return fmt.Errorf("required authority: %w", err)
	}
	if have != want {
		return fmt.Errorf("%w: have %s, need %s", ErrInsufficientAuthority, have, want)
	}
	return nil
}

// Identity is the user record carried inside the session cookie.
// Empty Username, Email or Role mean the value is absent.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"authority,omitempty"`
}

// EffectiveRole returns the identity's role, or DefaultRole when none is set.
func (i Identity) EffectiveRole() Role {
	if i.Role == "" {
		return DefaultRole
	}
	return i.Role
}

// IsAdministrator reports whether the identity carries the ADMINISTRATOR role.
func (i Identity) IsAdministrator() bool { return i.Role == RoleAdministrator }
