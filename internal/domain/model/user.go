//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	domainauth "github.com/target/timetracker/internal/domain/auth"
)

// UserInfo is the public profile of a user. The password hash never leaves the data layer.
type UserInfo struct {
	ID        int64  `json:"id"        db:"id"`
	Username  string `json:"username"  db:"username"`
	Email     string `json:"email"     db:"email"`
	Authority string `json:"authority" db:"authority"`
}

// Identity converts the profile into the record stored in the session cookie.
func (u UserInfo) Identity() domainauth.Identity {
	return domainauth.Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     domainauth.Role(u.Authority),
	}
}

// CreateUserRequest carries the fields needed to create a user.
type CreateUserRequest struct {
	Username string
	Email    string
	Password string
	Role     domainauth.Role
}
