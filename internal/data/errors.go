package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPasswordEmpty   = errors.New("password is required")
	ErrUsernameInvalid = errors.New("username is required")
)
