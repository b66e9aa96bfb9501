package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/target/timetracker/internal/domain/auth"
)

// SessionCodec turns a session identity into an opaque cookie value and back.
type SessionCodec interface {
	CookieName() string
	Encode(id domainauth.Identity) (string, error)
	// Decode reports ok=false for any value it cannot authenticate; it never distinguishes why.
	Decode(value string) (domainauth.Identity, bool)
}

// LoginThrottle limits repeated failed logins per username.
type LoginThrottle interface {
	// Allow reports whether another login attempt is permitted for username.
	Allow(ctx context.Context, username string) (bool, error)
	// Fail records a failed attempt.
	Fail(ctx context.Context, username string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, username string) error
}
