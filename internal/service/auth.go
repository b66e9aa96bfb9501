package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/target/timetracker/internal/core"
	domainauth "github.com/target/timetracker/internal/domain/auth"
	apperrors "github.com/target/timetracker/internal/errors"
	"github.com/target/timetracker/internal/ports"
)

var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong password.
	ErrInvalidCredentials = apperrors.Unauthorized("invalid username or password")
	// ErrLoginThrottled is returned while a username is locked out after repeated failures.
	ErrLoginThrottled = apperrors.TooManyRequests("too many failed login attempts, try again later")
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users    core.UserRepository // Required
	Throttle ports.LoginThrottle // Optional: nil disables throttling
	Logger   *slog.Logger        // Optional
}

// AuthService verifies credentials and produces the identity stored in the session.
type AuthService struct {
	users    core.UserRepository
	throttle ports.LoginThrottle
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Users == nil {
		panic("UserRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:    opts.Users,
		throttle: opts.Throttle,
		logger:   logger.With("component", "auth_service"),
	}
}

// Login checks the credentials and returns the session identity of the user.
// Throttle failures are logged and ignored so a Redis outage never blocks logins.
func (s *AuthService) Login(ctx context.Context, username, password string) (domainauth.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, username)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "login throttle unavailable", "error", err)
		case !allowed:
			s.logger.WarnContext(ctx, "login throttled", "username", username)
			return domainauth.Identity{}, ErrLoginThrottled
		}
	}

	id, ok, err := s.users.VerifyCredentials(ctx, username, password)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("verify credentials: %w", err)
	}
	if !ok {
		s.recordFailure(ctx, username)
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("load user profile: %w", err)
	}
	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.WarnContext(ctx, "reset login throttle", "error", err)
		}
	}
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return user.Identity(), nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	s.logger.InfoContext(ctx, "login failed", "username", username)
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Fail(ctx, username); err != nil {
		s.logger.WarnContext(ctx, "record failed login", "error", err)
	}
}
