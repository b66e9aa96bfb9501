package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/target/timetracker/internal/core"
	domainauth "github.com/target/timetracker/internal/domain/auth"
	apperrors "github.com/target/timetracker/internal/errors"
)

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	Users  core.UserRepository // Required
	Logger *slog.Logger        // Optional
}

// AccountService lets a user manage their own password and email.
type AccountService struct {
	users  core.UserRepository
	logger *slog.Logger
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	if opts.Users == nil {
		panic("UserRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{users: opts.Users, logger: logger.With("component", "account_service")}
}

// ChangePasswordInput carries the password change form.
type ChangePasswordInput struct {
	Current string
	New     string
	Confirm string
}

// ChangePassword replaces the password of userID. Strength is checked by the caller.
func (s *AccountService) ChangePassword(ctx context.Context, userID int64, in ChangePasswordInput) error {
	if in.New != in.Confirm {
		return apperrors.ValidationField("confirm_password", "new passwords do not match")
	}
	if in.New == in.Current {
		return apperrors.ValidationField("new_password", "new password must differ from the current one")
	}

	ok, err := s.users.CheckPassword(ctx, userID, in.Current)
	if err != nil {
		return fmt.Errorf("check current password: %w", err)
	}
	if !ok {
		return apperrors.ValidationField("current_password", "current password is incorrect")
	}

	n, err := s.users.UpdatePassword(ctx, userID, in.New)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n == 0 {
		return apperrors.NotFound("user not found")
	}
	s.logger.InfoContext(ctx, "password changed", "user_id", userID)
	return nil
}

// ChangeEmail stores newEmail for the session user and returns the identity to re-issue.
// Format is checked by the caller.
func (s *AccountService) ChangeEmail(ctx context.Context, id domainauth.Identity, newEmail string) (domainauth.Identity, error) {
	newEmail = strings.TrimSpace(newEmail)
	if strings.EqualFold(newEmail, id.Email) {
		return id, apperrors.ValidationField("new_email", "new email must differ from the current one")
	}

	n, err := s.users.UpdateEmail(ctx, id.ID, newEmail)
	if err != nil {
		return id, fmt.Errorf("update email: %w", err)
	}
	if n == 0 {
		return id, apperrors.NotFound("user not found")
	}
	s.logger.InfoContext(ctx, "email changed", "user_id", id.ID)
	id.Email = newEmail
	return id, nil
}
