package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/target/timetracker/internal/core"
	domainauth "github.com/target/timetracker/internal/domain/auth"
	"github.com/target/timetracker/internal/domain/model"
	apperrors "github.com/target/timetracker/internal/errors"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users   core.UserRepository // Required
	Entries *EntryService       // Required
	Logger  *slog.Logger        // Optional
}

// UserService backs the administrator pages and the admin CLI.
type UserService struct {
	users   core.UserRepository
	entries *EntryService
	logger  *slog.Logger
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	if opts.Users == nil {
		panic("UserRepository is required")
	}
	if opts.Entries == nil {
		panic("EntryService is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{users: opts.Users, entries: opts.Entries, logger: logger.With("component", "user_service")}
}

// UserDetails is a user profile with their entries.
type UserDetails struct {
	User     *model.UserInfo
	Overview *model.EntryOverview
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*model.UserInfo, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get returns the profile of userID or a NotFound error.
func (s *UserService) Get(ctx context.Context, userID int64) (*model.UserInfo, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, s.notFound(err)
	}
	return u, nil
}

// Details loads the profile and the entries of userID concurrently.
func (s *UserService) Details(ctx context.Context, userID int64) (*UserDetails, error) {
	var out UserDetails
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.users.GetByID(gctx, userID)
		if err != nil {
			return s.notFound(err)
		}
		out.User = u
		return nil
	})
	g.Go(func() error {
		ov, err := s.entries.Overview(gctx, userID)
		out.Overview = ov
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAuthority sets the role of userID. role must be a known role name.
func (s *UserService) UpdateAuthority(ctx context.Context, userID int64, role string) error {
	r, err := domainauth.ParseRole(role)
	if err != nil {
		return apperrors.ValidationField("new_authority", "invalid authority")
	}
	n, err := s.users.UpdateRole(ctx, userID, r)
	if err != nil {
		return fmt.Errorf("update authority: %w", err)
	}
	if n == 0 {
		return apperrors.NotFound("user not found")
	}
	s.logger.InfoContext(ctx, "authority updated", "user_id", userID, "authority", r)
	return nil
}

// Create adds a user. Used by the admin CLI.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.UserInfo, error) {
	if req.Role != "" {
		if _, err := domainauth.ParseRole(string(req.Role)); err != nil {
			return nil, apperrors.ValidationField("role", "invalid authority")
		}
	}
	u, err := s.users.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.InfoContext(ctx, "user created", "user_id", u.ID, "authority", u.Authority)
	return u, nil
}

// Delete removes userID. Their entries go with them via ON DELETE CASCADE.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	deleted, err := s.users.Delete(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("user not found")
	}
	s.logger.InfoContext(ctx, "user deleted", "user_id", userID)
	return nil
}

func (s *UserService) notFound(err error) error {
	if apperrors.IsNotFound(err) {
		return err
	}
	return fmt.Errorf("get user: %w", err)
}
