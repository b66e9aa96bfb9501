package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/target/timetracker/internal/domain/auth"
	apperrors "github.com/target/timetracker/internal/errors"
	"github.com/target/timetracker/internal/mocks"
)

func TestAccountService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("mismatch", func(t *testing.T) {
		svc := NewAccountService(AccountServiceOptions{Users: mocks.NewMockUserRepository(gomock.NewController(t))})
		err := svc.ChangePassword(ctx, 1, ChangePasswordInput{Current: "Old12345", New: "New12345", Confirm: "New54321"})
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "confirm_password", apperrors.GetField(err))
	})

	t.Run("same as current", func(t *testing.T) {
		svc := NewAccountService(AccountServiceOptions{Users: mocks.NewMockUserRepository(gomock.NewController(t))})
		err := svc.ChangePassword(ctx, 1, ChangePasswordInput{Current: "Old12345", New: "Old12345", Confirm: "Old12345"})
		assert.Equal(t, "new_password", apperrors.GetField(err))
	})

	t.Run("wrong current", func(t *testing.T) {
		users := mocks.NewMockUserRepository(gomock.NewController(t))
		users.EXPECT().CheckPassword(ctx, int64(1), "Wrong123").Return(false, nil)
		svc := NewAccountService(AccountServiceOptions{Users: users})

		err := svc.ChangePassword(ctx, 1, ChangePasswordInput{Current: "Wrong123", New: "New12345", Confirm: "New12345"})
		assert.Equal(t, "current_password", apperrors.GetField(err))
	})

	t.Run("success", func(t *testing.T) {
		users := mocks.NewMockUserRepository(gomock.NewController(t))
		users.EXPECT().CheckPassword(ctx, int64(1), "Old12345").Return(true, nil)
		users.EXPECT().UpdatePassword(ctx, int64(1), "New12345").Return(int64(1), nil)
		svc := NewAccountService(AccountServiceOptions{Users: users})

		require.NoError(t, svc.ChangePassword(ctx, 1, ChangePasswordInput{Current: "Old12345", New: "New12345", Confirm: "New12345"}))
	})
}

func TestAccountService_ChangeEmail(t *testing.T) {
	ctx := context.Background()
	current := domainauth.Identity{ID: 3, Username: "dora", Email: "dora@example.com", Role: domainauth.RoleEmployee}

	t.Run("same email", func(t *testing.T) {
		svc := NewAccountService(AccountServiceOptions{Users: mocks.NewMockUserRepository(gomock.NewController(t))})
		_, err := svc.ChangeEmail(ctx, current, "DORA@example.com")
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("conflict", func(t *testing.T) {
		users := mocks.NewMockUserRepository(gomock.NewController(t))
		users.EXPECT().UpdateEmail(ctx, int64(3), "taken@example.com").Return(int64(0), apperrors.Conflict("taken"))
		svc := NewAccountService(AccountServiceOptions{Users: users})

		_, err := svc.ChangeEmail(ctx, current, "taken@example.com")
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("success returns updated identity", func(t *testing.T) {
		users := mocks.NewMockUserRepository(gomock.NewController(t))
		users.EXPECT().UpdateEmail(ctx, int64(3), "new@example.com").Return(int64(1), nil)
		svc := NewAccountService(AccountServiceOptions{Users: users})

		got, err := svc.ChangeEmail(ctx, current, " new@example.com ")
		require.NoError(t, err)
		want := current
		want.Email = "new@example.com"
		assert.Equal(t, want, got)
	})
}
