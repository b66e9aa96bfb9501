package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/target/timetracker/internal/domain/auth"
	"github.com/target/timetracker/internal/domain/model"
	apperrors "github.com/target/timetracker/internal/errors"
	"github.com/target/timetracker/internal/mocks"
)

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	users := mocks.NewMockUserRepository(ctrl)
	throttle := mocks.NewMockLoginThrottle(ctrl)
	svc := NewAuthService(AuthServiceOptions{Users: users, Throttle: throttle})

	throttle.EXPECT().Allow(ctx, "alice").Return(true, nil)
	users.EXPECT().VerifyCredentials(ctx, "alice", "Secret123").Return(int64(7), true, nil)
	users.EXPECT().GetByID(ctx, int64(7)).Return(&model.UserInfo{
		ID: 7, Username: "alice", Email: "alice@example.com", Authority: "ADMINISTRATOR",
	}, nil)
	throttle.EXPECT().Reset(ctx, "alice").Return(nil)

	id, err := svc.Login(ctx, " alice ", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, domainauth.Identity{
		ID: 7, Username: "alice", Email: "alice@example.com", Role: domainauth.RoleAdministrator,
	}, id)
}

func TestAuthService_Login_WrongPasswordRecordsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	users := mocks.NewMockUserRepository(ctrl)
	throttle := mocks.NewMockLoginThrottle(ctrl)
	svc := NewAuthService(AuthServiceOptions{Users: users, Throttle: throttle})

	throttle.EXPECT().Allow(ctx, "alice").Return(true, nil)
	users.EXPECT().VerifyCredentials(ctx, "alice", "nope").Return(int64(0), false, nil)
	throttle.EXPECT().Fail(ctx, "alice").Return(nil)

	_, err := svc.Login(ctx, "alice", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
}

func TestAuthService_Login_Throttled(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	users := mocks.NewMockUserRepository(ctrl)
	throttle := mocks.NewMockLoginThrottle(ctrl)
	svc := NewAuthService(AuthServiceOptions{Users: users, Throttle: throttle})

	throttle.EXPECT().Allow(ctx, "alice").Return(false, nil)
	users.EXPECT().VerifyCredentials(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Login(ctx, "alice", "Secret123")
	require.ErrorIs(t, err, ErrLoginThrottled)
}

func TestAuthService_Login_ThrottleDownFailsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	users := mocks.NewMockUserRepository(ctrl)
	throttle := mocks.NewMockLoginThrottle(ctrl)
	svc := NewAuthService(AuthServiceOptions{Users: users, Throttle: throttle})

	redisDown := errors.New("connection refused")
	throttle.EXPECT().Allow(ctx, "bob").Return(false, redisDown)
	users.EXPECT().VerifyCredentials(ctx, "bob", "Secret123").Return(int64(2), true, nil)
	users.EXPECT().GetByID(ctx, int64(2)).Return(&model.UserInfo{ID: 2, Username: "bob", Authority: "EMPLOYEE"}, nil)
	throttle.EXPECT().Reset(ctx, "bob").Return(redisDown)

	id, err := svc.Login(ctx, "bob", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id.ID)
}

func TestAuthService_Login_NoThrottleAndEmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	users := mocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(AuthServiceOptions{Users: users})

	_, err := svc.Login(ctx, "   ", "x")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	storeErr := errors.New("db down")
	users.EXPECT().VerifyCredentials(ctx, "carol", "x").Return(int64(0), false, storeErr)
	_, err = svc.Login(ctx, "carol", "x")
	require.ErrorIs(t, err, storeErr)
}

func TestNewAuthService_PanicsWithoutUsers(t *testing.T) {
	assert.Panics(t, func() { NewAuthService(AuthServiceOptions{}) })
}
