package data

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domainauth "github.com/target/timetracker/internal/domain/auth"
	apperrors "github.com/target/timetracker/internal/errors"
	"github.com/target/timetracker/internal/testutil"
)

func newTestUserRepo(db *sql.DB) *UserRepo {
	return NewUserRepoWithCost(db, bcrypt.MinCost)
}

func TestUserRepo_CreateAndVerify(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := newTestUserRepo(db)
		ctx := context.Background()

		req := testutil.NewUserRequest().WithUsername("alice").WithPassword("Secret123").Build()
		u, err := repo.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, string(domainauth.RoleEmployee), u.Authority)

		id, ok, err := repo.VerifyCredentials(ctx, "alice", "Secret123")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, u.ID, id)

		_, ok, err = repo.VerifyCredentials(ctx, "alice", "wrong")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = repo.VerifyCredentials(ctx, "nobody", "Secret123")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestUserRepo_DuplicateUsernameIsConflict(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := newTestUserRepo(db)
		ctx := context.Background()

		_, err := repo.Create(ctx, testutil.NewUserRequest().WithUsername("bob").Build())
		require.NoError(t, err)

		_, err = repo.Create(ctx, testutil.NewUserRequest().WithUsername("bob").Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Equal(t, "username", apperrors.GetField(err))
	})
}

func TestUserRepo_Updates(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := newTestUserRepo(db)
		ctx := context.Background()

		u, err := repo.Create(ctx, testutil.NewUserRequest().Build())
		require.NoError(t, err)

		n, err := repo.UpdateRole(ctx, u.ID, domainauth.RoleAdministrator)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = repo.UpdateRole(ctx, u.ID+1000, domainauth.RoleAdministrator)
		require.NoError(t, err)
		assert.Zero(t, n)

		_, err = repo.UpdateRole(ctx, u.ID, domainauth.Role("GUEST"))
		require.ErrorIs(t, err, domainauth.ErrInvalidRole)

		_, err = repo.UpdateEmail(ctx, u.ID, "new@example.com")
		require.NoError(t, err)
		_, err = repo.UpdatePassword(ctx, u.ID, "NewPassword1")
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", got.Email)
		assert.Equal(t, string(domainauth.RoleAdministrator), got.Authority)

		ok, err := repo.CheckPassword(ctx, u.ID, "NewPassword1")
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = repo.GetByID(ctx, u.ID+1000)
		require.ErrorIs(t, err, ErrUserNotFound)

		deleted, err := repo.Delete(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestUserRepo_SeedFromFile(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := newTestUserRepo(db)
		ctx := context.Background()

		path := filepath.Join(t.TempDir(), "users.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
users:
  - username: admin
    email: admin@example.com
    password: Admin1234
    role: ADMINISTRATOR
  - username: worker
    email: worker@example.com
    password: Worker1234
`), 0o600))

		n, err := repo.SeedFromFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		// Re-seeding updates in place.
		n, err = repo.SeedFromFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "ADMINISTRATOR", users[0].Authority)
		assert.Equal(t, "EMPLOYEE", users[1].Authority)
	})
}

func TestParseSeedFile(t *testing.T) {
	_, err := ParseSeedFile([]byte("users:\n  - username: x\n    password: p\n    role: GUEST\n"))
	require.ErrorIs(t, err, domainauth.ErrInvalidRole)

	_, err = ParseSeedFile([]byte("users:\n  - username: x\n"))
	require.ErrorIs(t, err, ErrPasswordEmpty)

	_, err = ParseSeedFile([]byte("users:\n  - password: p\n"))
	require.ErrorIs(t, err, ErrUsernameInvalid)

	_, err = ParseSeedFile([]byte("users: [oops"))
	require.Error(t, err)

	sf, err := ParseSeedFile([]byte("users:\n  - username: x\n    password: p\n"))
	require.NoError(t, err)
	assert.Equal(t, "EMPLOYEE", sf.Users[0].Role)
}
