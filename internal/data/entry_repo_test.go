package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/timetracker/internal/domain/model"
	apperrors "github.com/target/timetracker/internal/errors"
	"github.com/target/timetracker/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestTimeEntryRepo_CRUDScopedToOwner(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		users := newTestUserRepo(db)
		owner, err := users.Create(ctx, testutil.NewUserRequest().Build())
		require.NoError(t, err)
		other, err := users.Create(ctx, testutil.NewUserRequest().Build())
		require.NoError(t, err)

		repo := NewTimeEntryRepo(db)
		created, err := repo.Create(ctx, owner.ID, model.TimeEntry{
			Task: ptr("review"), SpentTime: ptr(int64(90)), Date: ptr("2024-03-01"),
		})
		require.NoError(t, err)
		require.NotNil(t, created.ID)

		_, err = repo.Create(ctx, owner.ID, model.TimeEntry{SpentTime: ptr(int64(-1))})
		assert.True(t, apperrors.IsValidation(err))

		list, err := repo.ListByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, int64(90), *list[0].SpentTime)

		updated, err := repo.Update(ctx, other.ID, model.TimeEntry{ID: created.ID, SpentTime: ptr(int64(5))})
		require.NoError(t, err)
		assert.False(t, updated, "other user must not edit the entry")

		updated, err = repo.Update(ctx, owner.ID, model.TimeEntry{ID: created.ID, SpentTime: ptr(int64(30)), Task: ptr("fix")})
		require.NoError(t, err)
		assert.True(t, updated)

		deleted, err := repo.Delete(ctx, other.ID, *created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = repo.Delete(ctx, owner.ID, *created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestAbsenceEntryRepo_CRUD(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		owner, err := newTestUserRepo(db).Create(ctx, testutil.NewUserRequest().Build())
		require.NoError(t, err)

		repo := NewAbsenceEntryRepo(db)
		created, err := repo.Create(ctx, owner.ID, model.AbsenceEntry{AbsenceDate: "2024-04-02", Reason: ptr("sick")})
		require.NoError(t, err)

		_, err = repo.Create(ctx, owner.ID, model.AbsenceEntry{AbsenceDate: "02.04.2024"})
		assert.True(t, apperrors.IsValidation(err))

		updated, err := repo.Update(ctx, owner.ID, model.AbsenceEntry{ID: created.ID, AbsenceDate: "2024-04-03"})
		require.NoError(t, err)
		assert.True(t, updated)

		list, err := repo.ListByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "2024-04-03", list[0].AbsenceDate)
		assert.Nil(t, list[0].Reason)

		deleted, err := repo.Delete(ctx, owner.ID, *created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}
