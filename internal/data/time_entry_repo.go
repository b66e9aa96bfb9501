package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/target/timetracker/internal/data/pgxutil"
	"github.com/target/timetracker/internal/domain/model"
	apperrors "github.com/target/timetracker/internal/errors"
)

const timeEntryColumns = `id, task, spent_time, date`

// TimeEntryRepo provides database operations for time entries.
type TimeEntryRepo struct {
	DB *sql.DB
}

// NewTimeEntryRepo creates a new TimeEntryRepo.
func NewTimeEntryRepo(db *sql.DB) *TimeEntryRepo {
	return &TimeEntryRepo{DB: db}
}

// Create inserts a time entry owned by userID.
func (r *TimeEntryRepo) Create(ctx context.Context, userID int64, e model.TimeEntry) (*model.TimeEntry, error) {
	if err := e.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	var out model.TimeEntry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO time_entries (user_id, task, spent_time, date)
			VALUES ($1, $2, $3, $4)
			RETURNING `+timeEntryColumns,
			userID, e.Task, e.SpentTime, e.Date,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TimeEntry])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByUser returns the time entries of userID ordered by date then id.
func (r *TimeEntryRepo) ListByUser(ctx context.Context, userID int64) ([]model.TimeEntry, error) {
	var out []model.TimeEntry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+timeEntryColumns+` FROM time_entries
			WHERE user_id = $1
			ORDER BY date NULLS LAST, id`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.TimeEntry])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	return out, nil
}

// Update overwrites task, spent time and date of an entry owned by userID.
// It reports false when no such entry exists for that user.
func (r *TimeEntryRepo) Update(ctx context.Context, userID int64, e model.TimeEntry) (bool, error) {
	if err := e.ValidateForUpdate(); err != nil {
		return false, apperrors.Validation(err.Error())
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE time_entries SET task = $1, spent_time = $2, date = $3
		WHERE id = $4 AND user_id = $5`,
		e.Task, *e.SpentTime, e.Date, *e.ID, userID,
	)
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return affected(res)
}

// Delete removes an entry owned by userID.
func (r *TimeEntryRepo) Delete(ctx context.Context, userID, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM time_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete time entry: %w", err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
