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

const absenceEntryColumns = `id, absence_date, reason`

// AbsenceEntryRepo provides database operations for absence entries.
type AbsenceEntryRepo struct {
	DB *sql.DB
}

// NewAbsenceEntryRepo creates a new AbsenceEntryRepo.
func NewAbsenceEntryRepo(db *sql.DB) *AbsenceEntryRepo {
	return &AbsenceEntryRepo{DB: db}
}

// Create inserts an absence entry owned by userID.
func (r *AbsenceEntryRepo) Create(ctx context.Context, userID int64, e model.AbsenceEntry) (*model.AbsenceEntry, error) {
	if err := e.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	var out model.AbsenceEntry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO absence_entries (user_id, absence_date, reason)
			VALUES ($1, $2, $3)
			RETURNING `+absenceEntryColumns,
			userID, e.AbsenceDate, e.Reason,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AbsenceEntry])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByUser returns the absences of userID ordered by date then id.
func (r *AbsenceEntryRepo) ListByUser(ctx context.Context, userID int64) ([]model.AbsenceEntry, error) {
	var out []model.AbsenceEntry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+absenceEntryColumns+` FROM absence_entries
			WHERE user_id = $1
			ORDER BY absence_date, id`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.AbsenceEntry])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list absence entries: %w", err)
	}
	return out, nil
}

// Update overwrites date and reason of an absence owned by userID.
func (r *AbsenceEntryRepo) Update(ctx context.Context, userID int64, e model.AbsenceEntry) (bool, error) {
	if err := e.ValidateForUpdate(); err != nil {
		return false, apperrors.Validation(err.Error())
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE absence_entries SET absence_date = $1, reason = $2
		WHERE id = $3 AND user_id = $4`,
		e.AbsenceDate, e.Reason, *e.ID, userID,
	)
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return affected(res)
}

// Delete removes an absence owned by userID.
func (r *AbsenceEntryRepo) Delete(ctx context.Context, userID, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM absence_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete absence entry: %w", err)
	}
	return affected(res)
}
