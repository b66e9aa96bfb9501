package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/target/timetracker/internal/data/pgxutil"
	domainauth "github.com/target/timetracker/internal/domain/auth"
	"github.com/target/timetracker/internal/domain/model"
	apperrors "github.com/target/timetracker/internal/errors"
)

const userColumns = `id, username, email, authority`

// dummyHash is compared against when the username is unknown so both paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)

// UserRepo provides database operations for users.
type UserRepo struct {
	DB   *sql.DB
	cost int
}

// NewUserRepo creates a new UserRepo hashing with bcrypt.DefaultCost.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, cost: bcrypt.DefaultCost}
}

// NewUserRepoWithCost creates a UserRepo with a custom bcrypt cost (useful for tests).
func NewUserRepoWithCost(db *sql.DB, cost int) *UserRepo {
	return &UserRepo{DB: db, cost: cost}
}

func (r *UserRepo) hash(password string) (string, error) {
	if password == "" {
		return "", ErrPasswordEmpty
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// VerifyCredentials checks username and password against the stored bcrypt hash.
func (r *UserRepo) VerifyCredentials(ctx context.Context, username, password string) (int64, bool, error) {
	var (
		id   int64
		hash string
	)
	err := r.DB.QueryRowContext(ctx, `SELECT id, password FROM users WHERE username = $1`, username).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to load credentials: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return 0, false, nil
	}
	return id, true, nil
}

// CheckPassword reports whether password matches the stored hash of user id.
func (r *UserRepo) CheckPassword(ctx context.Context, id int64, password string) (bool, error) {
	var hash string
	err := r.DB.QueryRowContext(ctx, `SELECT password FROM users WHERE id = $1`, id).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, apperrors.Wrap(ErrUserNotFound, apperrors.ErrCodeNotFound, "user not found")
	}
	if err != nil {
		return false, fmt.Errorf("failed to load password hash: %w", err)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil, nil
}

// GetByID retrieves a user profile by ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.UserInfo, error) {
	var out model.UserInfo
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.UserInfo])
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.Wrap(ErrUserNotFound, apperrors.ErrCodeNotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &out, nil
}

// List retrieves all users ordered by ID.
func (r *UserRepo) List(ctx context.Context) ([]*model.UserInfo, error) {
	var rowsOut []model.UserInfo
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.UserInfo])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	res := make([]*model.UserInfo, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Create inserts a new user with a bcrypt-hashed password. An empty role defaults to EMPLOYEE.
func (r *UserRepo) Create(ctx context.Context, req model.CreateUserRequest) (*model.UserInfo, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrUsernameInvalid
	}
	role := req.Role
	if role == "" {
		role = domainauth.DefaultRole
	}
	if _, err := domainauth.ParseRole(string(role)); err != nil {
		return nil, err
	}
	hash, err := r.hash(req.Password)
	if err != nil {
		return nil, err
	}

	var out model.UserInfo
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			INSERT INTO users (username, email, password, authority)
			VALUES ($1, $2, $3, $4)
			RETURNING `+userColumns,
			username, strings.TrimSpace(req.Email), hash, string(role),
		)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.UserInfo])
		return qerr
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a user and, by cascade, their entries.
func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateRole sets the authority of user id and returns the affected row count.
func (r *UserRepo) UpdateRole(ctx context.Context, id int64, role domainauth.Role) (int64, error) {
	if _, err := domainauth.ParseRole(string(role)); err != nil {
		return 0, err
	}
	return r.exec(ctx, `UPDATE users SET authority = $1 WHERE id = $2`, string(role), id)
}

// UpdateEmail sets the email of user id and returns the affected row count.
func (r *UserRepo) UpdateEmail(ctx context.Context, id int64, email string) (int64, error) {
	return r.exec(ctx, `UPDATE users SET email = $1 WHERE id = $2`, strings.TrimSpace(email), id)
}

// UpdatePassword hashes password, stores it for user id and returns the affected row count.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, password string) (int64, error) {
	hash, err := r.hash(password)
	if err != nil {
		return 0, err
	}
	return r.exec(ctx, `UPDATE users SET password = $1 WHERE id = $2`, hash, id)
}

func (r *UserRepo) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return res.RowsAffected()
}
