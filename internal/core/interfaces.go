package core

import (
	"context"

	domainauth "github.com/target/timetracker/internal/domain/auth"
	"github.com/target/timetracker/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Service implementations depend on these interfaces, not on the concrete Postgres repositories.

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// VerifyCredentials returns the user id when username exists and password matches its hash.
	// ok is false for an unknown user or a wrong password; err is reserved for store failures.
	VerifyCredentials(ctx context.Context, username, password string) (id int64, ok bool, err error)
	GetByID(ctx context.Context, id int64) (*model.UserInfo, error)
	List(ctx context.Context) ([]*model.UserInfo, error)
	Create(ctx context.Context, req model.CreateUserRequest) (*model.UserInfo, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// UpdateRole returns the number of affected rows.
	UpdateRole(ctx context.Context, id int64, role domainauth.Role) (int64, error)
	UpdateEmail(ctx context.Context, id int64, email string) (int64, error)
	// UpdatePassword hashes password before storing it.
	UpdatePassword(ctx context.Context, id int64, password string) (int64, error)
	CheckPassword(ctx context.Context, id int64, password string) (bool, error)
}

// TimeEntryRepository defines the interface for time entry data operations.
// Every operation is scoped to the owning user.
type TimeEntryRepository interface {
	Create(ctx context.Context, userID int64, entry model.TimeEntry) (*model.TimeEntry, error)
	ListByUser(ctx context.Context, userID int64) ([]model.TimeEntry, error)
	Update(ctx context.Context, userID int64, entry model.TimeEntry) (bool, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

// AbsenceEntryRepository defines the interface for absence entry data operations.
// Every operation is scoped to the owning user.
type AbsenceEntryRepository interface {
	Create(ctx context.Context, userID int64, entry model.AbsenceEntry) (*model.AbsenceEntry, error)
	ListByUser(ctx context.Context, userID int64) ([]model.AbsenceEntry, error)
	Update(ctx context.Context, userID int64, entry model.AbsenceEntry) (bool, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}
