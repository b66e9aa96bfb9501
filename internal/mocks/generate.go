// Package mocks provides mock implementations for testing the timetracker services and handlers.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the repository and auth ports.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(user, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
// VerifyCredentials, GetByID, List, Create, Delete, UpdateRole, UpdateEmail, UpdatePassword, CheckPassword
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/target/timetracker/internal/core UserRepository

// Generate mock for TimeEntryRepository interface from internal/core package.
// Create, ListByUser, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=time_entry_repository_mock.go github.com/target/timetracker/internal/core TimeEntryRepository

// Generate mock for AbsenceEntryRepository interface from internal/core package.
// Create, ListByUser, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=absence_entry_repository_mock.go github.com/target/timetracker/internal/core AbsenceEntryRepository

// Generate mock for LoginThrottle interface from internal/ports package.
// Allow, Fail, Reset
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=login_throttle_mock.go github.com/target/timetracker/internal/ports LoginThrottle
