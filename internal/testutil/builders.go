package testutil

import (
	"fmt"
	"sync/atomic"

	domainauth "github.com/target/timetracker/internal/domain/auth"
	"github.com/target/timetracker/internal/domain/model"
)

var userSeq atomic.Int64

// UserRequestBuilder provides a fluent interface for building CreateUserRequest objects for testing.
type UserRequestBuilder struct {
	req model.CreateUserRequest
}

// NewUserRequest creates a builder with a unique username and email and a strong password.
func NewUserRequest() *UserRequestBuilder {
	n := userSeq.Add(1)
	return &UserRequestBuilder{
		req: model.CreateUserRequest{
			Username: fmt.Sprintf("user%d", n),
			Email:    fmt.Sprintf("user%d@example.com", n),
			Password: "Password123",
			Role:     domainauth.RoleEmployee,
		},
	}
}

// WithUsername sets the username.
func (b *UserRequestBuilder) WithUsername(username string) *UserRequestBuilder {
	b.req.Username = username
	return b
}

// WithPassword sets the plaintext password.
func (b *UserRequestBuilder) WithPassword(password string) *UserRequestBuilder {
	b.req.Password = password
	return b
}

// AsAdministrator sets the ADMINISTRATOR role.
func (b *UserRequestBuilder) AsAdministrator() *UserRequestBuilder {
	b.req.Role = domainauth.RoleAdministrator
	return b
}

// Build returns the constructed request.
func (b *UserRequestBuilder) Build() model.CreateUserRequest {
	return b.req
}

// Employee returns a session identity with the EMPLOYEE role.
func Employee(id int64) domainauth.Identity {
	return domainauth.Identity{
		ID:       id,
		Username: fmt.Sprintf("employee%d", id),
		Email:    fmt.Sprintf("employee%d@example.com", id),
		Role:     domainauth.RoleEmployee,
	}
}

// Administrator returns a session identity with the ADMINISTRATOR role.
func Administrator(id int64) domainauth.Identity {
	return domainauth.Identity{
		ID:       id,
		Username: fmt.Sprintf("admin%d", id),
		Email:    fmt.Sprintf("admin%d@example.com", id),
		Role:     domainauth.RoleAdministrator,
	}
}
