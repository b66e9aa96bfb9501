package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	v := Required("Task", 5)
	assert.Equal(t, "Task is required.", v("   "))
	assert.Equal(t, "Task cannot exceed 5 characters.", v("toolong"))
	assert.Empty(t, v("ok"))
}

func TestStrongPassword(t *testing.T) {
	v := StrongPassword("Password")

	tests := []struct {
		value string
		ok    bool
	}{
		{"Abcdefg1", true},
		{"Äbcdefg1", true},
		{"abcdefg1", false},
		{"ABCDEFG1", false},
		{"Abcdefgh", false},
		{"Abc1", false},
		{"", false},
	}
	for _, tt := range tests {
		got := v(tt.value)
		if tt.ok {
			assert.Empty(t, got, tt.value)
		} else {
			assert.NotEmpty(t, got, tt.value)
		}
	}
}

func TestEmail(t *testing.T) {
	v := Email("Email")

	for _, ok := range []string{"a@b.de", "first.last+tag@sub.example.com", "x_y%z@host.io"} {
		assert.Empty(t, v(ok), ok)
	}
	for _, bad := range []string{"", "plain", "a@b", "a@b.c", "a b@c.de", "@example.com"} {
		assert.Equal(t, "Email is not a valid email address.", v(bad), bad)
	}
}

func TestOneOf(t *testing.T) {
	v := OneOf("Authority", []string{"EMPLOYEE", "ADMINISTRATOR"})
	assert.Empty(t, v("EMPLOYEE"))
	assert.NotEmpty(t, v("employee"))
}

func TestFieldValidator(t *testing.T) {
	fv := New().
		Validate("email", "nope", Email("Email")).
		Validate("password", "Password1", StrongPassword("Password"))

	assert.Len(t, fv.Errors(), 1)
	assert.Equal(t, "Email is not a valid email address.", fv.First("password", "email"))
	assert.Empty(t, New().First("x"))
}
