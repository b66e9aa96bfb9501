package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// MinPasswordLength is the minimum length accepted by StrongPassword.
const MinPasswordLength = 8

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Required validates that a field is not empty and does not exceed maxLen characters.
// Uses rune count for proper Unicode support.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// StrongPassword requires at least MinPasswordLength characters with a lowercase letter,
// an uppercase letter and a digit.
func StrongPassword(fieldName string) Validator {
	return func(v string) string {
		var lower, upper, digit bool
		for _, r := range v {
			switch {
			case unicode.IsLower(r):
				lower = true
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		if utf8.RuneCountInString(v) < MinPasswordLength || !lower || !upper || !digit {
			return fmt.Sprintf("%s must be at least %d characters and contain a lowercase letter, an uppercase letter and a digit.",
				fieldName, MinPasswordLength)
		}
		return ""
	}
}

// Email validates a plain address of the form local@domain.tld.
func Email(fieldName string) Validator {
	return func(v string) string {
		if !emailRe.MatchString(strings.TrimSpace(v)) {
			return fieldName + " is not a valid email address."
		}
		return ""
	}
}

// OneOf validates that a field matches one of the provided options exactly.
func OneOf(fieldName string, options []string) Validator {
	return func(v string) string {
		for _, opt := range options {
			if v == opt {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(options, ", "))
	}
}

// FieldValidator provides a fluent API for validating multiple fields.
type FieldValidator struct {
	errors map[string]string
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate validates a field with one or more validators.
// It stops at the first error for each field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if msg := v(value); msg != "" {
			fv.errors[field] = msg
			break
		}
	}
	return fv
}

// Errors returns the accumulated validation errors.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}

// First returns one error message, preferring the earliest of fields, or "" when valid.
func (fv *FieldValidator) First(fields ...string) string {
	for _, f := range fields {
		if msg, ok := fv.errors[f]; ok {
			return msg
		}
	}
	for _, msg := range fv.errors {
		return msg
	}
	return ""
}
