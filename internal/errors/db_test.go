package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_ContextErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, wantCode: ErrCodeTimeout},
		{name: "canceled", err: context.Canceled, wantCode: ErrCodeCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.err)
			if !IsAppError(err, tt.wantCode) {
				t.Errorf("MapDBError() code = %v, want %v", GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("MapDBError(pgx.ErrNoRows) should be NotFound, got %v", GetCode(err))
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	tests := []struct {
		name      string
		pgErr     *pgconn.PgError
		wantField string
	}{
		{
			name:      "column name",
			pgErr:     &pgconn.PgError{Code: pgerrcode.UniqueViolation, ColumnName: "username"},
			wantField: "username",
		},
		{
			name:      "detail",
			pgErr:     &pgconn.PgError{Code: pgerrcode.UniqueViolation, Detail: "Key (email)=(a@b.de) already exists."},
			wantField: "email",
		},
		{
			name:      "constraint name",
			pgErr:     &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"},
			wantField: "email",
		},
		{
			name:      "unknown",
			pgErr:     &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "weird_multi_part_key"},
			wantField: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.pgErr)
			if !IsConflict(err) {
				t.Fatalf("MapDBError() code = %v, want conflict", GetCode(err))
			}
			if got := GetField(err); got != tt.wantField {
				t.Errorf("GetField() = %q, want %q", got, tt.wantField)
			}
			var pgErr *pgconn.PgError
			if !errors.As(err, &pgErr) {
				t.Error("cause should remain reachable")
			}
		})
	}
}

func TestMapDBError_OtherCodes(t *testing.T) {
	tests := []struct {
		code     string
		wantCode ErrorCode
	}{
		{pgerrcode.ForeignKeyViolation, ErrCodeForeignKey},
		{pgerrcode.CheckViolation, ErrCodeValidation},
		{pgerrcode.NotNullViolation, ErrCodeValidation},
		{pgerrcode.DeadlockDetected, ErrCodeInternal},
	}

	for _, tt := range tests {
		err := MapDBError(&pgconn.PgError{Code: tt.code})
		if GetCode(err) != tt.wantCode {
			t.Errorf("MapDBError(%s) code = %v, want %v", tt.code, GetCode(err), tt.wantCode)
		}
	}
}

func TestMapDBError_Passthrough(t *testing.T) {
	plain := errors.New("plain")
	if got := MapDBError(plain); got != plain {
		t.Errorf("MapDBError() = %v, want original error", got)
	}
}
