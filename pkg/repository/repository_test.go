package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	errNotFound  = errors.New("record not found")
	errDuplicate = errors.New("record already exists")
)

func TestMapErrorNil(t *testing.T) {
	if got := MapError(nil, errNotFound, errDuplicate); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapErrorNoRows(t *testing.T) {
	got := MapError(sql.ErrNoRows, errNotFound, errDuplicate)
	if !errors.Is(got, errNotFound) {
		t.Errorf("MapError(ErrNoRows) = %v, want %v", got, errNotFound)
	}
}

func TestMapErrorWrappedNoRows(t *testing.T) {
	wrapped := fmt.Errorf("query failed: %w", sql.ErrNoRows)
	got := MapError(wrapped, errNotFound, errDuplicate)
	if !errors.Is(got, errNotFound) {
		t.Errorf("MapError(wrapped ErrNoRows) = %v, want %v", got, errNotFound)
	}
}

func TestMapErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "widgets_name_key"}
	got := MapError(pgErr, errNotFound, errDuplicate)
	if !errors.Is(got, errDuplicate) {
		t.Errorf("MapError(23505) = %v, want %v", got, errDuplicate)
	}
}

func TestMapErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "tasks_agent_id_fkey"}
	got := MapError(pgErr, errNotFound, errDuplicate)
	if !errors.Is(got, ErrReferenced) {
		t.Errorf("MapError(23503) = %v, want ErrReferenced", got)
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	boom := errors.New("connection reset")
	got := MapError(boom, errNotFound, errDuplicate)
	if !errors.Is(got, boom) {
		t.Errorf("MapError(other) = %v, want %v", got, boom)
	}
}
