package apperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

// Columns maps Postgres constraint names to the field they guard, so that a
// violation can be reported against the field the caller sent.
type Columns map[string]string

// FromPg maps constraint violations and out-of-range numbers raised by
// Postgres onto the taxonomy. Other errors are returned unchanged.
func FromPg(entity string, cols Columns, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	field := cols[pgErr.ConstraintName]
	if field == "" {
		field = pgErr.ColumnName
	}

	if field == "" {
		field = pgErr.ConstraintName
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return &ConflictError{Entity: entity, Field: field}
	case pgForeignKeyViolation:
		return &ReferenceError{Entity: entity, Field: field}
	case pgCheckViolation:
		return Invalid(entity, field, "violates "+pgErr.ConstraintName)
	case pgNumericOutOfRange:
		if field == "" {
			field = "value"
		}

		return Invalid(entity, field, "out of range")
	default:
		return err
	}
}
