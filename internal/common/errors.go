package common

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrConflict       = errors.New("resource conflict") // e.g., user already registered
	ErrValidation     = errors.New("validation failed")
	ErrMemberNotFound = errors.New("user is not a member of the chat")
	ErrNoActiveForm   = errors.New("no active submission form")
	ErrInvalidAction  = errors.New("action not allowed at this step")
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err carries a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
