package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced to callers so handlers can map uniqueness
// violations to 400 and missing ids to 404 instead of a generic 500.
var (
	ErrDuplicateStudent = errors.New("student with this roll or email already exists")
	ErrNotFound         = errors.New("record not found")
)

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
