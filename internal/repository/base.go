// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes of interest.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Repositories check for duplicates up front, but under concurrent
// writes the database index is the final arbiter.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// isForeignKeyViolation reports whether err is a Postgres foreign-key
// violation, e.g. deleting a catalog row still referenced by a listing.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
