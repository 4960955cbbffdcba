package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isDuplicateKeyError reports a unique violation whose constraint mentions column.
func isDuplicateKeyError(err error, column string) bool {
	return isPgError(err, pgUniqueViolation, column)
}

// isForeignKeyError reports a foreign key violation whose constraint mentions column.
func isForeignKeyError(err error, column string) bool {
	return isPgError(err, pgForeignKeyViolation, column)
}

func isPgError(err error, code, column string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return strings.Contains(pgErr.ConstraintName, column) || strings.Contains(pgErr.Detail, column)
}
