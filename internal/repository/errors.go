package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolationCode is the Postgres SQLSTATE for unique_violation
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is the storage layer's uniqueness-violation signal.
// gorm translates it to ErrDuplicatedKey when TranslateError is on; otherwise the raw
// pgconn error carries the SQLSTATE.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}
