package apperror

import (
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes.
const (
	pgUniqueViolation = "23505"
	pgUndefinedColumn = "42703"
)

// MySQL server error numbers.
const (
	mysqlDuplicateEntry = 1062
	mysqlBadField       = 1054
)

// IsUniqueViolation reports whether err is a unique-constraint failure from
// any supported store.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	msg := strings.ToLower(err.Error())
	// sqlite, then sqlserver and untyped postgres messages.
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key")
}

// IsMissingColumn reports whether err says column does not exist.
func IsMissingColumn(err error, column string) bool {
	if err == nil {
		return false
	}
	column = strings.ToLower(column)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedColumn && strings.Contains(strings.ToLower(pgErr.Message), column)
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlBadField && strings.Contains(strings.ToLower(myErr.Message), column)
	}

	msg := strings.ToLower(err.Error())
	// sqlite, sqlserver and untyped postgres messages.
	for _, pattern := range []string{
		"no column named " + column,
		"no such column: " + column,
		"invalid column name '" + column + "'",
		`column "` + column + `" of relation`,
		`column "` + column + `" does not exist`,
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
