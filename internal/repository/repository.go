package repository

import (
	"context"
	"database/sql"
	"strings"

	"quizbank/internal/dto"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// pageBounds resolves limit and offset; a page number wins over a zero offset.
func pageBounds(p dto.Pagination) (limit, offset int) {
	limit = p.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset = p.Offset
	if offset <= 0 && p.Page > 1 {
		offset = (p.Page - 1) * limit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// isUniqueViolation recognises duplicate key errors of sqlite, postgres and oracle.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "ORA-00001")
}
