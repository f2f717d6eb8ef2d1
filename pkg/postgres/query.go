package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// NamedGet binds :name parameters from arg and scans a single row into dest.
func NamedGet(ctx context.Context, q Queryer, dest interface{}, query string, arg interface{}) error {
	bound, args, err := sqlx.Named(query, arg)
	if err != nil {
		return err
	}
	return q.GetContext(ctx, dest, q.Rebind(bound), args...)
}

// NamedSelect binds :name parameters from arg and scans all rows into dest.
func NamedSelect(ctx context.Context, q Queryer, dest interface{}, query string, arg interface{}) error {
	bound, args, err := sqlx.Named(query, arg)
	if err != nil {
		return err
	}
	return q.SelectContext(ctx, dest, q.Rebind(bound), args...)
}

// Where joins conditions into a WHERE clause, or returns "" when empty.
func Where(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

// Paginate appends LIMIT/OFFSET for a 1-based page. pageSize <= 0 means no limit.
func Paginate(query string, page, pageSize int) string {
	if pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	return query + fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, offset)
}

// IsUniqueViolation reports whether err is a unique_violation (23505).
func IsUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// IsCheckViolation reports whether err is a check_violation (23514).
func IsCheckViolation(err error) bool {
	return hasCode(err, "23514")
}

// IsForeignKeyViolation reports whether err is a foreign_key_violation (23503).
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}
