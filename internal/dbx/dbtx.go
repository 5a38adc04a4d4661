// Package dbx provides tiny database/sql helpers shared by the PostgreSQL
// repositories: the DBTX handle interface, id validation and error mapping.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// ParseID checks that id is a UUID, the primary key type of every table.
func ParseID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrMalformedID
	}
	return nil
}

// UUIDArray renders ids as a PostgreSQL array literal for use with
// "= ANY($n::uuid[])". Every id must already have passed ParseID.
func UUIDArray(ids []string) string {
	return "{" + strings.Join(ids, ",") + "}"
}

// SplitIDs parses the comma separated list produced by string_agg. An empty
// input yields an empty, non-nil slice.
func SplitIDs(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
