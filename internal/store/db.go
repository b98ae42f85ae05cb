package store

import (
	"context"
	"database/sql"
)

// DBTX abstracts the database handle so store implementations run the same
// queries against *sql.DB or *sql.Tx. The routine and assignment stores use
// this to participate in the multi-row transactions behind cascading
// deletes and batch inserts.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
