package db

import (
	"context"
	"database/sql"
)

// DBTX is what the plan, selection and draft repositories query through.
// Both *sql.DB and *sql.Tx satisfy it, so a repository built inside
// WithinTx joins the surrounding transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
