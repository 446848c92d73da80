package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/cityplan/internal/db"
)

// FailOnNthExecUoW is a UnitOfWork that fails the Nth write inside a
// transaction, for checking that submit and import leave the collection,
// the current pointer and the draft untouched on failure.
//
// Writes are counted from 1 per transaction. Reads pass through.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	// Committed counts transactions that reached Commit.
	Committed atomic.Int32
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	u.Committed.Add(1)
	return nil
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, fmt.Errorf("write %d (%s): %w", f.failOn, firstWord(query), f.err)
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func firstWord(query string) string {
	for i, r := range query {
		if r == ' ' || r == '\n' || r == '\t' {
			return query[:i]
		}
	}
	return query
}
