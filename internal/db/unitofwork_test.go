package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/cityplan/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

// setCurrent writes the current-plan pointer the way the selection repo does.
func setCurrent(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO app_state (key, value) VALUES ('current_plan_id', ?)`, id)
	return err
}

func currentID(t *testing.T, database *sql.DB) (string, bool) {
	t.Helper()
	var id string
	err := database.QueryRow(`SELECT value FROM app_state WHERE key = 'current_plan_id'`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	require.NoError(t, err)
	return id, true
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return setCurrent(ctx, tx, "plan-1")
	})
	require.NoError(t, err)

	id, found := currentID(t, database)
	assert.True(t, found, "pointer should exist after commit")
	assert.Equal(t, "plan-1", id)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := setCurrent(ctx, tx, "plan-2"); err != nil {
			return err
		}
		return errors.New("deliberate failure")
	})
	require.Error(t, err)
	assert.EqualError(t, err, "deliberate failure")

	_, found := currentID(t, database)
	assert.False(t, found, "pointer should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := newUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = setCurrent(ctx, tx, "plan-3")
			panic("boom")
		})
	})

	_, found := currentID(t, database)
	assert.False(t, found, "pointer should not exist after panic rollback")
}

func TestWithinTx_CancelledContextDoesNotCommit(t *testing.T) {
	database, uow := newUoW(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := setCurrent(ctx, tx, "plan-4"); err != nil {
			return err
		}
		cancel()
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	_, found := currentID(t, database)
	assert.False(t, found)
}

func TestWithinTx_PoolUsableAfterRollback(t *testing.T) {
	database, uow := newUoW(t)

	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return errors.New("fail")
	})

	// The single in-memory connection must have been released.
	require.NoError(t, uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return setCurrent(ctx, tx, "plan-5")
	}))
	id, _ := currentID(t, database)
	assert.Equal(t, "plan-5", id)
}
