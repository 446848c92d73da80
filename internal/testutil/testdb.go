package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/cityplan/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory plan store that is closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openMigrated(t, db.MemoryPath)
}

// NewFileTestDB opens a migrated plan store in a temp directory. Unlike the
// in-memory store it keeps a real connection pool, so per-connection pragmas
// matter.
func NewFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openMigrated(t, filepath.Join(t.TempDir(), "plans", "cityplan.db"))
}

func openMigrated(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening plan store at %s", path)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW wraps database in the SQLite unit of work used by the services.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
