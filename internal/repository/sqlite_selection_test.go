package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/cityplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionRepo_EmptyByDefault(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSelectionRepo(db)

	id, err := repo.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", id)
}

func TestSelectionRepo_SetCurrentOverwrites(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSelectionRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.SetCurrent(ctx, "first"))
	require.NoError(t, repo.SetCurrent(ctx, "second"))

	id, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", id)
}

func TestSelectionRepo_Clear(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSelectionRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.SetCurrent(ctx, "abc"))
	require.NoError(t, repo.Clear(ctx))
	// Clearing twice is harmless.
	require.NoError(t, repo.Clear(ctx))

	id, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", id)
}
