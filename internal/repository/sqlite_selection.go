package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cityplan/internal/db"
)

const currentPlanKey = "current_plan_id"

// SQLiteSelectionRepo implements SelectionRepo on the app_state table.
type SQLiteSelectionRepo struct {
	db db.DBTX
}

// NewSQLiteSelectionRepo creates a new SQLiteSelectionRepo.
func NewSQLiteSelectionRepo(conn db.DBTX) *SQLiteSelectionRepo {
	return &SQLiteSelectionRepo{db: conn}
}

// Current returns the stored plan id, or "" when none is set.
func (r *SQLiteSelectionRepo) Current(ctx context.Context) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, currentPlanKey).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("reading current plan: %w", err)
	}
	return id, nil
}

func (r *SQLiteSelectionRepo) SetCurrent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?)`, currentPlanKey, id)
	if err != nil {
		return fmt.Errorf("setting current plan: %w", err)
	}
	return nil
}

func (r *SQLiteSelectionRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, currentPlanKey)
	if err != nil {
		return fmt.Errorf("clearing current plan: %w", err)
	}
	return nil
}
