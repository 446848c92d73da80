package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/cityplan/internal/db"
)

// SQLiteDraftRepo implements DraftRepo. The draft lives in a single row and
// its partial input is stored as JSON so unset fields stay unset.
type SQLiteDraftRepo struct {
	db db.DBTX
}

// NewSQLiteDraftRepo creates a new SQLiteDraftRepo.
func NewSQLiteDraftRepo(conn db.DBTX) *SQLiteDraftRepo {
	return &SQLiteDraftRepo{db: conn}
}

func (r *SQLiteDraftRepo) Load(ctx context.Context) (*StoredDraft, error) {
	var raw, updatedAt string
	var step int
	err := r.db.QueryRowContext(ctx,
		`SELECT input_json, step, updated_at FROM plan_drafts WHERE id = 1`).Scan(&raw, &step, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &StoredDraft{}, nil
		}
		return nil, fmt.Errorf("reading draft: %w", err)
	}

	d := &StoredDraft{Step: step}
	if err := json.Unmarshal([]byte(raw), &d.Input); err != nil {
		return nil, fmt.Errorf("decoding draft input: %w", err)
	}
	d.UpdatedAt, err = parseTimestamp(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing draft updated_at: %w", err)
	}
	return d, nil
}

func (r *SQLiteDraftRepo) Save(ctx context.Context, d *StoredDraft) error {
	raw, err := json.Marshal(d.Input)
	if err != nil {
		return fmt.Errorf("encoding draft input: %w", err)
	}
	updatedAt := d.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = nowUTC()
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO plan_drafts (id, input_json, step, updated_at) VALUES (1, ?, ?, ?)`,
		string(raw), d.Step, formatTimestamp(updatedAt))
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

func (r *SQLiteDraftRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plan_drafts WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	return nil
}
