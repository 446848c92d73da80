package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/cityplan/internal/domain"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// PlanRepo is the append-only plan collection. List returns plans in
// insertion order.
type PlanRepo interface {
	Append(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	// Delete removes the plan with the given id. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error
}

// SelectionRepo stores the id of the current plan. The id is resolved by the
// caller, so a stale id simply fails to match anything.
type SelectionRepo interface {
	Current(ctx context.Context) (string, error)
	SetCurrent(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// StoredDraft is a persisted wizard accumulator.
type StoredDraft struct {
	Input     domain.PlanInput
	Step      int
	UpdatedAt time.Time
}

type DraftRepo interface {
	// Load returns an empty draft when none has been saved.
	Load(ctx context.Context) (*StoredDraft, error)
	Save(ctx context.Context, d *StoredDraft) error
	Clear(ctx context.Context) error
}
