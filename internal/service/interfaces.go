package service

import (
	"context"

	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/alexanderramin/cityplan/internal/importer"
	"github.com/alexanderramin/cityplan/internal/planner"
)

// PlanService owns the wizard draft, the plan collection and the current
// plan pointer.
type PlanService interface {
	// SetField merges the non-nil fields of patch into the draft.
	SetField(ctx context.Context, patch domain.PlanInput) error
	ToggleDisaster(ctx context.Context, t domain.DisasterType) error
	SetStep(ctx context.Context, step int) error
	Draft(ctx context.Context) (domain.PlanInput, int, error)
	ResetDraft(ctx context.Context) error

	// Submit derives a plan from the draft, appends it, makes it current and
	// clears the draft in one transaction.
	Submit(ctx context.Context) (*domain.Plan, error)
	// SubmitInput is Submit for an explicit input; the draft is untouched.
	SubmitInput(ctx context.Context, in domain.PlanInput) (*domain.Plan, error)

	List(ctx context.Context) ([]*domain.Plan, error)
	Get(ctx context.Context, id string) (*domain.Plan, error)
	// Select makes id current. Unknown ids leave the selection unchanged.
	Select(ctx context.Context, id string) error
	// Current returns nil when nothing is selected or the selection was deleted.
	Current(ctx context.Context) (*domain.Plan, error)
	// Delete removes a plan. Unknown ids are ignored.
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (planner.Summary, error)
}

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	Plans []*domain.Plan
}

type ImportService interface {
	ImportPlans(ctx context.Context, filePath string) (*ImportResult, error)
	ImportPlansFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
