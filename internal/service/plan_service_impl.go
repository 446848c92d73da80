package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cityplan/internal/db"
	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/alexanderramin/cityplan/internal/draft"
	"github.com/alexanderramin/cityplan/internal/planner"
	"github.com/alexanderramin/cityplan/internal/repository"
)

type planService struct {
	plans     repository.PlanRepo
	selection repository.SelectionRepo
	drafts    repository.DraftRepo
	uow       db.UnitOfWork
	engine    *planner.Engine
	observer  UseCaseObserver
}

func NewPlanService(
	plans repository.PlanRepo,
	selection repository.SelectionRepo,
	drafts repository.DraftRepo,
	uow db.UnitOfWork,
	engine *planner.Engine,
	observers ...UseCaseObserver,
) PlanService {
	if engine == nil {
		engine = planner.NewEngine()
	}
	return &planService{
		plans:     plans,
		selection: selection,
		drafts:    drafts,
		uow:       uow,
		engine:    engine,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// editDraft loads the draft, applies fn and saves it in one transaction.
func (s *planService) editDraft(ctx context.Context, fn func(*draft.Accumulator)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		drafts := repository.NewSQLiteDraftRepo(tx)
		stored, err := drafts.Load(ctx)
		if err != nil {
			return err
		}
		acc := draft.Restore(stored.Input, stored.Step)
		fn(acc)
		return storeDraft(ctx, drafts, acc)
	})
}

// storeDraft saves acc, or drops the saved row once acc is back at its
// reset state.
func storeDraft(ctx context.Context, drafts repository.DraftRepo, acc *draft.Accumulator) error {
	if acc.IsEmpty() && acc.Step() == 0 {
		return drafts.Clear(ctx)
	}
	return drafts.Save(ctx, &repository.StoredDraft{
		Input:     acc.Snapshot(),
		Step:      acc.Step(),
		UpdatedAt: time.Now().UTC(),
	})
}

func (s *planService) SetField(ctx context.Context, patch domain.PlanInput) error {
	return s.editDraft(ctx, func(acc *draft.Accumulator) { acc.SetField(patch) })
}

func (s *planService) ToggleDisaster(ctx context.Context, t domain.DisasterType) error {
	return s.editDraft(ctx, func(acc *draft.Accumulator) { acc.ToggleDisaster(t) })
}

func (s *planService) SetStep(ctx context.Context, step int) error {
	return s.editDraft(ctx, func(acc *draft.Accumulator) { acc.SetStep(step) })
}

func (s *planService) Draft(ctx context.Context) (domain.PlanInput, int, error) {
	stored, err := s.drafts.Load(ctx)
	if err != nil {
		return domain.PlanInput{}, 0, err
	}
	return stored.Input, stored.Step, nil
}

func (s *planService) ResetDraft(ctx context.Context) error {
	return s.editDraft(ctx, func(acc *draft.Accumulator) { acc.Reset() })
}

func (s *planService) Submit(ctx context.Context) (plan *domain.Plan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observe(ctx, "submit-plan", startedAt, fields, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		drafts := repository.NewSQLiteDraftRepo(tx)
		stored, err := drafts.Load(ctx)
		if err != nil {
			return err
		}
		acc := draft.Restore(stored.Input, stored.Step)
		fields["draft_step"] = acc.Step()
		fields["draft_empty"] = acc.IsEmpty()

		plan, err = s.persist(ctx, tx, acc.Snapshot())
		if err != nil {
			return err
		}
		acc.Reset()
		return storeDraft(ctx, drafts, acc)
	})
	if err != nil {
		return nil, err
	}
	fields["plan_id"] = plan.ID
	fields["score"] = plan.SustainabilityScore
	return plan, nil
}

func (s *planService) SubmitInput(ctx context.Context, in domain.PlanInput) (plan *domain.Plan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observe(ctx, "submit-plan-input", startedAt, fields, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plan, err = s.persist(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["plan_id"] = plan.ID
	fields["score"] = plan.SustainabilityScore
	return plan, nil
}

// persist derives a plan, appends it and marks it current using tx.
func (s *planService) persist(ctx context.Context, tx db.DBTX, in domain.PlanInput) (*domain.Plan, error) {
	plan := s.engine.Derive(in)
	if err := repository.NewSQLitePlanRepo(tx).Append(ctx, plan); err != nil {
		return nil, fmt.Errorf("saving plan: %w", err)
	}
	if err := repository.NewSQLiteSelectionRepo(tx).SetCurrent(ctx, plan.ID); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) List(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.List(ctx)
}

func (s *planService) Get(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) Select(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		_, err := repository.NewSQLitePlanRepo(tx).GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return repository.NewSQLiteSelectionRepo(tx).SetCurrent(ctx, id)
	})
}

func (s *planService) Current(ctx context.Context) (*domain.Plan, error) {
	id, err := s.selection.Current(ctx)
	if err != nil || id == "" {
		return nil, err
	}
	plan, err := s.plans.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return plan, err
}

func (s *planService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observe(ctx, "delete-plan", startedAt, map[string]any{"plan_id": id}, err)
	}()
	return s.plans.Delete(ctx, id)
}

func (s *planService) Summary(ctx context.Context) (planner.Summary, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		return planner.Summary{}, err
	}
	return planner.Summarize(plans), nil
}

func (s *planService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
