package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cityplan/internal/db"
	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/alexanderramin/cityplan/internal/importer"
	"github.com/alexanderramin/cityplan/internal/planner"
	"github.com/alexanderramin/cityplan/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	engine   *planner.Engine
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, engine *planner.Engine, observers ...UseCaseObserver) ImportService {
	if engine == nil {
		engine = planner.NewEngine()
	}
	return &importService{
		uow:      uow,
		engine:   engine,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportPlans(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportPlansFromSchema(ctx, schema)
}

// ImportPlansFromSchema derives every plan in the document and stores them
// all or none. The last imported plan becomes current.
func (s *importService) ImportPlansFromSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plan_count": len(schema.Plans)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-plans",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	inputs, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	plans := make([]*domain.Plan, 0, len(inputs))
	for _, in := range inputs {
		plans = append(plans, s.engine.Derive(in))
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		for _, p := range plans {
			if err := txPlans.Append(ctx, p); err != nil {
				return fmt.Errorf("creating plan %q: %w", p.CityName, err)
			}
		}
		return repository.NewSQLiteSelectionRepo(tx).SetCurrent(ctx, plans[len(plans)-1].ID)
	})
	if err != nil {
		return nil, err
	}
	return &ImportResult{Plans: plans}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
