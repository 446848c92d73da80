package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cityplan/internal/db"
	"github.com/alexanderramin/cityplan/internal/domain"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, city_name, latitude, longitude, budget, population, growth_rate,
	climate_type, water_availability, disaster_risk_level, primary_goal, sustainability_score,
	alloc_infrastructure, alloc_water_systems, alloc_disaster_mitigation,
	alloc_sustainability, alloc_emergency_reserve, created_at`

// Append inserts the plan and its disaster types. Callers that need both
// writes to be atomic run it inside a UnitOfWork.
func (r *SQLitePlanRepo) Append(ctx context.Context, p *domain.Plan) error {
	query := `INSERT INTO plans (` + planColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	a := p.BudgetAllocation
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.CityName,
		p.Latitude,
		p.Longitude,
		p.Budget,
		p.Population,
		p.GrowthRate,
		string(p.ClimateType),
		string(p.WaterAvailability),
		string(p.DisasterRiskLevel),
		string(p.PrimaryGoal),
		p.SustainabilityScore,
		a.Infrastructure,
		a.WaterSystems,
		a.DisasterMitigation,
		a.Sustainability,
		a.EmergencyReserve,
		formatTimestamp(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	for i, dt := range p.DisasterTypes {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO plan_disaster_types (plan_id, disaster_type, position) VALUES (?, ?, ?)`,
			p.ID, string(dt), i)
		if err != nil {
			return fmt.Errorf("inserting plan disaster type: %w", err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	p, err := scanPlan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	types, err := r.disasterTypes(ctx,
		`SELECT plan_id, disaster_type FROM plan_disaster_types WHERE plan_id = ? ORDER BY position`, p.ID)
	if err != nil {
		return nil, err
	}
	p.DisasterTypes = orEmpty(types[p.ID])
	return p, nil
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	// Close before the second query: an in-memory database has one connection.
	rows.Close()

	types, err := r.disasterTypes(ctx,
		`SELECT plan_id, disaster_type FROM plan_disaster_types ORDER BY plan_id, position`)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		p.DisasterTypes = orEmpty(types[p.ID])
	}
	return plans, nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}

// disasterTypes runs a (plan_id, disaster_type) query and groups the result
// by plan id, keeping row order within each plan.
func (r *SQLitePlanRepo) disasterTypes(ctx context.Context, query string, args ...any) (map[string][]domain.DisasterType, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing plan disaster types: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.DisasterType)
	for rows.Next() {
		var planID, dt string
		if err := rows.Scan(&planID, &dt); err != nil {
			return nil, fmt.Errorf("scanning plan disaster type: %w", err)
		}
		out[planID] = append(out[planID], domain.DisasterType(dt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan disaster types: %w", err)
	}
	return out, nil
}

func orEmpty(types []domain.DisasterType) []domain.DisasterType {
	if types == nil {
		return []domain.DisasterType{}
	}
	return types
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPlan scans a plan row from either *sql.Row or *sql.Rows. The
// sql.ErrNoRows error is returned unwrapped so callers can map it.
func scanPlan(row rowScanner) (*domain.Plan, error) {
	var p domain.Plan
	var climate, water, risk, goal, createdAt string
	a := &p.BudgetAllocation

	err := row.Scan(
		&p.ID, &p.CityName, &p.Latitude, &p.Longitude,
		&p.Budget, &p.Population, &p.GrowthRate,
		&climate, &water, &risk, &goal,
		&p.SustainabilityScore,
		&a.Infrastructure, &a.WaterSystems, &a.DisasterMitigation,
		&a.Sustainability, &a.EmergencyReserve,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	p.ClimateType = domain.ClimateType(climate)
	p.WaterAvailability = domain.WaterAvailability(water)
	p.DisasterRiskLevel = domain.DisasterRiskLevel(risk)
	p.PrimaryGoal = domain.PrimaryGoal(goal)

	p.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &p, nil
}
