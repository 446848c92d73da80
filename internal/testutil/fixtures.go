package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/google/uuid"
)

var testCityCounter atomic.Int64

// PlanInput options
type InputOption func(*domain.PlanInput)

func WithBudget(b float64) InputOption {
	return func(in *domain.PlanInput) {
		in.Budget = &b
	}
}

func WithPopulation(n int64) InputOption {
	return func(in *domain.PlanInput) {
		in.Population = &n
	}
}

func WithGrowthRate(g float64) InputOption {
	return func(in *domain.PlanInput) {
		in.GrowthRate = &g
	}
}

func WithRisk(r domain.DisasterRiskLevel) InputOption {
	return func(in *domain.PlanInput) {
		in.DisasterRiskLevel = &r
	}
}

func WithGoal(g domain.PrimaryGoal) InputOption {
	return func(in *domain.PlanInput) {
		in.PrimaryGoal = &g
	}
}

func WithWater(w domain.WaterAvailability) InputOption {
	return func(in *domain.PlanInput) {
		in.WaterAvailability = &w
	}
}

func WithClimate(c domain.ClimateType) InputOption {
	return func(in *domain.PlanInput) {
		in.ClimateType = &c
	}
}

func WithDisasters(types ...domain.DisasterType) InputOption {
	return func(in *domain.PlanInput) {
		in.DisasterTypes = types
	}
}

// NewTestPlanInput returns a fully specified input for a city with a unique
// name. The defaults score 80 and allocate a 1M budget without rounding.
func NewTestPlanInput(opts ...InputOption) domain.PlanInput {
	n := testCityCounter.Add(1)
	in := domain.PlanInput{
		CityName:          domain.Ptr(fmt.Sprintf("Test City %02d", n)),
		Latitude:          domain.Ptr(51.5),
		Longitude:         domain.Ptr(-0.12),
		Budget:            domain.Ptr(1_000_000.0),
		Population:        domain.Ptr(int64(250_000)),
		GrowthRate:        domain.Ptr(1.5),
		ClimateType:       domain.Ptr(domain.ClimateTemperate),
		WaterAvailability: domain.Ptr(domain.WaterModerate),
		DisasterRiskLevel: domain.Ptr(domain.RiskMedium),
		DisasterTypes:     []domain.DisasterType{domain.DisasterFlood},
		PrimaryGoal:       domain.Ptr(domain.GoalSustainable),
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// Plan options
type PlanOption func(*domain.Plan)

func WithPlanID(id string) PlanOption {
	return func(p *domain.Plan) {
		p.ID = id
	}
}

func WithScore(s int) PlanOption {
	return func(p *domain.Plan) {
		p.SustainabilityScore = s
	}
}

func WithCreatedAt(t time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.CreatedAt = t
	}
}

func WithPlanDisasters(types ...domain.DisasterType) PlanOption {
	return func(p *domain.Plan) {
		p.DisasterTypes = types
	}
}

// NewTestPlan builds a stored-shape plan directly, bypassing derivation.
func NewTestPlan(name string, opts ...PlanOption) *domain.Plan {
	p := &domain.Plan{
		ID:                  uuid.New().String(),
		CityName:            name,
		Latitude:            10,
		Longitude:           20,
		Budget:              1_000_000,
		Population:          100_000,
		GrowthRate:          2,
		ClimateType:         domain.ClimateTemperate,
		WaterAvailability:   domain.WaterModerate,
		DisasterRiskLevel:   domain.RiskMedium,
		DisasterTypes:       []domain.DisasterType{},
		PrimaryGoal:         domain.GoalSustainable,
		SustainabilityScore: 80,
		BudgetAllocation: domain.BudgetAllocation{
			Infrastructure:     250_000,
			WaterSystems:       150_000,
			DisasterMitigation: 150_000,
			Sustainability:     350_000,
			EmergencyReserve:   100_000,
		},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
