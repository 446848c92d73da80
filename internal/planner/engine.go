// Package planner derives complete city plans from wizard input. Everything
// here is deterministic apart from the injected id and clock.
package planner

import (
	"slices"
	"time"

	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/google/uuid"
)

// Field defaults used when the draft leaves a value missing or zero.
const (
	DefaultCityName          = "Unnamed City"
	DefaultClimateType       = domain.ClimateTemperate
	DefaultWaterAvailability = domain.WaterModerate
	DefaultDisasterRiskLevel = domain.RiskMedium
	DefaultPrimaryGoal       = domain.GoalSustainable
)

// Resolved is a PlanInput with every field defaulted.
type Resolved struct {
	CityName          string
	Latitude          float64
	Longitude         float64
	Budget            float64
	Population        int64
	GrowthRate        float64
	ClimateType       domain.ClimateType
	WaterAvailability domain.WaterAvailability
	DisasterRiskLevel domain.DisasterRiskLevel
	DisasterTypes     []domain.DisasterType
	PrimaryGoal       domain.PrimaryGoal
}

// ApplyDefaults fills each missing or zero field independently. NaN and
// infinite numbers count as missing.
func ApplyDefaults(in domain.PlanInput) Resolved {
	return Resolved{
		CityName:          domain.ValueOr(in.CityName, DefaultCityName),
		Latitude:          domain.FloatOr(in.Latitude, 0),
		Longitude:         domain.FloatOr(in.Longitude, 0),
		Budget:            domain.FloatOr(in.Budget, 0),
		Population:        domain.ValueOr(in.Population, 0),
		GrowthRate:        domain.FloatOr(in.GrowthRate, 0),
		ClimateType:       domain.ValueOr(in.ClimateType, DefaultClimateType),
		WaterAvailability: domain.ValueOr(in.WaterAvailability, DefaultWaterAvailability),
		DisasterRiskLevel: domain.ValueOr(in.DisasterRiskLevel, DefaultDisasterRiskLevel),
		DisasterTypes:     uniqueDisasters(in.DisasterTypes),
		PrimaryGoal:       domain.ValueOr(in.PrimaryGoal, DefaultPrimaryGoal),
	}
}

// uniqueDisasters copies types, dropping repeats and keeping first-seen order.
func uniqueDisasters(types []domain.DisasterType) []domain.DisasterType {
	out := make([]domain.DisasterType, 0, len(types))
	for _, t := range types {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// Clock returns the current time.
type Clock func() time.Time

// IDFunc returns a fresh, never reused plan identifier.
type IDFunc func() string

// Engine turns drafts into plans.
type Engine struct {
	now   Clock
	newID IDFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the timestamp source.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.now = c }
}

// WithIDFunc overrides the identifier source.
func WithIDFunc(f IDFunc) Option {
	return func(e *Engine) { e.newID = f }
}

// NewEngine returns an engine using random UUIDs and the UTC wall clock.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Derive builds a complete plan from in. It accepts any input: zero or
// negative budgets simply produce degenerate allocations.
func (e *Engine) Derive(in domain.PlanInput) *domain.Plan {
	r := ApplyDefaults(in)
	return &domain.Plan{
		ID:                  e.newID(),
		CityName:            r.CityName,
		Latitude:            r.Latitude,
		Longitude:           r.Longitude,
		Budget:              r.Budget,
		Population:          r.Population,
		GrowthRate:          r.GrowthRate,
		ClimateType:         r.ClimateType,
		WaterAvailability:   r.WaterAvailability,
		DisasterRiskLevel:   r.DisasterRiskLevel,
		DisasterTypes:       r.DisasterTypes,
		PrimaryGoal:         r.PrimaryGoal,
		SustainabilityScore: Score(r).Score,
		BudgetAllocation:    Allocate(r.Budget, r.DisasterRiskLevel, r.PrimaryGoal),
		CreatedAt:           e.now(),
	}
}

// Explain recomputes the score breakdown for an existing plan.
func Explain(p *domain.Plan) ScoreResult {
	return Score(Resolved{
		CityName:          p.CityName,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
		Budget:            p.Budget,
		Population:        p.Population,
		GrowthRate:        p.GrowthRate,
		ClimateType:       p.ClimateType,
		WaterAvailability: p.WaterAvailability,
		DisasterRiskLevel: p.DisasterRiskLevel,
		DisasterTypes:     p.DisasterTypes,
		PrimaryGoal:       p.PrimaryGoal,
	})
}
