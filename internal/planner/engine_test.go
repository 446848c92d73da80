package planner

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedEngine() *Engine {
	n := 0
	return NewEngine(
		WithClock(func() time.Time { return fixedNow }),
		WithIDFunc(func() string {
			n++
			return fmt.Sprintf("plan-%d", n)
		}),
	)
}

func TestApplyDefaults_Empty(t *testing.T) {
	r := ApplyDefaults(domain.PlanInput{})

	assert.Equal(t, "Unnamed City", r.CityName)
	assert.Equal(t, 0.0, r.Latitude)
	assert.Equal(t, 0.0, r.Longitude)
	assert.Equal(t, 0.0, r.Budget)
	assert.Equal(t, int64(0), r.Population)
	assert.Equal(t, 0.0, r.GrowthRate)
	assert.Equal(t, domain.ClimateTemperate, r.ClimateType)
	assert.Equal(t, domain.WaterModerate, r.WaterAvailability)
	assert.Equal(t, domain.RiskMedium, r.DisasterRiskLevel)
	assert.NotNil(t, r.DisasterTypes)
	assert.Empty(t, r.DisasterTypes)
	assert.Equal(t, domain.GoalSustainable, r.PrimaryGoal)
}

func TestApplyDefaults_FalsyValuesDefault(t *testing.T) {
	r := ApplyDefaults(domain.PlanInput{
		CityName:    domain.Ptr(""),
		ClimateType: domain.Ptr(domain.ClimateType("")),
		PrimaryGoal: domain.Ptr(domain.PrimaryGoal("")),
	})
	assert.Equal(t, "Unnamed City", r.CityName)
	assert.Equal(t, domain.ClimateTemperate, r.ClimateType)
	assert.Equal(t, domain.GoalSustainable, r.PrimaryGoal)
}

func TestApplyDefaults_KeepsSuppliedValues(t *testing.T) {
	r := ApplyDefaults(domain.PlanInput{
		CityName:          domain.Ptr("Nairobi"),
		Latitude:          domain.Ptr(-1.29),
		Longitude:         domain.Ptr(36.82),
		Budget:            domain.Ptr(2e6),
		Population:        domain.Ptr(int64(4_400_000)),
		GrowthRate:        domain.Ptr(3.9),
		ClimateType:       domain.Ptr(domain.ClimateTropical),
		WaterAvailability: domain.Ptr(domain.WaterScarce),
		DisasterRiskLevel: domain.Ptr(domain.RiskHigh),
		DisasterTypes:     []domain.DisasterType{domain.DisasterDrought},
		PrimaryGoal:       domain.Ptr(domain.GoalResidential),
	})
	assert.Equal(t, "Nairobi", r.CityName)
	assert.Equal(t, -1.29, r.Latitude)
	assert.Equal(t, int64(4_400_000), r.Population)
	assert.Equal(t, domain.RiskHigh, r.DisasterRiskLevel)
	assert.Equal(t, []domain.DisasterType{domain.DisasterDrought}, r.DisasterTypes)
}

func TestDerive_AllDefaults(t *testing.T) {
	p := fixedEngine().Derive(domain.PlanInput{})

	assert.Equal(t, "plan-1", p.ID)
	assert.Equal(t, fixedNow, p.CreatedAt)
	assert.Equal(t, "Unnamed City", p.CityName)
	assert.Equal(t, 80, p.SustainabilityScore)
	assert.Equal(t, domain.BudgetAllocation{}, p.BudgetAllocation)
}

func TestDerive_FullInput(t *testing.T) {
	p := fixedEngine().Derive(domain.PlanInput{
		CityName:          domain.Ptr("Greenhaven"),
		Budget:            domain.Ptr(10_000_000.0),
		Population:        domain.Ptr(int64(500_000)),
		GrowthRate:        domain.Ptr(2.5),
		ClimateType:       domain.Ptr(domain.ClimateTemperate),
		WaterAvailability: domain.Ptr(domain.WaterAbundant),
		DisasterRiskLevel: domain.Ptr(domain.RiskLow),
		PrimaryGoal:       domain.Ptr(domain.GoalSustainable),
	})

	assert.Equal(t, "Greenhaven", p.CityName)
	assert.Equal(t, 98, p.SustainabilityScore)
	assert.Equal(t, int64(2_500_000), p.BudgetAllocation.Infrastructure)
	assert.Equal(t, int64(3_500_000), p.BudgetAllocation.Sustainability)
}

func TestDerive_DoesNotAliasInput(t *testing.T) {
	in := domain.PlanInput{DisasterTypes: []domain.DisasterType{domain.DisasterFlood}}
	p := fixedEngine().Derive(in)
	in.DisasterTypes[0] = domain.DisasterTsunami

	assert.Equal(t, []domain.DisasterType{domain.DisasterFlood}, p.DisasterTypes)
}

func TestDerive_DefaultEngineUniqueIDs(t *testing.T) {
	e := NewEngine()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		p := e.Derive(domain.PlanInput{})
		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.Equal(t, time.UTC, p.CreatedAt.Location())
	}
}

func TestExplain_MatchesStoredScore(t *testing.T) {
	p := fixedEngine().Derive(domain.PlanInput{
		WaterAvailability: domain.Ptr(domain.WaterAbundant),
		GrowthRate:        domain.Ptr(4.0),
	})
	res := Explain(p)
	assert.Equal(t, p.SustainabilityScore, res.Score)
	assert.Equal(t, 85, res.Score)
}

func TestApplyDefaults_DisasterTypesAreASet(t *testing.T) {
	r := ApplyDefaults(domain.PlanInput{
		DisasterTypes: []domain.DisasterType{domain.DisasterFlood, domain.DisasterCyclone, domain.DisasterFlood},
	})
	assert.Equal(t, []domain.DisasterType{domain.DisasterFlood, domain.DisasterCyclone}, r.DisasterTypes)
}

func TestDerive_NonFiniteNumbersDefault(t *testing.T) {
	nan := math.NaN()
	p := fixedEngine().Derive(domain.PlanInput{
		Budget:     domain.Ptr(nan),
		Latitude:   domain.Ptr(nan),
		Longitude:  domain.Ptr(math.Inf(-1)),
		GrowthRate: domain.Ptr(nan),
	})

	assert.Equal(t, 0.0, p.Budget)
	assert.Equal(t, 0.0, p.Latitude)
	assert.Equal(t, 0.0, p.Longitude)
	assert.Equal(t, 0.0, p.GrowthRate)
	assert.Equal(t, domain.BudgetAllocation{}, p.BudgetAllocation)
	assert.Equal(t, 80, p.SustainabilityScore, "cleared growth counts as slow growth")
}

func TestDerive_InfiniteBudgetDefaults(t *testing.T) {
	p := fixedEngine().Derive(domain.PlanInput{Budget: domain.Ptr(math.Inf(1))})
	assert.Equal(t, 0.0, p.Budget)
	assert.Zero(t, p.BudgetAllocation.Total())
}

func TestDerive_HugeBudgetKeepsSharesNonNegative(t *testing.T) {
	p := fixedEngine().Derive(domain.PlanInput{Budget: domain.Ptr(1e20)})
	for _, s := range p.BudgetAllocation.Shares() {
		assert.Positive(t, s.Amount, s.Label)
	}
	assert.Positive(t, PlanInsights(p).EarlyWarningBudget)
}
