package planner

import (
	"math"
	"math/rand"
	"testing"

	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

// TestAllocate_Invariants_SharesMatchWeights property-tests that every share
// is round(budget*weight) and that the total stays within rounding distance
// of budget times the weight sum.
func TestAllocate_Invariants_SharesMatchWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 500; trial++ {
		budget := math.Floor(rng.Float64() * 1e9)
		if trial%10 == 0 {
			budget = float64(rng.Intn(1000))
		}
		risk := domain.DisasterRiskLevels[rng.Intn(len(domain.DisasterRiskLevels))]
		goal := domain.PrimaryGoals[rng.Intn(len(domain.PrimaryGoals))]

		w := WeightsFor(risk, goal)
		got := Allocate(budget, risk, goal)

		assert.Equal(t, int64(math.Round(budget*w.Infrastructure)), got.Infrastructure, "trial %d", trial)
		assert.Equal(t, int64(math.Round(budget*w.WaterSystems)), got.WaterSystems, "trial %d", trial)
		assert.Equal(t, int64(math.Round(budget*w.DisasterMitigation)), got.DisasterMitigation, "trial %d", trial)
		assert.Equal(t, int64(math.Round(budget*w.Sustainability)), got.Sustainability, "trial %d", trial)
		assert.Equal(t, int64(math.Round(budget*w.EmergencyReserve)), got.EmergencyReserve, "trial %d", trial)

		for _, s := range got.Shares() {
			assert.GreaterOrEqual(t, s.Amount, int64(0), "trial %d: %s must be non-negative", trial, s.Label)
		}

		expected := budget * w.Sum()
		assert.InDelta(t, expected, float64(got.Total()), 3,
			"trial %d: total %d drifted from %.0f", trial, got.Total(), expected)
	}
}

// TestAllocate_Invariants_WaterAndReserveFixed checks that neither risk nor
// goal ever touches the water and reserve weights.
func TestAllocate_Invariants_WaterAndReserveFixed(t *testing.T) {
	for _, risk := range domain.DisasterRiskLevels {
		for _, goal := range domain.PrimaryGoals {
			w := WeightsFor(risk, goal)
			assert.InDelta(t, 0.15, w.WaterSystems, 1e-9, "%s/%s", risk, goal)
			assert.InDelta(t, 0.10, w.EmergencyReserve, 1e-9, "%s/%s", risk, goal)
		}
	}
}

// TestAllocate_Invariants_BalancedUnlessHighRiskWithGoalOverride checks that
// only a goal override layered on the high-risk branch pushes the weights
// past 1.0.
func TestAllocate_Invariants_BalancedUnlessHighRiskWithGoalOverride(t *testing.T) {
	for _, risk := range domain.DisasterRiskLevels {
		for _, goal := range domain.PrimaryGoals {
			sum := WeightsFor(risk, goal).Sum()
			switch {
			case risk == domain.RiskHigh && goal == domain.GoalCommercial:
				assert.InDelta(t, 1.10, sum, 1e-9)
			case risk == domain.RiskHigh && goal == domain.GoalSustainable:
				assert.InDelta(t, 1.10, sum, 1e-9)
			default:
				assert.InDelta(t, 1.0, sum, 1e-9, "%s/%s", risk, goal)
			}
		}
	}
}
