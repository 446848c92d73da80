package planner

import (
	"math"

	"github.com/alexanderramin/cityplan/internal/domain"
)

// Weights are the budget fractions for the five allocation categories.
type Weights struct {
	Infrastructure     float64
	WaterSystems       float64
	DisasterMitigation float64
	Sustainability     float64
	EmergencyReserve   float64
}

// Sum adds the five weights. Override combinations can push it past 1.0.
func (w Weights) Sum() float64 {
	return w.Infrastructure + w.WaterSystems + w.DisasterMitigation + w.Sustainability + w.EmergencyReserve
}

// BaseWeights is the split before risk and goal overrides.
func BaseWeights() Weights {
	return Weights{
		Infrastructure:     0.35,
		WaterSystems:       0.15,
		DisasterMitigation: 0.15,
		Sustainability:     0.25,
		EmergencyReserve:   0.10,
	}
}

// WeightsFor applies the risk override and then the goal override on top of
// BaseWeights. The result is not renormalised: High risk with a Commercial
// goal sums to 1.10.
func WeightsFor(risk domain.DisasterRiskLevel, goal domain.PrimaryGoal) Weights {
	w := BaseWeights()

	if risk == domain.RiskHigh {
		w.DisasterMitigation = 0.25
		w.Infrastructure = 0.25
	}

	switch goal {
	case domain.GoalSustainable:
		w.Sustainability = 0.35
		w.Infrastructure = 0.25
	case domain.GoalCommercial:
		w.Infrastructure = 0.40
		w.Sustainability = 0.20
	}

	return w
}

// Allocate splits budget by WeightsFor(risk, goal), rounding each share
// independently, half away from zero.
func Allocate(budget float64, risk domain.DisasterRiskLevel, goal domain.PrimaryGoal) domain.BudgetAllocation {
	return AllocateWeights(budget, WeightsFor(risk, goal))
}

// AllocateWeights rounds budget*weight for each category.
func AllocateWeights(budget float64, w Weights) domain.BudgetAllocation {
	return domain.BudgetAllocation{
		Infrastructure:     share(budget, w.Infrastructure),
		WaterSystems:       share(budget, w.WaterSystems),
		DisasterMitigation: share(budget, w.DisasterMitigation),
		Sustainability:     share(budget, w.Sustainability),
		EmergencyReserve:   share(budget, w.EmergencyReserve),
	}
}

// maxShare keeps the sum of all five shares inside int64.
const maxShare = math.MaxInt64 / 8

// share rounds budget*weight half away from zero on both sides, so -5 at 0.10
// gives -1 rather than 0. NaN yields 0 and out-of-range products saturate at
// ±maxShare.
func share(budget, weight float64) int64 {
	return roundAmount(budget * weight)
}

func roundAmount(v float64) int64 {
	v = math.Round(v)
	switch {
	case math.IsNaN(v):
		return 0
	case v >= maxShare:
		return maxShare
	case v <= -maxShare:
		return -maxShare
	}
	return int64(v)
}
