package planner

import "github.com/alexanderramin/cityplan/internal/domain"

const (
	scoreBase    = 50
	scoreCeiling = 98
)

type ReasonCode string

const (
	ReasonBase            ReasonCode = "BASE"
	ReasonSustainableGoal ReasonCode = "SUSTAINABLE_GOAL"
	ReasonAbundantWater   ReasonCode = "ABUNDANT_WATER"
	ReasonLowRisk         ReasonCode = "LOW_DISASTER_RISK"
	ReasonSlowGrowth      ReasonCode = "SLOW_GROWTH"
	ReasonTemperate       ReasonCode = "TEMPERATE_CLIMATE"
	ReasonCapped          ReasonCode = "CAPPED"
)

// ScoreReason explains one contribution to the sustainability score.
type ScoreReason struct {
	Code    ReasonCode
	Message string
	Delta   int
}

// ScoreResult is the final score plus the contributions that produced it.
type ScoreResult struct {
	Score   int
	Raw     int
	Reasons []ScoreReason
}

// Score computes the sustainability score of a defaulted input. Bonuses are
// cumulative; the total is capped at 98 and clamped to [0, 100].
func Score(r Resolved) ScoreResult {
	result := ScoreResult{
		Reasons: []ScoreReason{{Code: ReasonBase, Message: "Baseline", Delta: scoreBase}},
	}
	total := scoreBase

	factors := []func(Resolved) *ScoreReason{
		scoreGoal,
		scoreWater,
		scoreRisk,
		scoreGrowth,
		scoreClimate,
	}
	for _, f := range factors {
		if reason := f(r); reason != nil {
			total += reason.Delta
			result.Reasons = append(result.Reasons, *reason)
		}
	}

	result.Raw = total
	if total > scoreCeiling {
		result.Reasons = append(result.Reasons, ScoreReason{
			Code:    ReasonCapped,
			Message: "Score capped at 98",
			Delta:   scoreCeiling - total,
		})
		total = scoreCeiling
	}
	result.Score = clamp(total, 0, 100)
	return result
}

func scoreGoal(r Resolved) *ScoreReason {
	if r.PrimaryGoal != domain.GoalSustainable {
		return nil
	}
	return &ScoreReason{Code: ReasonSustainableGoal, Message: "Sustainability is the primary goal", Delta: 20}
}

func scoreWater(r Resolved) *ScoreReason {
	if r.WaterAvailability != domain.WaterAbundant {
		return nil
	}
	return &ScoreReason{Code: ReasonAbundantWater, Message: "Abundant water supply", Delta: 10}
}

func scoreRisk(r Resolved) *ScoreReason {
	if r.DisasterRiskLevel != domain.RiskLow {
		return nil
	}
	return &ScoreReason{Code: ReasonLowRisk, Message: "Low disaster risk", Delta: 10}
}

func scoreGrowth(r Resolved) *ScoreReason {
	if r.GrowthRate >= 3 {
		return nil
	}
	return &ScoreReason{Code: ReasonSlowGrowth, Message: "Growth rate under 3%", Delta: 5}
}

func scoreClimate(r Resolved) *ScoreReason {
	if r.ClimateType != domain.ClimateTemperate {
		return nil
	}
	return &ScoreReason{Code: ReasonTemperate, Message: "Temperate climate", Delta: 5}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
