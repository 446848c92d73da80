package planner

import (
	"math"

	"github.com/alexanderramin/cityplan/internal/domain"
)

// RiskFactor is one axis of the disaster risk profile, 0-100.
type RiskFactor struct {
	Type     domain.DisasterType
	Risk     float64
	Selected bool
}

type riskBaseline struct {
	exposed float64
	ambient float64
}

var riskBaselines = map[domain.DisasterType]riskBaseline{
	domain.DisasterFlood:      {exposed: 80, ambient: 20},
	domain.DisasterEarthquake: {exposed: 75, ambient: 15},
	domain.DisasterCyclone:    {exposed: 85, ambient: 10},
	domain.DisasterDrought:    {exposed: 60, ambient: 25},
	domain.DisasterLandslide:  {exposed: 70, ambient: 12},
	domain.DisasterTsunami:    {exposed: 90, ambient: 8},
}

// RiskMultiplier scales exposed hazards by the plan's overall risk level.
func RiskMultiplier(level domain.DisasterRiskLevel) float64 {
	switch level {
	case domain.RiskHigh:
		return 1.5
	case domain.RiskMedium:
		return 1.0
	default:
		return 0.5
	}
}

// RiskProfile rates every disaster type for the plan. Hazards the plan lists
// are scaled by RiskMultiplier; the rest keep a small ambient value.
func RiskProfile(p *domain.Plan) []RiskFactor {
	mult := RiskMultiplier(p.DisasterRiskLevel)
	factors := make([]RiskFactor, 0, len(domain.DisasterTypes))
	for _, t := range domain.DisasterTypes {
		base := riskBaselines[t]
		f := RiskFactor{Type: t, Risk: base.ambient}
		if p.HasDisaster(t) {
			f.Selected = true
			f.Risk = math.Min(base.exposed*mult, 100)
		}
		factors = append(factors, f)
	}
	return factors
}

type Band string

const (
	BandGood Band = "good"
	BandFair Band = "fair"
	BandPoor Band = "poor"
)

// ScoreBand buckets a sustainability score for display.
func ScoreBand(score int) Band {
	switch {
	case score >= 75:
		return BandGood
	case score >= 50:
		return BandFair
	default:
		return BandPoor
	}
}

// Insights are derived figures shown alongside a plan report.
type Insights struct {
	GreywaterLitresPerDay int64
	EarlyWarningBudget    int64
}

// PlanInsights sizes greywater recycling at 0.4 L per resident per day and
// sets aside 5% of the budget for early warning systems.
func PlanInsights(p *domain.Plan) Insights {
	return Insights{
		GreywaterLitresPerDay: int64(math.Round(float64(p.Population) * 0.4)),
		EarlyWarningBudget:    roundAmount(p.Budget * 0.05),
	}
}

// Summary aggregates a plan collection for the dashboard.
type Summary struct {
	PlanCount       int
	AverageScore    int
	TotalBudget     float64
	TotalPopulation int64
}

// Summarize totals plans. An empty collection yields a zero Summary.
func Summarize(plans []*domain.Plan) Summary {
	var s Summary
	if len(plans) == 0 {
		return s
	}
	var scoreSum int
	for _, p := range plans {
		scoreSum += p.SustainabilityScore
		s.TotalBudget += p.Budget
		s.TotalPopulation += p.Population
	}
	s.PlanCount = len(plans)
	s.AverageScore = int(math.Round(float64(scoreSum) / float64(len(plans))))
	return s
}
