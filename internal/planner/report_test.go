package planner

import (
	"testing"

	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskProfile_HighRiskCapsAt100(t *testing.T) {
	p := &domain.Plan{
		DisasterRiskLevel: domain.RiskHigh,
		DisasterTypes:     []domain.DisasterType{domain.DisasterFlood, domain.DisasterDrought},
	}
	factors := RiskProfile(p)
	require.Len(t, factors, 6)

	byType := make(map[domain.DisasterType]RiskFactor)
	for _, f := range factors {
		byType[f.Type] = f
	}

	assert.True(t, byType[domain.DisasterFlood].Selected)
	assert.Equal(t, 100.0, byType[domain.DisasterFlood].Risk, "80 * 1.5 capped")
	assert.Equal(t, 90.0, byType[domain.DisasterDrought].Risk)
	assert.False(t, byType[domain.DisasterTsunami].Selected)
	assert.Equal(t, 8.0, byType[domain.DisasterTsunami].Risk)
	assert.Equal(t, domain.DisasterFlood, factors[0].Type, "profile follows canonical order")
}

func TestRiskProfile_LowRiskHalves(t *testing.T) {
	p := &domain.Plan{
		DisasterRiskLevel: domain.RiskLow,
		DisasterTypes:     []domain.DisasterType{domain.DisasterTsunami},
	}
	for _, f := range RiskProfile(p) {
		if f.Type == domain.DisasterTsunami {
			assert.Equal(t, 45.0, f.Risk)
		}
	}
}

func TestRiskMultiplier(t *testing.T) {
	assert.Equal(t, 1.5, RiskMultiplier(domain.RiskHigh))
	assert.Equal(t, 1.0, RiskMultiplier(domain.RiskMedium))
	assert.Equal(t, 0.5, RiskMultiplier(domain.RiskLow))
}

func TestScoreBand(t *testing.T) {
	assert.Equal(t, BandGood, ScoreBand(98))
	assert.Equal(t, BandGood, ScoreBand(75))
	assert.Equal(t, BandFair, ScoreBand(74))
	assert.Equal(t, BandFair, ScoreBand(50))
	assert.Equal(t, BandPoor, ScoreBand(49))
}

func TestPlanInsights(t *testing.T) {
	ins := PlanInsights(&domain.Plan{Population: 500_001, Budget: 10_000_000})
	assert.Equal(t, int64(200_000), ins.GreywaterLitresPerDay)
	assert.Equal(t, int64(500_000), ins.EarlyWarningBudget)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	s := Summarize([]*domain.Plan{
		{SustainabilityScore: 80, Budget: 100, Population: 10},
		{SustainabilityScore: 55, Budget: 250, Population: 5},
	})
	assert.Equal(t, 2, s.PlanCount)
	assert.Equal(t, 68, s.AverageScore, "67.5 rounds up")
	assert.Equal(t, 350.0, s.TotalBudget)
	assert.Equal(t, int64(15), s.TotalPopulation)
}
