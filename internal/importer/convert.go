package importer

import (
	"fmt"

	"github.com/alexanderramin/cityplan/internal/domain"
)

// Convert turns a validated schema into wizard inputs, one per plan.
// Call ValidateImportSchema first; Convert still reports enum errors so a
// skipped validation cannot smuggle bad values into storage.
func Convert(schema *ImportSchema) ([]domain.PlanInput, error) {
	inputs := make([]domain.PlanInput, 0, len(schema.Plans))
	for i, p := range schema.Plans {
		in, err := convertPlan(p)
		if err != nil {
			return nil, fmt.Errorf("plans[%d]: %w", i, err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func convertPlan(p PlanImport) (domain.PlanInput, error) {
	in := domain.PlanInput{
		CityName:   p.CityName,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		Budget:     p.Budget,
		Population: p.Population,
		GrowthRate: p.GrowthRate,
	}

	if p.ClimateType != "" {
		v, err := domain.ParseClimateType(p.ClimateType)
		if err != nil {
			return in, err
		}
		in.ClimateType = &v
	}
	if p.WaterAvailability != "" {
		v, err := domain.ParseWaterAvailability(p.WaterAvailability)
		if err != nil {
			return in, err
		}
		in.WaterAvailability = &v
	}
	if p.DisasterRiskLevel != "" {
		v, err := domain.ParseDisasterRiskLevel(p.DisasterRiskLevel)
		if err != nil {
			return in, err
		}
		in.DisasterRiskLevel = &v
	}
	if p.PrimaryGoal != "" {
		v, err := domain.ParsePrimaryGoal(p.PrimaryGoal)
		if err != nil {
			return in, err
		}
		in.PrimaryGoal = &v
	}
	if p.DisasterTypes != nil {
		in.DisasterTypes = make([]domain.DisasterType, 0, len(p.DisasterTypes))
		for _, s := range p.DisasterTypes {
			v, err := domain.ParseDisasterType(s)
			if err != nil {
				return in, err
			}
			in.DisasterTypes = append(in.DisasterTypes, v)
		}
	}
	return in.Clone(), nil
}

// FromPlans builds an export document from stored plans, including the
// derived score and allocation for reference.
func FromPlans(plans []*domain.Plan) *ImportSchema {
	schema := &ImportSchema{Version: SchemaVersion, Plans: make([]PlanImport, 0, len(plans))}
	for _, p := range plans {
		types := make([]string, 0, len(p.DisasterTypes))
		for _, t := range p.DisasterTypes {
			types = append(types, string(t))
		}
		score := p.SustainabilityScore
		a := p.BudgetAllocation
		schema.Plans = append(schema.Plans, PlanImport{
			ID:                  p.ID,
			CityName:            domain.Ptr(p.CityName),
			Latitude:            domain.Ptr(p.Latitude),
			Longitude:           domain.Ptr(p.Longitude),
			Budget:              domain.Ptr(p.Budget),
			Population:          domain.Ptr(p.Population),
			GrowthRate:          domain.Ptr(p.GrowthRate),
			ClimateType:         string(p.ClimateType),
			WaterAvailability:   string(p.WaterAvailability),
			DisasterRiskLevel:   string(p.DisasterRiskLevel),
			DisasterTypes:       types,
			PrimaryGoal:         string(p.PrimaryGoal),
			SustainabilityScore: &score,
			BudgetAllocation: &AllocationView{
				Infrastructure:     a.Infrastructure,
				WaterSystems:       a.WaterSystems,
				DisasterMitigation: a.DisasterMitigation,
				Sustainability:     a.Sustainability,
				EmergencyReserve:   a.EmergencyReserve,
			},
		})
	}
	return schema
}
