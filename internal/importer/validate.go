package importer

import (
	"fmt"

	"github.com/alexanderramin/cityplan/internal/domain"
)

// ValidateImportSchema checks the document for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	if len(schema.Plans) == 0 {
		return []error{fmt.Errorf("plans: at least one plan is required")}
	}
	if schema.Version > SchemaVersion {
		return []error{fmt.Errorf("version %d is newer than supported version %d", schema.Version, SchemaVersion)}
	}

	var errs []error
	for i := range schema.Plans {
		errs = append(errs, validatePlan(fmt.Sprintf("plans[%d]", i), &schema.Plans[i])...)
	}
	return errs
}

func validatePlan(path string, p *PlanImport) []error {
	var errs []error

	if p.Latitude != nil && !inRange(*p.Latitude, -90, 90) {
		errs = append(errs, fmt.Errorf("%s.latitude: %v out of range [-90, 90]", path, *p.Latitude))
	}
	if p.Longitude != nil && !inRange(*p.Longitude, -180, 180) {
		errs = append(errs, fmt.Errorf("%s.longitude: %v out of range [-180, 180]", path, *p.Longitude))
	}
	if p.Budget != nil {
		if err := domain.CheckBudget(*p.Budget); err != nil {
			errs = append(errs, fmt.Errorf("%s.budget: %w", path, err))
		}
	}
	if p.GrowthRate != nil && !domain.IsFinite(*p.GrowthRate) {
		errs = append(errs, fmt.Errorf("%s.growth_rate: must be a finite number, got %v", path, *p.GrowthRate))
	}
	if p.Population != nil && *p.Population < 0 {
		errs = append(errs, fmt.Errorf("%s.population: must not be negative", path))
	}

	if p.ClimateType != "" {
		if _, err := domain.ParseClimateType(p.ClimateType); err != nil {
			errs = append(errs, fmt.Errorf("%s.climate_type: %w", path, err))
		}
	}
	if p.WaterAvailability != "" {
		if _, err := domain.ParseWaterAvailability(p.WaterAvailability); err != nil {
			errs = append(errs, fmt.Errorf("%s.water_availability: %w", path, err))
		}
	}
	if p.DisasterRiskLevel != "" {
		if _, err := domain.ParseDisasterRiskLevel(p.DisasterRiskLevel); err != nil {
			errs = append(errs, fmt.Errorf("%s.disaster_risk_level: %w", path, err))
		}
	}
	if p.PrimaryGoal != "" {
		if _, err := domain.ParsePrimaryGoal(p.PrimaryGoal); err != nil {
			errs = append(errs, fmt.Errorf("%s.primary_goal: %w", path, err))
		}
	}

	seen := make(map[domain.DisasterType]bool, len(p.DisasterTypes))
	for j, s := range p.DisasterTypes {
		dt, err := domain.ParseDisasterType(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.disaster_types[%d]: %w", path, j, err))
			continue
		}
		if seen[dt] {
			errs = append(errs, fmt.Errorf("%s.disaster_types[%d]: duplicate %q", path, j, dt))
		}
		seen[dt] = true
	}

	return errs
}

// inRange is false for NaN, which fails every comparison.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
