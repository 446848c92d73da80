package domain

import (
	"fmt"
	"strings"
)

type ClimateType string

const (
	ClimateTropical    ClimateType = "Tropical"
	ClimateArid        ClimateType = "Arid"
	ClimateTemperate   ClimateType = "Temperate"
	ClimateContinental ClimateType = "Continental"
	ClimatePolar       ClimateType = "Polar"
)

type WaterAvailability string

const (
	WaterScarce   WaterAvailability = "Scarce"
	WaterModerate WaterAvailability = "Moderate"
	WaterAbundant WaterAvailability = "Abundant"
)

type DisasterRiskLevel string

const (
	RiskLow    DisasterRiskLevel = "Low"
	RiskMedium DisasterRiskLevel = "Medium"
	RiskHigh   DisasterRiskLevel = "High"
)

type DisasterType string

const (
	DisasterFlood      DisasterType = "Flood"
	DisasterEarthquake DisasterType = "Earthquake"
	DisasterCyclone    DisasterType = "Cyclone"
	DisasterDrought    DisasterType = "Drought"
	DisasterLandslide  DisasterType = "Landslide"
	DisasterTsunami    DisasterType = "Tsunami"
)

type PrimaryGoal string

const (
	GoalSustainable PrimaryGoal = "Sustainable"
	GoalCommercial  PrimaryGoal = "Commercial"
	GoalResidential PrimaryGoal = "Residential"
)

// Canonical option lists, in the order the wizard presents them.
var (
	ClimateTypes        = []ClimateType{ClimateTropical, ClimateArid, ClimateTemperate, ClimateContinental, ClimatePolar}
	WaterAvailabilities = []WaterAvailability{WaterScarce, WaterModerate, WaterAbundant}
	DisasterRiskLevels  = []DisasterRiskLevel{RiskLow, RiskMedium, RiskHigh}
	DisasterTypes       = []DisasterType{DisasterFlood, DisasterEarthquake, DisasterCyclone, DisasterDrought, DisasterLandslide, DisasterTsunami}
	PrimaryGoals        = []PrimaryGoal{GoalSustainable, GoalCommercial, GoalResidential}
)

// ParseClimateType matches s case-insensitively against the known climates.
func ParseClimateType(s string) (ClimateType, error) {
	return parseEnum("climate type", s, ClimateTypes)
}

// ParseWaterAvailability matches s case-insensitively against the known water levels.
func ParseWaterAvailability(s string) (WaterAvailability, error) {
	return parseEnum("water availability", s, WaterAvailabilities)
}

// ParseDisasterRiskLevel matches s case-insensitively against Low/Medium/High.
func ParseDisasterRiskLevel(s string) (DisasterRiskLevel, error) {
	return parseEnum("disaster risk level", s, DisasterRiskLevels)
}

// ParseDisasterType matches s case-insensitively against the disaster tags.
func ParseDisasterType(s string) (DisasterType, error) {
	return parseEnum("disaster type", s, DisasterTypes)
}

// ParsePrimaryGoal matches s case-insensitively against the known goals.
func ParsePrimaryGoal(s string) (PrimaryGoal, error) {
	return parseEnum("primary goal", s, PrimaryGoals)
}

func parseEnum[T ~string](kind, s string, valid []T) (T, error) {
	s = strings.TrimSpace(s)
	for _, v := range valid {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	names := make([]string, len(valid))
	for i, v := range valid {
		names[i] = string(v)
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q (expected one of %s)", kind, s, strings.Join(names, ", "))
}
