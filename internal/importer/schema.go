package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is written to exported documents.
const SchemaVersion = 1

// ImportSchema is the top-level structure of a plan document. The same shape
// is accepted as JSON or YAML.
type ImportSchema struct {
	Version int          `json:"version,omitempty" yaml:"version,omitempty"`
	Plans   []PlanImport `json:"plans" yaml:"plans"`
}

// PlanImport holds the wizard fields for one plan. Missing fields are
// defaulted when the plan is derived, exactly as for a wizard draft.
type PlanImport struct {
	CityName          *string  `json:"city_name,omitempty" yaml:"city_name,omitempty"`
	Latitude          *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Budget            *float64 `json:"budget,omitempty" yaml:"budget,omitempty"`
	Population        *int64   `json:"population,omitempty" yaml:"population,omitempty"`
	GrowthRate        *float64 `json:"growth_rate,omitempty" yaml:"growth_rate,omitempty"`
	ClimateType       string   `json:"climate_type,omitempty" yaml:"climate_type,omitempty"`
	WaterAvailability string   `json:"water_availability,omitempty" yaml:"water_availability,omitempty"`
	DisasterRiskLevel string   `json:"disaster_risk_level,omitempty" yaml:"disaster_risk_level,omitempty"`
	DisasterTypes     []string `json:"disaster_types,omitempty" yaml:"disaster_types,omitempty"`
	PrimaryGoal       string   `json:"primary_goal,omitempty" yaml:"primary_goal,omitempty"`

	// Derived values are informational on export and ignored on import.
	SustainabilityScore *int            `json:"sustainability_score,omitempty" yaml:"sustainability_score,omitempty"`
	BudgetAllocation    *AllocationView `json:"budget_allocation,omitempty" yaml:"budget_allocation,omitempty"`
	ID                  string          `json:"id,omitempty" yaml:"id,omitempty"`
}

// AllocationView mirrors domain.BudgetAllocation in exported documents.
type AllocationView struct {
	Infrastructure     int64 `json:"infrastructure" yaml:"infrastructure"`
	WaterSystems       int64 `json:"water_systems" yaml:"water_systems"`
	DisasterMitigation int64 `json:"disaster_mitigation" yaml:"disaster_mitigation"`
	Sustainability     int64 `json:"sustainability" yaml:"sustainability"`
	EmergencyReserve   int64 `json:"emergency_reserve" yaml:"emergency_reserve"`
}

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected json or yaml)", s)
	}
}

// FormatForPath picks the encoding from the file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadImportSchema reads and parses a plan document.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, FormatForPath(path))
}

// ParseImportSchema decodes a plan document in the given format.
func ParseImportSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &schema)
	default:
		err = json.Unmarshal(data, &schema)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// Marshal encodes schema in the given format.
func Marshal(schema *ImportSchema, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(schema)
	default:
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}
