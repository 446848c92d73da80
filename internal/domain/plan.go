package domain

import (
	"fmt"
	"slices"
	"time"
)

// PlanInput is the working draft of a city plan. Every field is optional;
// nil means the user has not supplied it yet.
type PlanInput struct {
	CityName          *string            `json:"city_name,omitempty"`
	Latitude          *float64           `json:"latitude,omitempty"`
	Longitude         *float64           `json:"longitude,omitempty"`
	Budget            *float64           `json:"budget,omitempty"`
	Population        *int64             `json:"population,omitempty"`
	GrowthRate        *float64           `json:"growth_rate,omitempty"`
	ClimateType       *ClimateType       `json:"climate_type,omitempty"`
	WaterAvailability *WaterAvailability `json:"water_availability,omitempty"`
	DisasterRiskLevel *DisasterRiskLevel `json:"disaster_risk_level,omitempty"`
	DisasterTypes     []DisasterType     `json:"disaster_types"`
	PrimaryGoal       *PrimaryGoal       `json:"primary_goal,omitempty"`
}

// IsEmpty reports whether no field has been supplied.
func (in PlanInput) IsEmpty() bool {
	return in.CityName == nil && in.Latitude == nil && in.Longitude == nil &&
		in.Budget == nil && in.Population == nil && in.GrowthRate == nil &&
		in.ClimateType == nil && in.WaterAvailability == nil &&
		in.DisasterRiskLevel == nil && in.DisasterTypes == nil && in.PrimaryGoal == nil
}

// Clone returns a deep copy so the caller cannot mutate the receiver's pointees.
func (in PlanInput) Clone() PlanInput {
	return PlanInput{
		CityName:          clonePtr(in.CityName),
		Latitude:          clonePtr(in.Latitude),
		Longitude:         clonePtr(in.Longitude),
		Budget:            clonePtr(in.Budget),
		Population:        clonePtr(in.Population),
		GrowthRate:        clonePtr(in.GrowthRate),
		ClimateType:       clonePtr(in.ClimateType),
		WaterAvailability: clonePtr(in.WaterAvailability),
		DisasterRiskLevel: clonePtr(in.DisasterRiskLevel),
		DisasterTypes:     slices.Clone(in.DisasterTypes),
		PrimaryGoal:       clonePtr(in.PrimaryGoal),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// MaxBudget is the largest budget accepted from flags, the wizard or an
// import file.
const MaxBudget = 1e15

// CheckBudget rejects budgets that are non-finite, negative or above MaxBudget.
func CheckBudget(v float64) error {
	switch {
	case !IsFinite(v):
		return fmt.Errorf("budget must be a finite number, got %v", v)
	case v < 0:
		return fmt.Errorf("budget must not be negative")
	case v > MaxBudget:
		return fmt.Errorf("budget must not exceed %.0f", MaxBudget)
	}
	return nil
}

// BudgetAllocation splits a plan's budget into five shares, in currency units.
type BudgetAllocation struct {
	Infrastructure     int64 `json:"infrastructure" yaml:"infrastructure"`
	WaterSystems       int64 `json:"water_systems" yaml:"water_systems"`
	DisasterMitigation int64 `json:"disaster_mitigation" yaml:"disaster_mitigation"`
	Sustainability     int64 `json:"sustainability" yaml:"sustainability"`
	EmergencyReserve   int64 `json:"emergency_reserve" yaml:"emergency_reserve"`
}

// AllocationShare is one labelled slice of a BudgetAllocation.
type AllocationShare struct {
	Label  string
	Amount int64
}

// Total sums the five shares. It can differ from the plan budget.
func (a BudgetAllocation) Total() int64 {
	return a.Infrastructure + a.WaterSystems + a.DisasterMitigation + a.Sustainability + a.EmergencyReserve
}

// Shares lists the shares in display order.
func (a BudgetAllocation) Shares() []AllocationShare {
	return []AllocationShare{
		{Label: "Infrastructure", Amount: a.Infrastructure},
		{Label: "Water Systems", Amount: a.WaterSystems},
		{Label: "Disaster Mitigation", Amount: a.DisasterMitigation},
		{Label: "Sustainability", Amount: a.Sustainability},
		{Label: "Emergency Reserve", Amount: a.EmergencyReserve},
	}
}

// Plan is a fully derived city plan. Plans are created once and never updated.
type Plan struct {
	ID                  string
	CityName            string
	Latitude            float64
	Longitude           float64
	Budget              float64
	Population          int64
	GrowthRate          float64
	ClimateType         ClimateType
	WaterAvailability   WaterAvailability
	DisasterRiskLevel   DisasterRiskLevel
	DisasterTypes       []DisasterType
	PrimaryGoal         PrimaryGoal
	SustainabilityScore int
	BudgetAllocation    BudgetAllocation
	CreatedAt           time.Time
}

// DisplayID returns the first 8 characters of the ID.
func (p *Plan) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// HasDisaster reports whether t is among the plan's disaster tags.
func (p *Plan) HasDisaster(t DisasterType) bool {
	return slices.Contains(p.DisasterTypes, t)
}

// Input converts the plan back into a fully populated PlanInput, e.g. for export.
func (p *Plan) Input() PlanInput {
	return PlanInput{
		CityName:          Ptr(p.CityName),
		Latitude:          Ptr(p.Latitude),
		Longitude:         Ptr(p.Longitude),
		Budget:            Ptr(p.Budget),
		Population:        Ptr(p.Population),
		GrowthRate:        Ptr(p.GrowthRate),
		ClimateType:       Ptr(p.ClimateType),
		WaterAvailability: Ptr(p.WaterAvailability),
		DisasterRiskLevel: Ptr(p.DisasterRiskLevel),
		DisasterTypes:     slices.Clone(p.DisasterTypes),
		PrimaryGoal:       Ptr(p.PrimaryGoal),
	}
}
