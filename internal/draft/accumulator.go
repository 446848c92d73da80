// Package draft holds the partially entered plan while the wizard runs.
package draft

import (
	"slices"

	"github.com/alexanderramin/cityplan/internal/domain"
)

// Accumulator merges field edits into a PlanInput and tracks the active
// wizard step. It performs no validation and cannot fail.
type Accumulator struct {
	input domain.PlanInput
	step  int
}

// New returns an empty accumulator at step 0.
func New() *Accumulator {
	return &Accumulator{}
}

// Restore returns an accumulator seeded from previously saved state.
func Restore(input domain.PlanInput, step int) *Accumulator {
	a := New()
	a.SetField(input)
	a.SetStep(step)
	return a
}

// SetField merges every non-nil field of patch into the draft. Fields absent
// from patch are left untouched; present ones overwrite. A NaN or infinite
// number clears its field, the same as blanking the input.
func (a *Accumulator) SetField(patch domain.PlanInput) {
	p := patch.Clone()
	if p.CityName != nil {
		a.input.CityName = p.CityName
	}
	if p.Latitude != nil {
		a.input.Latitude = finiteOrNil(p.Latitude)
	}
	if p.Longitude != nil {
		a.input.Longitude = finiteOrNil(p.Longitude)
	}
	if p.Budget != nil {
		a.input.Budget = finiteOrNil(p.Budget)
	}
	if p.Population != nil {
		a.input.Population = p.Population
	}
	if p.GrowthRate != nil {
		a.input.GrowthRate = finiteOrNil(p.GrowthRate)
	}
	if p.ClimateType != nil {
		a.input.ClimateType = p.ClimateType
	}
	if p.WaterAvailability != nil {
		a.input.WaterAvailability = p.WaterAvailability
	}
	if p.DisasterRiskLevel != nil {
		a.input.DisasterRiskLevel = p.DisasterRiskLevel
	}
	if p.DisasterTypes != nil {
		a.input.DisasterTypes = p.DisasterTypes
	}
	if p.PrimaryGoal != nil {
		a.input.PrimaryGoal = p.PrimaryGoal
	}
}

func finiteOrNil(v *float64) *float64 {
	if !domain.IsFinite(*v) {
		return nil
	}
	return v
}

// ToggleDisaster adds t to the disaster set, or removes it if already present.
func (a *Accumulator) ToggleDisaster(t domain.DisasterType) {
	current := slices.Clone(a.input.DisasterTypes)
	if i := slices.Index(current, t); i >= 0 {
		current = slices.Delete(current, i, i+1)
	} else {
		current = append(current, t)
	}
	if current == nil {
		current = []domain.DisasterType{}
	}
	a.input.DisasterTypes = current
}

// SetStep moves to step n. Bounds are the caller's concern.
func (a *Accumulator) SetStep(n int) {
	a.step = n
}

// Reset clears the draft and returns to step 0.
func (a *Accumulator) Reset() {
	a.input = domain.PlanInput{}
	a.step = 0
}

// Snapshot returns a deep copy of the current draft.
func (a *Accumulator) Snapshot() domain.PlanInput {
	return a.input.Clone()
}

// Step returns the active wizard step.
func (a *Accumulator) Step() int {
	return a.step
}

// IsEmpty reports whether nothing has been entered since the last reset.
func (a *Accumulator) IsEmpty() bool {
	return a.input.IsEmpty()
}
