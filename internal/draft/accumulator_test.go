package draft

import (
	"math"
	"testing"

	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulator_SetFieldMerges(t *testing.T) {
	a := New()
	a.SetField(domain.PlanInput{CityName: domain.Ptr("Oslo")})
	a.SetField(domain.PlanInput{Budget: domain.Ptr(500.0)})

	snap := a.Snapshot()
	require.NotNil(t, snap.CityName)
	require.NotNil(t, snap.Budget)
	assert.Equal(t, "Oslo", *snap.CityName)
	assert.Equal(t, 500.0, *snap.Budget)
	assert.Nil(t, snap.Population, "untouched fields stay absent")
}

func TestAccumulator_LastWriteWins(t *testing.T) {
	a := New()
	a.SetField(domain.PlanInput{CityName: domain.Ptr("Oslo"), PrimaryGoal: domain.Ptr(domain.GoalCommercial)})
	a.SetField(domain.PlanInput{CityName: domain.Ptr("Bergen")})

	snap := a.Snapshot()
	assert.Equal(t, "Bergen", *snap.CityName)
	assert.Equal(t, domain.GoalCommercial, *snap.PrimaryGoal)
}

func TestAccumulator_AcceptsAnyValue(t *testing.T) {
	a := New()
	a.SetField(domain.PlanInput{Budget: domain.Ptr(-10.0), Population: domain.Ptr(int64(0))})

	snap := a.Snapshot()
	assert.Equal(t, -10.0, *snap.Budget)
	assert.Equal(t, int64(0), *snap.Population)
}

func TestAccumulator_SnapshotIsIsolated(t *testing.T) {
	a := New()
	a.SetField(domain.PlanInput{DisasterTypes: []domain.DisasterType{domain.DisasterFlood}})

	snap := a.Snapshot()
	snap.DisasterTypes[0] = domain.DisasterDrought

	assert.Equal(t, []domain.DisasterType{domain.DisasterFlood}, a.Snapshot().DisasterTypes)
}

func TestAccumulator_PatchIsCopied(t *testing.T) {
	a := New()
	name := "Quito"
	a.SetField(domain.PlanInput{CityName: &name})
	name = "Lima"

	assert.Equal(t, "Quito", *a.Snapshot().CityName)
}

func TestAccumulator_SetStepUnbounded(t *testing.T) {
	a := New()
	assert.Equal(t, 0, a.Step())
	a.SetStep(3)
	assert.Equal(t, 3, a.Step())
	a.SetStep(42)
	assert.Equal(t, 42, a.Step())
	a.SetStep(-1)
	assert.Equal(t, -1, a.Step())
}

func TestAccumulator_Reset(t *testing.T) {
	a := New()
	a.SetField(domain.PlanInput{CityName: domain.Ptr("Oslo")})
	a.SetStep(4)
	require.False(t, a.IsEmpty())

	a.Reset()
	assert.True(t, a.IsEmpty())
	assert.Equal(t, 0, a.Step())
}

func TestAccumulator_ToggleDisaster(t *testing.T) {
	a := New()
	a.ToggleDisaster(domain.DisasterFlood)
	a.ToggleDisaster(domain.DisasterCyclone)
	assert.Equal(t, []domain.DisasterType{domain.DisasterFlood, domain.DisasterCyclone}, a.Snapshot().DisasterTypes)

	a.ToggleDisaster(domain.DisasterFlood)
	assert.Equal(t, []domain.DisasterType{domain.DisasterCyclone}, a.Snapshot().DisasterTypes)

	a.ToggleDisaster(domain.DisasterCyclone)
	snap := a.Snapshot()
	assert.NotNil(t, snap.DisasterTypes)
	assert.Empty(t, snap.DisasterTypes)
}

func TestRestore(t *testing.T) {
	in := domain.PlanInput{CityName: domain.Ptr("Accra")}
	a := Restore(in, 2)
	*in.CityName = "changed"

	assert.Equal(t, 2, a.Step())
	assert.Equal(t, "Accra", *a.Snapshot().CityName)
}

func TestValidateStep(t *testing.T) {
	tests := []struct {
		name  string
		step  int
		input domain.PlanInput
		field string
	}{
		{"missing name", 0, domain.PlanInput{}, "city_name"},
		{"blank name", 0, domain.PlanInput{CityName: domain.Ptr("  ")}, "city_name"},
		{"missing budget", 1, domain.PlanInput{}, "budget"},
		{"zero budget", 1, domain.PlanInput{Budget: domain.Ptr(0.0)}, "budget"},
		{"negative population", 2, domain.PlanInput{Population: domain.Ptr(int64(-5))}, "population"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStep(tt.step, tt.input)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}

	assert.Empty(t, ValidateStep(3, domain.PlanInput{}), "environment page has no required fields")
	assert.Empty(t, ValidateStep(1, domain.PlanInput{Budget: domain.Ptr(1.0)}))
}

func TestValidateAll(t *testing.T) {
	errs := ValidateAll(domain.PlanInput{})
	assert.Len(t, errs, 3)

	ok := domain.PlanInput{
		CityName:   domain.Ptr("Cairo"),
		Budget:     domain.Ptr(1e6),
		Population: domain.Ptr(int64(1000)),
	}
	assert.Empty(t, ValidateAll(ok))
	assert.Equal(t, "budget: enter a valid budget", FieldError{Field: "budget", Message: "enter a valid budget"}.Error())
}

func TestAccumulator_NonFiniteNumberClearsField(t *testing.T) {
	a := New()
	a.SetField(domain.PlanInput{Budget: domain.Ptr(5e6), GrowthRate: domain.Ptr(1.5), Latitude: domain.Ptr(12.0)})

	a.SetField(domain.PlanInput{
		Budget:     domain.Ptr(math.NaN()),
		GrowthRate: domain.Ptr(math.Inf(1)),
	})

	snap := a.Snapshot()
	assert.Nil(t, snap.Budget)
	assert.Nil(t, snap.GrowthRate)
	require.NotNil(t, snap.Latitude)
	assert.Equal(t, 12.0, *snap.Latitude)
}

func TestRestore_DropsNonFiniteNumbers(t *testing.T) {
	a := Restore(domain.PlanInput{Longitude: domain.Ptr(math.NaN())}, 3)
	assert.True(t, a.IsEmpty())
	assert.Equal(t, 3, a.Step())
}
