package cli

import (
	"fmt"

	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/spf13/pflag"
)

// planFieldFlags are the per-field flags shared by "plan new" and
// "plan draft set".
type planFieldFlags struct {
	name       string
	lat        float64
	lon        float64
	budget     float64
	population int64
	growth     float64
	climate    string
	water      string
	risk       string
	disasters  []string
	goal       string
}

var planFieldFlagNames = []string{
	"name", "lat", "lon", "budget", "population", "growth",
	"climate", "water", "risk", "disaster", "goal",
}

func (f *planFieldFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "City name")
	fs.Float64Var(&f.lat, "lat", 0, "Latitude in degrees")
	fs.Float64Var(&f.lon, "lon", 0, "Longitude in degrees")
	fs.Float64Var(&f.budget, "budget", 0, "Total budget")
	fs.Int64Var(&f.population, "population", 0, "Current population")
	fs.Float64Var(&f.growth, "growth", 0, "Annual growth rate in percent")
	fs.StringVar(&f.climate, "climate", "", "Climate: Tropical, Arid, Temperate, Continental, Polar")
	fs.StringVar(&f.water, "water", "", "Water availability: Scarce, Moderate, Abundant")
	fs.StringVar(&f.risk, "risk", "", "Disaster risk level: Low, Medium, High")
	fs.StringSliceVar(&f.disasters, "disaster", nil, "Disaster type (repeatable): Flood, Earthquake, Cyclone, Drought, Landslide, Tsunami")
	fs.StringVar(&f.goal, "goal", "", "Primary goal: Sustainable, Commercial, Residential")
}

// anyChanged reports whether the user set at least one field flag.
func (f *planFieldFlags) anyChanged(fs *pflag.FlagSet) bool {
	for _, name := range planFieldFlagNames {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

func checkFinite(flag string, v float64) error {
	if !domain.IsFinite(v) {
		return fmt.Errorf("%s must be a finite number, got %v", flag, v)
	}
	return nil
}

// patch builds a PlanInput holding only the fields whose flags were set.
// Enum values are matched case-insensitively and rejected when unknown.
func (f *planFieldFlags) patch(fs *pflag.FlagSet) (domain.PlanInput, error) {
	var in domain.PlanInput

	if fs.Changed("name") {
		in.CityName = domain.Ptr(f.name)
	}
	if fs.Changed("lat") {
		if err := checkFinite("--lat", f.lat); err != nil {
			return in, err
		}
		in.Latitude = domain.Ptr(f.lat)
	}
	if fs.Changed("lon") {
		if err := checkFinite("--lon", f.lon); err != nil {
			return in, err
		}
		in.Longitude = domain.Ptr(f.lon)
	}
	if fs.Changed("budget") {
		if err := domain.CheckBudget(f.budget); err != nil {
			return in, fmt.Errorf("--budget: %w", err)
		}
		in.Budget = domain.Ptr(f.budget)
	}
	if fs.Changed("population") {
		in.Population = domain.Ptr(f.population)
	}
	if fs.Changed("growth") {
		if err := checkFinite("--growth", f.growth); err != nil {
			return in, err
		}
		in.GrowthRate = domain.Ptr(f.growth)
	}
	if fs.Changed("climate") {
		v, err := domain.ParseClimateType(f.climate)
		if err != nil {
			return in, err
		}
		in.ClimateType = &v
	}
	if fs.Changed("water") {
		v, err := domain.ParseWaterAvailability(f.water)
		if err != nil {
			return in, err
		}
		in.WaterAvailability = &v
	}
	if fs.Changed("risk") {
		v, err := domain.ParseDisasterRiskLevel(f.risk)
		if err != nil {
			return in, err
		}
		in.DisasterRiskLevel = &v
	}
	if fs.Changed("disaster") {
		types, err := parseDisasterTypes(f.disasters)
		if err != nil {
			return in, err
		}
		in.DisasterTypes = types
	}
	if fs.Changed("goal") {
		v, err := domain.ParsePrimaryGoal(f.goal)
		if err != nil {
			return in, err
		}
		in.PrimaryGoal = &v
	}
	return in, nil
}

func parseDisasterTypes(raw []string) ([]domain.DisasterType, error) {
	types := make([]domain.DisasterType, 0, len(raw))
	for _, s := range raw {
		if s == "" {
			continue
		}
		t, err := domain.ParseDisasterType(s)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
