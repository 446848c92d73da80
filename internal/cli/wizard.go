package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/alexanderramin/cityplan/internal/cli/formatter"
	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/alexanderramin/cityplan/internal/draft"
	"github.com/alexanderramin/cityplan/internal/planner"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// cityplanHuhTheme returns a huh theme using the Gruvbox palette.
func cityplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardValues holds the raw form state. Numeric fields stay strings until
// a step commits so the inputs can show exactly what was typed.
type wizardValues struct {
	name       string
	lat        string
	lon        string
	budget     string
	population string
	growth     string
	climate    domain.ClimateType
	water      domain.WaterAvailability
	risk       domain.DisasterRiskLevel
	disasters  []domain.DisasterType
	goal       domain.PrimaryGoal
}

// wizardValuesFrom pre-fills the form from a saved draft. Unset selects
// start on their defaults.
func wizardValuesFrom(in domain.PlanInput) *wizardValues {
	return &wizardValues{
		name:       domain.ValueOr(in.CityName, ""),
		lat:        optFloatString(in.Latitude),
		lon:        optFloatString(in.Longitude),
		budget:     optFloatString(in.Budget),
		population: optIntString(in.Population),
		growth:     optFloatString(in.GrowthRate),
		climate:    domain.ValueOr(in.ClimateType, planner.DefaultClimateType),
		water:      domain.ValueOr(in.WaterAvailability, planner.DefaultWaterAvailability),
		risk:       domain.ValueOr(in.DisasterRiskLevel, planner.DefaultDisasterRiskLevel),
		disasters:  slices.Clone(in.DisasterTypes),
		goal:       domain.ValueOr(in.PrimaryGoal, planner.DefaultPrimaryGoal),
	}
}

// wizardStep is one page of the wizard: the huh group that collects it and
// the conversion of its values into a draft patch.
type wizardStep struct {
	group func(v *wizardValues) *huh.Group
	patch func(v *wizardValues) (domain.PlanInput, error)
}

// wizardSteps returns the pages in draft.Steps order.
func wizardSteps() []wizardStep {
	return []wizardStep{
		{
			group: func(v *wizardValues) *huh.Group {
				return huh.NewGroup(
					huh.NewInput().Title("City Name").Placeholder("Greenhaven").Value(&v.name).
						Validate(stepValidator(0, "city_name", parseName)),
					huh.NewInput().Title("Latitude").Placeholder("0").Value(&v.lat).
						Validate(validateOptionalRange(-90, 90)),
					huh.NewInput().Title("Longitude").Placeholder("0").Value(&v.lon).
						Validate(validateOptionalRange(-180, 180)),
				)
			},
			patch: func(v *wizardValues) (domain.PlanInput, error) {
				in, err := parseName(v.name)
				if err != nil {
					return in, err
				}
				if in.Latitude, err = parseOptionalFloat(v.lat); err != nil {
					return in, fmt.Errorf("latitude: %w", err)
				}
				if in.Longitude, err = parseOptionalFloat(v.lon); err != nil {
					return in, fmt.Errorf("longitude: %w", err)
				}
				return in, nil
			},
		},
		{
			group: func(v *wizardValues) *huh.Group {
				return huh.NewGroup(
					huh.NewInput().Title("Total Budget").Placeholder("10,000,000").Value(&v.budget).
						Validate(stepValidator(1, "budget", parseBudget)),
				)
			},
			patch: func(v *wizardValues) (domain.PlanInput, error) {
				return parseBudget(v.budget)
			},
		},
		{
			group: func(v *wizardValues) *huh.Group {
				return huh.NewGroup(
					huh.NewInput().Title("Current Population").Placeholder("500,000").Value(&v.population).
						Validate(stepValidator(2, "population", parsePopulation)),
					huh.NewInput().Title("Annual Growth Rate (%)").Placeholder("2.5").Value(&v.growth).
						Validate(validateOptionalRange(-100, 100)),
				)
			},
			patch: func(v *wizardValues) (domain.PlanInput, error) {
				in, err := parsePopulation(v.population)
				if err != nil {
					return in, err
				}
				if in.GrowthRate, err = parseOptionalFloat(v.growth); err != nil {
					return in, fmt.Errorf("growth rate: %w", err)
				}
				return in, nil
			},
		},
		{
			group: func(v *wizardValues) *huh.Group {
				return huh.NewGroup(
					huh.NewSelect[domain.ClimateType]().Title("Climate").
						Options(huh.NewOptions(domain.ClimateTypes...)...).Value(&v.climate),
					huh.NewSelect[domain.WaterAvailability]().Title("Water Availability").
						Options(huh.NewOptions(domain.WaterAvailabilities...)...).Value(&v.water),
				)
			},
			patch: func(v *wizardValues) (domain.PlanInput, error) {
				return domain.PlanInput{ClimateType: domain.Ptr(v.climate), WaterAvailability: domain.Ptr(v.water)}, nil
			},
		},
		{
			group: func(v *wizardValues) *huh.Group {
				return huh.NewGroup(
					huh.NewSelect[domain.DisasterRiskLevel]().Title("Disaster Risk Level").
						Options(huh.NewOptions(domain.DisasterRiskLevels...)...).Value(&v.risk),
					huh.NewMultiSelect[domain.DisasterType]().Title("Disaster Types").
						Description("Space to toggle, enter to continue").
						Options(huh.NewOptions(domain.DisasterTypes...)...).Value(&v.disasters),
				)
			},
			patch: func(v *wizardValues) (domain.PlanInput, error) {
				types := slices.Clone(v.disasters)
				if types == nil {
					types = []domain.DisasterType{}
				}
				return domain.PlanInput{DisasterRiskLevel: domain.Ptr(v.risk), DisasterTypes: types}, nil
			},
		},
		{
			group: func(v *wizardValues) *huh.Group {
				return huh.NewGroup(
					huh.NewSelect[domain.PrimaryGoal]().Title("Primary Goal").
						Options(huh.NewOptions(domain.PrimaryGoals...)...).Value(&v.goal),
				)
			},
			patch: func(v *wizardValues) (domain.PlanInput, error) {
				return domain.PlanInput{PrimaryGoal: domain.Ptr(v.goal)}, nil
			},
		},
	}
}

// runPlanWizard walks the remaining wizard pages starting at the draft's
// saved step, committing each page before showing the next. It returns a nil
// plan when the user aborts or declines to generate.
func runPlanWizard(ctx context.Context, app *App) (*domain.Plan, error) {
	in, start, err := app.Plans.Draft(ctx)
	if err != nil {
		return nil, err
	}
	if start < 0 || start > draft.LastStep {
		start = 0
	}

	v := wizardValuesFrom(in)
	steps := wizardSteps()

	for i := start; i < len(steps); i++ {
		title := fmt.Sprintf("Step %d/%d · %s", i+1, len(steps), draft.Steps[i].Label)
		form := huh.NewForm(steps[i].group(v).Title(title)).
			WithTheme(cityplanHuhTheme()).WithShowHelp(false)
		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, nil
			}
			return nil, err
		}

		patch, err := steps[i].patch(v)
		if err != nil {
			return nil, err
		}
		if err := app.Plans.SetField(ctx, patch); err != nil {
			return nil, err
		}
		if err := app.Plans.SetStep(ctx, min(i+1, draft.LastStep)); err != nil {
			return nil, err
		}
	}

	generate := true
	confirm := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title("Generate plan?").Affirmative("Generate").Negative("Keep editing").Value(&generate),
	)).WithTheme(cityplanHuhTheme()).WithShowHelp(false)
	if err := confirm.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}
	if !generate {
		return nil, nil
	}
	return app.Plans.Submit(ctx)
}

// stepValidator adapts draft.ValidateStep to a huh field validator: the raw
// value is parsed into a patch and checked against the page rules for field.
func stepValidator(step int, field string, parse func(string) (domain.PlanInput, error)) func(string) error {
	return func(s string) error {
		patch, err := parse(s)
		if err != nil {
			return err
		}
		for _, fe := range draft.ValidateStep(step, patch) {
			if fe.Field == field {
				return errors.New(fe.Message)
			}
		}
		return nil
	}
}

// validateOptionalRange accepts blank input or a number within [lo, hi].
func validateOptionalRange(lo, hi float64) func(string) error {
	return func(s string) error {
		v, err := parseOptionalFloat(s)
		if err != nil {
			return err
		}
		if v != nil && (*v < lo || *v > hi) {
			return fmt.Errorf("must be between %g and %g", lo, hi)
		}
		return nil
	}
}

func parseName(s string) (domain.PlanInput, error) {
	return domain.PlanInput{CityName: domain.Ptr(strings.TrimSpace(s))}, nil
}

// parseBudget accepts grouped input such as "10,000,000".
func parseBudget(s string) (domain.PlanInput, error) {
	v, err := strconv.ParseFloat(cleanNumber(s), 64)
	if err != nil || !domain.IsFinite(v) {
		return domain.PlanInput{}, errors.New("enter a valid budget")
	}
	if v > domain.MaxBudget {
		return domain.PlanInput{}, domain.CheckBudget(v)
	}
	return domain.PlanInput{Budget: &v}, nil
}

func parsePopulation(s string) (domain.PlanInput, error) {
	v, err := strconv.ParseInt(cleanNumber(s), 10, 64)
	if err != nil {
		return domain.PlanInput{}, errors.New("enter a whole number")
	}
	return domain.PlanInput{Population: &v}, nil
}

// parseOptionalFloat returns nil for blank input.
func parseOptionalFloat(s string) (*float64, error) {
	s = cleanNumber(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !domain.IsFinite(v) {
		return nil, errors.New("enter a number")
	}
	return &v, nil
}

func cleanNumber(s string) string {
	return strings.NewReplacer(",", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
}

func optFloatString(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func optIntString(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}
