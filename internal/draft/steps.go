package draft

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cityplan/internal/domain"
)

// Step describes one page of the plan wizard.
type Step struct {
	Index int
	Label string
}

// Steps is the wizard page order.
var Steps = []Step{
	{Index: 0, Label: "Location"},
	{Index: 1, Label: "Budget"},
	{Index: 2, Label: "Population"},
	{Index: 3, Label: "Environment"},
	{Index: 4, Label: "Risks"},
	{Index: 5, Label: "Goals"},
}

// LastStep is the index of the final wizard page.
var LastStep = len(Steps) - 1

// FieldError reports a rejected wizard field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateStep applies the wizard's per-page checks to input. Only the
// location, budget and population pages have required fields.
func ValidateStep(step int, input domain.PlanInput) []FieldError {
	var errs []FieldError
	switch step {
	case 0:
		if input.CityName == nil || strings.TrimSpace(*input.CityName) == "" {
			errs = append(errs, FieldError{Field: "city_name", Message: "required"})
		}
	case 1:
		if input.Budget == nil || *input.Budget <= 0 {
			errs = append(errs, FieldError{Field: "budget", Message: "enter a valid budget"})
		}
	case 2:
		if input.Population == nil || *input.Population <= 0 {
			errs = append(errs, FieldError{Field: "population", Message: "required"})
		}
	}
	return errs
}

// ValidateAll runs every page check and concatenates the failures.
func ValidateAll(input domain.PlanInput) []FieldError {
	var errs []FieldError
	for _, s := range Steps {
		errs = append(errs, ValidateStep(s.Index, input)...)
	}
	return errs
}
