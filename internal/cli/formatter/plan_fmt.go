package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/alexanderramin/cityplan/internal/draft"
	"github.com/alexanderramin/cityplan/internal/planner"
)

const barWidth = 20

// FormatPlanList renders the saved plans as a table. The current plan is
// marked with a star.
func FormatPlanList(plans []*domain.Plan, currentID, currency string) string {
	if len(plans) == 0 {
		return Dim("No plans yet. Run 'cityplan plan new' to create one.") + "\n"
	}

	headers := []string{"", "ID", "CITY", "SCORE", "BUDGET", "POPULATION", "GOAL", "CREATED"}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		marker := " "
		if p.ID == currentID {
			marker = StyleYellow.Render("★")
		}
		rows = append(rows, []string{
			marker,
			Dim(p.DisplayID()),
			Bold(Truncate(p.CityName, 28)),
			ScoreBadge(p.SustainabilityScore),
			MoneyFloat(currency, p.Budget),
			Count(p.Population),
			GoalBadge(p.PrimaryGoal),
			Dim(RelativeTime(p.CreatedAt)),
		})
	}
	return RenderAlignedTable(headers, rows, map[int]Align{4: AlignRight, 5: AlignRight})
}

// FormatPlanLine renders a one-line plan reference such as
// "Greenhaven (3f2a9c1d) ● 98 good".
func FormatPlanLine(p *domain.Plan) string {
	return fmt.Sprintf("%s %s %s", Bold(p.CityName), Dim("("+p.DisplayID()+")"), ScoreBadge(p.SustainabilityScore))
}

// FormatPlanReport renders the full report for one plan: profile, score
// breakdown, budget allocation, risk profile and derived insights.
func FormatPlanReport(p *domain.Plan, isCurrent bool, currency string) string {
	var b strings.Builder

	title := p.CityName
	if isCurrent {
		title += " ★"
	}
	b.WriteString(Header(title))
	b.WriteString("\n")

	field := func(label, value string) {
		fmt.Fprintf(&b, "  %-14s %s\n", Dim(label), value)
	}
	field("ID", p.ID)
	field("Created", fmt.Sprintf("%s %s", HumanTimestamp(p.CreatedAt), Dim("("+RelativeTime(p.CreatedAt)+")")))
	field("Location", Coordinates(p.Latitude, p.Longitude))
	field("Population", fmt.Sprintf("%s %s", Count(p.Population), Dim("growing "+Percent(p.GrowthRate)+"/yr")))
	field("Climate", string(p.ClimateType))
	field("Water", string(p.WaterAvailability))
	field("Disaster risk", RiskLevelIndicator(p.DisasterRiskLevel))
	field("Hazards", formatDisasters(p.DisasterTypes))
	field("Goal", GoalBadge(p.PrimaryGoal))

	b.WriteString("\n")
	b.WriteString(Header("Sustainability"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", RenderScoreGauge(p.SustainabilityScore, barWidth))
	for _, r := range planner.Explain(p).Reasons {
		fmt.Fprintf(&b, "  %s %s\n", formatDelta(r.Delta), r.Message)
	}

	b.WriteString("\n")
	b.WriteString(Header("Budget Allocation"))
	b.WriteString("\n")
	b.WriteString(FormatAllocation(p.BudgetAllocation, p.Budget, currency))

	b.WriteString("\n")
	b.WriteString(Header("Risk Profile"))
	b.WriteString("\n")
	for _, f := range planner.RiskProfile(p) {
		label := fmt.Sprintf("%-11s", f.Type)
		if f.Selected {
			label = StyleRed.Render(label)
		} else {
			label = Dim(label)
		}
		fmt.Fprintf(&b, "  %s %s %3.0f\n", label, RenderShareBar(f.Risk/100, barWidth), f.Risk)
	}

	ins := planner.PlanInsights(p)
	b.WriteString("\n")
	b.WriteString(Header("Insights"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Greywater recycling capacity  %s L/day\n", Count(ins.GreywaterLitresPerDay))
	fmt.Fprintf(&b, "  Early warning systems         %s\n", Money(currency, ins.EarlyWarningBudget))

	return b.String()
}

// FormatAllocation renders the five shares with bars relative to budget.
// A trailing note flags allocations whose total differs from the budget.
func FormatAllocation(a domain.BudgetAllocation, budget float64, currency string) string {
	var b strings.Builder
	for _, s := range a.Shares() {
		pct := 0.0
		if budget > 0 {
			pct = float64(s.Amount) / budget
		}
		fmt.Fprintf(&b, "  %-20s %s %14s %s\n",
			s.Label, RenderShareBar(pct, barWidth), Money(currency, s.Amount), Dim(fmt.Sprintf("%3.0f%%", pct*100)))
	}
	fmt.Fprintf(&b, "  %-20s %s %14s\n", "Total", strings.Repeat(" ", barWidth), Bold(Money(currency, a.Total())))

	if diff := a.Total() - int64(budget+0.5); budget > 0 && diff > 0 {
		fmt.Fprintf(&b, "  %s\n", StyleYellow.Render("Allocations exceed the budget by "+Money(currency, diff)))
	}
	return b.String()
}

// FormatDraft renders the in-progress wizard draft with unset fields dimmed,
// outstanding validation errors, and a preview of the score it would earn.
func FormatDraft(input domain.PlanInput, step int, currency string) string {
	var b strings.Builder

	label := ""
	if step >= 0 && step < len(draft.Steps) {
		label = draft.Steps[step].Label
	}
	b.WriteString(Header("Draft"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n\n", Dim(fmt.Sprintf("Step %d/%d · %s", step+1, len(draft.Steps), label)))

	field := func(label, value string) {
		if value == "" {
			value = Dim("--")
		}
		fmt.Fprintf(&b, "  %-18s %s\n", Dim(label), value)
	}
	field("City name", optString(input.CityName))
	field("Latitude", optFloat(input.Latitude, "%.4f"))
	field("Longitude", optFloat(input.Longitude, "%.4f"))
	if input.Budget != nil {
		field("Budget", MoneyFloat(currency, *input.Budget))
	} else {
		field("Budget", "")
	}
	if input.Population != nil {
		field("Population", Count(*input.Population))
	} else {
		field("Population", "")
	}
	if input.GrowthRate != nil {
		field("Growth rate", Percent(*input.GrowthRate))
	} else {
		field("Growth rate", "")
	}
	field("Climate", optString(input.ClimateType))
	field("Water", optString(input.WaterAvailability))
	field("Disaster risk", optString(input.DisasterRiskLevel))
	if len(input.DisasterTypes) > 0 {
		field("Hazards", formatDisasters(input.DisasterTypes))
	} else {
		field("Hazards", "")
	}
	field("Primary goal", optString(input.PrimaryGoal))

	if errs := draft.ValidateAll(input); len(errs) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render("  Missing before submit:"))
		b.WriteString("\n")
		for _, e := range errs {
			fmt.Fprintf(&b, "    %s %s\n", StyleYellow.Render("•"), e.Error())
		}
	}

	r := planner.ApplyDefaults(input)
	preview := planner.Score(r)
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", Dim("Preview score"), ScoreBadge(preview.Score))
	return b.String()
}

// FormatSummary renders the dashboard totals across every saved plan.
func FormatSummary(s planner.Summary, currency string) string {
	if s.PlanCount == 0 {
		return Dim("No plans yet.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header("Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-18s %d\n", Dim("Plans"), s.PlanCount)
	fmt.Fprintf(&b, "  %-18s %s\n", Dim("Average score"), ScoreBadge(s.AverageScore))
	fmt.Fprintf(&b, "  %-18s %s\n", Dim("Total budget"), MoneyFloat(currency, s.TotalBudget))
	fmt.Fprintf(&b, "  %-18s %s\n", Dim("Total population"), Count(s.TotalPopulation))
	return b.String()
}

func formatDisasters(types []domain.DisasterType) string {
	if len(types) == 0 {
		return Dim("none")
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func formatDelta(d int) string {
	s := fmt.Sprintf("%+4d", d)
	switch {
	case d < 0:
		return StyleRed.Render(s)
	case d > 0:
		return StyleGreen.Render(s)
	}
	return Dim(s)
}

func optString[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return string(*p)
}

func optFloat(p *float64, format string) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf(format, *p)
}
