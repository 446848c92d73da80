package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/alexanderramin/cityplan/internal/planner"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// BandStyle returns the style for a sustainability score band.
func BandStyle(b planner.Band) lipgloss.Style {
	switch b {
	case planner.BandGood:
		return StyleGreen
	case planner.BandFair:
		return StyleYellow
	default:
		return StyleRed
	}
}

// ScoreBadge renders a score such as "● 85 Good" in its band color.
func ScoreBadge(score int) string {
	band := planner.ScoreBand(score)
	return BandStyle(band).Render(fmt.Sprintf("● %d %s", score, band))
}

// RiskLevelIndicator returns a colored disaster risk indicator such as "▲ HIGH".
func RiskLevelIndicator(risk domain.DisasterRiskLevel) string {
	label := strings.ToUpper(string(risk))
	switch risk {
	case domain.RiskHigh:
		return StyleRed.Render("▲ " + label)
	case domain.RiskMedium:
		return StyleYellow.Render("◆ " + label)
	case domain.RiskLow:
		return StyleGreen.Render("▼ " + label)
	default:
		return StyleDim.Render("? " + label)
	}
}

// GoalBadge returns a purple goal label.
func GoalBadge(g domain.PrimaryGoal) string {
	if g == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(string(g))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
