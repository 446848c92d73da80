package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cityplan/internal/planner"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clampUnit(pct)
	bar := blocks(pct, width)

	var style = StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", style.Render(bar), pctStr)
}

// RenderScoreGauge renders a 0-100 score as a bar colored by its band.
func RenderScoreGauge(score, width int) string {
	pct := clampUnit(float64(score) / 100)
	return fmt.Sprintf("[%s] %s", BandStyle(planner.ScoreBand(score)).Render(blocks(pct, width)), ScoreBadge(score))
}

// RenderShareBar renders a plain bar without brackets or percentage, used
// for allocation and risk rows where the value is printed separately.
func RenderShareBar(pct float64, width int) string {
	return StyleAqua.Render(blocks(clampUnit(pct), width))
}

func blocks(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := min(int(pct*float64(width)+0.5), width)
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func clampUnit(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}
