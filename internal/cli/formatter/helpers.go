package formatter

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// DefaultCurrency prefixes money amounts when the caller does not choose one.
const DefaultCurrency = "$"

// RenderBox renders content inside a rounded-border box with an optional title.
func RenderBox(title, content string) string {
	border := lipgloss.RoundedBorder()
	style := lipgloss.NewStyle().
		Border(border).
		BorderForeground(ColorDim).
		Padding(0, 1)

	if title != "" {
		titleRendered := StyleHeader.Render(title)
		return titleRendered + "\n" + style.Render(content)
	}
	return style.Render(content)
}

// Money formats a whole currency amount with thousands separators, e.g. "$1,250,000".
func Money(currency string, amount int64) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	if amount < 0 {
		return "-" + currency + humanize.Comma(-amount)
	}
	return currency + humanize.Comma(amount)
}

// MoneyFloat formats a budget figure. Fractional cents are rounded away.
func MoneyFloat(currency string, amount float64) string {
	return Money(currency, int64(math.Round(amount)))
}

// Count formats a head count or volume with thousands separators.
func Count(n int64) string {
	return humanize.Comma(n)
}

// Coordinates formats a latitude/longitude pair with hemisphere letters.
func Coordinates(lat, lon float64) string {
	ns, ew := "N", "E"
	if lat < 0 {
		ns = "S"
	}
	if lon < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.4f°%s %.4f°%s", math.Abs(lat), ns, math.Abs(lon), ew)
}

// Percent formats a growth rate such as 2.5 as "2.5%".
func Percent(v float64) string {
	return humanize.FtoaWithDigits(v, 2) + "%"
}

// RelativeTime describes t relative to now, e.g. "3 hours ago".
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return humanize.Time(t)
}

// HumanTimestamp formats an absolute UTC timestamp such as "Mar 15, 2025 12:00 UTC".
func HumanTimestamp(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.UTC().Format("Jan 2, 2006 15:04 UTC")
}

// TruncID returns the first 8 characters of an ID string.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Truncate shortens s to width visible characters, adding an ellipsis.
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
