package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/backpack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a filled bar with percentage. pct is 0-1.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = clamp01(pct)
	width = max(width, 1)
	filled := int(pct * float64(width))

	filledStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))
	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForUtilization returns the bar color for a budget utilization
// percentage: green below 75, yellow below 90, orange up to 100, red above.
func ColorForUtilization(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct > 100:
		return t.Red
	case pct >= 90:
		return t.Orange
	case pct >= 75:
		return t.Yellow
	default:
		return t.Green
	}
}

// BudgetBar renders a labelled utilization bar. pct is a percentage and may
// exceed 100; the bar is capped at full while the label shows the real value.
func BudgetBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active
	color := ColorForUtilization(pct)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(clamp01(pct/100)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
}

// CompletionDots renders a day completion score (0-1) as five dots.
func CompletionDots(score float64) string {
	t := theme.Active
	n := int(clamp01(score)*5 + 0.5)

	color := t.TextDim
	switch {
	case score >= 0.75:
		color = t.Green
	case score >= 0.4:
		color = t.Yellow
	case score > 0:
		color = t.Orange
	}
	on := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	off := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return on.Render(strings.Repeat("●", n)) + off.Render(strings.Repeat("○", 5-n))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
