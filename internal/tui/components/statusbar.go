package components

import (
	"github.com/theirongolddev/backpack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom bar: key hints on the left, and the
// trip name plus any flash message on the right.
func RenderStatusBar(width int, tripName, flash string, saving bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	flashStyle := lipgloss.NewStyle().
		Foreground(t.Yellow).
		Background(t.Surface)
	tripStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	left := base.Render(" [?]help  [a]dd  [e]dit  [q]uit")

	right := ""
	switch {
	case saving:
		right = flashStyle.Render("saving… ")
	case flash != "":
		right = flashStyle.Render(flash + "  ")
	}
	if tripName != "" {
		right += tripStyle.Render(tripName) + base.Render(" ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	gap := base.Width(padding).Render("")

	return lipgloss.NewStyle().Width(width).Render(left + gap + right)
}
