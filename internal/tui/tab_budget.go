package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/backpack/internal/cli"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/pipeline"
	"github.com/theirongolddev/backpack/internal/tui/components"
	"github.com/theirongolddev/backpack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	s := a.summary
	var b strings.Builder

	// Row 1: utilization bars and status
	labelW := 9
	barW := max(components.CardInnerWidth(cw)-labelW-9, 10)
	statusStyle := lipgloss.NewStyle().Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var bars strings.Builder
	bars.WriteString(components.BudgetBar("Planned", s.PlannedUtilization, labelW, barW))
	bars.WriteString("\n")
	bars.WriteString(components.BudgetBar("Spent", s.SpentUtilization, labelW, barW))
	bars.WriteString("\n\n")
	bars.WriteString(statusStyle.Foreground(t.StatusColor(s.Status.Status)).Render(statusLabel(s.Status, a.sym)))
	bars.WriteString(mutedStyle.Render(fmt.Sprintf("  %s of %s planned, %s left",
		cli.FormatMoney(a.sym, s.PlannedTotal),
		cli.FormatMoney(a.sym, s.TotalBudget),
		cli.FormatMoney(a.sym, s.Remaining))))
	bars.WriteString("\n")
	bars.WriteString(statusStyle.Foreground(t.StatusColor(s.SpentStatus.Status)).Render(statusLabel(s.SpentStatus, a.sym)))
	bars.WriteString(mutedStyle.Render(fmt.Sprintf("  %s spent, %s left",
		cli.FormatMoney(a.sym, s.SpentTotal),
		cli.FormatMoney(a.sym, s.SpentRemaining))))

	b.WriteString(components.ContentCard("Budget", bars.String(), cw))
	b.WriteString("\n")

	// Row 2: category table and suggestion
	suggest := a.suggestBody()
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Categories", a.categoryTable(cw), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Suggested Budget", suggest, cw))
	} else {
		widths := components.LayoutRow(cw, 3)
		left := widths[0] + widths[1]
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Categories", a.categoryTable(left), left),
			components.ContentCard("Suggested Budget", suggest, cw-left),
		}))
	}
	b.WriteString("\n")

	// Row 3: spent breakdown
	if len(s.SpentBreakdown) > 0 {
		b.WriteString(components.ContentCard("Spent So Far", a.breakdownBody(s.SpentBreakdown, s.SpentTotal, cw), cw))
	}

	return b.String()
}

func statusLabel(a model.BudgetAssessment, sym string) string {
	switch a.Status {
	case model.OverBudget:
		return "Over budget by " + cli.FormatMoney(sym, a.Over)
	case model.CuttingItClose:
		return "Cutting it close"
	default:
		return "Within budget"
	}
}

// categoryTable lists transport, accommodation and each category with
// planned and spent amounts.
func (a App) categoryTable(outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)
	nameW := max(innerW-36, 10)

	headStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	totalStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	overStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	row := func(name string, planned, spent float64) string {
		return fmt.Sprintf("%-*s %11s %11s %11s", nameW, cli.Truncate(name, nameW),
			cli.FormatMoneyShort(a.sym, planned),
			cli.FormatMoneyShort(a.sym, spent),
			cli.FormatMoneyShort(a.sym, planned-spent))
	}

	s := a.summary
	lines := []string{
		headStyle.Render(fmt.Sprintf("%-*s %11s %11s %11s", nameW, "Category", "Planned", "Spent", "Left")),
		rowStyle.Render(row("Transport", s.TransportCost, s.TransportCost)),
		rowStyle.Render(row("Accommodation", s.AccommodationCost, s.AccommodationCost)),
	}
	for _, c := range a.trip.Budget.Categories {
		style := rowStyle
		if c.Spent > c.Planned && c.Planned > 0 {
			style = overStyle
		}
		lines = append(lines, style.Render(row(c.Name, c.Planned, c.Spent)))
	}
	lines = append(lines, totalStyle.Render(row("Total", s.PlannedTotal, s.SpentTotal)))
	return strings.Join(lines, "\n")
}

// suggestBody compares the budget with the travel style's estimate.
func (a App) suggestBody() string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	days := pipeline.SuggestedDays(a.trip.TripInfo)
	if days == 0 {
		days = len(a.trip.Days)
	}
	suggested := pipeline.SuggestedBudgetFrom(a.styles, a.trip.TravelStyle, days)

	style := a.trip.TravelStyle
	if style == "" {
		style = "not set"
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render("Style      ") + valueStyle.Render(style) + "\n")
	if tier, ok := a.styles.Lookup(a.trip.TravelStyle); ok {
		b.WriteString(labelStyle.Render("Daily      ") + valueStyle.Render(fmt.Sprintf("%s-%s",
			cli.FormatMoneyShort(a.sym, tier.Rate.DailyLow),
			cli.FormatMoneyShort(a.sym, tier.Rate.DailyHigh))) + "\n")
	}
	b.WriteString(labelStyle.Render("Days       ") + valueStyle.Render(cli.FormatDays(days)) + "\n")
	b.WriteString(labelStyle.Render("Suggested  ") + valueStyle.Render(cli.FormatMoneyShort(a.sym, suggested)) + "\n")
	b.WriteString(labelStyle.Render("Current    ") + valueStyle.Render(cli.FormatMoneyShort(a.sym, a.trip.Budget.TotalBudget)))
	return b.String()
}
