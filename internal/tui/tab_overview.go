package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/backpack/internal/cli"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/pipeline"
	"github.com/theirongolddev/backpack/internal/tui/components"
	"github.com/theirongolddev/backpack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.summary
	var b strings.Builder

	// Row 1: metric cards
	metrics := []components.Metric{
		{
			Label: "Budget",
			Value: cli.FormatMoneyShort(a.sym, s.TotalBudget),
			Note:  cli.FormatMoneyShort(a.sym, s.Remaining) + " left",
			Color: t.StatusColor(s.Status.Status),
		},
		{
			Label: "Planned",
			Value: cli.FormatMoneyShort(a.sym, s.PlannedTotal),
			Note:  cli.FormatPct(s.PlannedUtilization) + " of budget",
			Color: components.ColorForUtilization(s.PlannedUtilization),
		},
		{
			Label: "Spent",
			Value: cli.FormatMoneyShort(a.sym, s.SpentTotal),
			Note:  cli.FormatPct(s.SpentUtilization) + " of budget",
			Color: components.ColorForUtilization(s.SpentUtilization),
		},
		{
			Label: "Per day",
			Value: cli.FormatMoney(a.sym, s.AverageDailyCost),
			Note:  "travel + stay",
		},
		{
			Label: "Complete",
			Value: fmt.Sprintf("%d/%d", s.CompleteDays, s.DayCount),
			Note:  cli.FormatPercent(s.CompletionRate) + " of days",
		},
	}
	if a.isCompactLayout() {
		metrics = metrics[:4]
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: how much of the itinerary is filled in
	if s.DayCount > 0 {
		b.WriteString(components.ContentCard("Trip Readiness", a.readinessBody(cw), cw))
		b.WriteString("\n")
	}

	// Row 3: daily cost chart
	if len(s.DailyCosts) > 0 {
		vals := make([]float64, len(s.DailyCosts))
		labels := make([]string, len(s.DailyCosts))
		for i, dc := range s.DailyCosts {
			vals[i] = dc.Cost
			labels[i] = strconv.Itoa(dc.DayNumber)
		}
		chartH := 10
		if a.isCompactLayout() {
			chartH = 7
		}
		b.WriteString(components.ContentCard(
			"Daily Cost",
			components.BarChart(vals, labels, t.Blue, components.CardInnerWidth(cw), chartH, a.axisMoney),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 4: breakdown and type usage
	types := a.typesBody()
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Where the Money Goes", a.breakdownBody(s.Breakdown, s.PlannedTotal, cw), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Getting Around & Sleeping", types, cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Where the Money Goes", a.breakdownBody(s.Breakdown, s.PlannedTotal, halves[0]), halves[0]),
			components.ContentCard("Getting Around & Sleeping", types, halves[1]),
		}))
	}
	b.WriteString("\n")

	// Row 5: advice
	if insights := append(append([]pipeline.Insight(nil), a.suggestions...), a.tips...); len(insights) > 0 {
		b.WriteString(components.ContentCard("Tips", renderInsights(insights), cw))
	}

	return b.String()
}

// readinessBody shows the share of substantially complete days.
func (a App) readinessBody(outerW int) string {
	t := theme.Active
	s := a.summary
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	barW := max(components.CardInnerWidth(outerW)-6, 10)
	return components.ProgressBar(s.CompletionRate, barW) + "\n" +
		dimStyle.Render(fmt.Sprintf("%d of %s planned", s.CompleteDays, cli.FormatDays(s.DayCount)))
}

func (a App) axisMoney(v float64) string {
	return cli.FormatMoneyShort(a.sym, v)
}

// breakdownBody renders one bar per breakdown entry with its share of total.
func (a App) breakdownBody(entries []model.CategoryAmount, total float64, outerW int) string {
	t := theme.Active
	if len(entries) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("Nothing planned yet")
	}

	peak := 0.0
	for _, e := range entries {
		peak = max(peak, e.Amount)
	}

	labelW := 14
	amountW := 18
	barW := max(components.CardInnerWidth(outerW)-labelW-amountW-2, 5)
	colors := []lipgloss.Color{t.Blue, t.Accent, t.Cyan, t.Yellow, t.Orange, t.Green}

	lines := make([]string, len(entries))
	for i, e := range entries {
		share := 0.0
		if total > 0 {
			share = e.Amount / total
		}
		amount := fmt.Sprintf("%s %s", cli.FormatMoneyShort(a.sym, e.Amount), cli.FormatPercent(share))
		lines[i] = components.HBar(e.Name, e.Amount, peak, labelW, barW, colors[i%len(colors)], amount)
	}
	return strings.Join(lines, "\n")
}

func (a App) typesBody() string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	section := func(title string, counts []model.TypeCount) {
		b.WriteString(headStyle.Render(title))
		b.WriteString("\n")
		if len(counts) == 0 {
			b.WriteString(dimStyle.Render("  none yet"))
			b.WriteString("\n")
			return
		}
		for _, c := range counts {
			b.WriteString(rowStyle.Render(fmt.Sprintf("  %s %-12s", c.Emoji, cli.Truncate(c.Name, 12))))
			b.WriteString(dimStyle.Render(fmt.Sprintf(" %-8s %s", cli.FormatDays(c.Days), cli.FormatMoneyShort(a.sym, c.Cost))))
			b.WriteString("\n")
		}
	}
	section("Transport", a.types.Transport)
	section("Accommodation", a.types.Accommodation)

	if a.types.MissingLocations > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d days without a location", a.types.MissingLocations)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderInsights(insights []pipeline.Insight) string {
	t := theme.Active
	lines := make([]string, len(insights))
	for i, in := range insights {
		color, mark := t.Blue, "•"
		switch in.Level {
		case pipeline.InsightGood:
			color, mark = t.Green, "✓"
		case pipeline.InsightWarning:
			color, mark = t.Orange, "!"
		}
		markStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
		textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
		lines[i] = markStyle.Render(mark) + textStyle.Render(" "+in.Message)
	}
	return strings.Join(lines, "\n")
}
