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

func (a App) renderDaysTab(cw, h int) string {
	t := theme.Active
	days := a.trip.Days

	if len(days) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("No days planned yet. Press [a] to add the first one.")
		return components.ContentCard("Itinerary", empty, cw)
	}

	if a.isCompactLayout() {
		detail := a.dayDetail(days[a.days.cursor], cw)
		listH := max(h-lipgloss.Height(detail), 5)
		return a.dayList(cw, listH) + "\n" + detail
	}

	widths := components.LayoutRow(cw, 5)
	listW := widths[0] + widths[1] + widths[2]
	detailW := cw - listW
	return components.CardRow([]string{
		a.dayList(listW, h),
		a.dayDetail(days[a.days.cursor], detailW),
	})
}

// dayList renders the scrolling itinerary card, keeping the cursor in view.
func (a App) dayList(outerW, h int) string {
	t := theme.Active
	days := a.trip.Days
	innerW := components.CardInnerWidth(outerW)

	// Card border, title and column header take four rows.
	visible := max(h-4, 1)
	start := 0
	if a.days.cursor >= visible {
		start = a.days.cursor - visible + 1
	}
	end := min(start+visible, len(days))

	headStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)

	locW := max(innerW-46, 8)
	header := fmt.Sprintf("%3s  %-10s  %-*s  %-3s %-3s %9s  %s", "#", "Date", locW, "Location", "", "", "Cost", "Done")

	var b strings.Builder
	b.WriteString(headStyle.Render(cli.Truncate(header, innerW)))
	for i := start; i < end; i++ {
		d := days[i]
		line := fmt.Sprintf("%3d  %-10s  %-*s  %-3s %-3s %9s  ",
			d.DayNumber,
			orDash(d.Date.String()),
			locW, cli.Truncate(orDash(d.Location), locW),
			d.TransportType.Emoji(),
			d.AccommodationType.Emoji(),
			cli.FormatMoneyShort(a.sym, d.Cost()),
		)
		style := rowStyle
		if i == a.days.cursor {
			style = selStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(line))
		b.WriteString(components.CompletionDots(pipeline.DayCompletionScore(d)))
	}

	title := fmt.Sprintf("Itinerary (%s, %s)", cli.FormatDays(len(days)), cli.FormatMoneyShort(a.sym, a.summary.BasicCost))
	if len(days) > visible {
		title += fmt.Sprintf("  %d-%d", start+1, end)
	}
	return components.ContentCard(title, b.String(), outerW)
}

// dayDetail renders every field of d plus its validation issues.
func (a App) dayDetail(d model.DayRecord, outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	goodStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)

	valueW := max(innerW-15, 5)
	field := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-14s ", label)) + valueStyle.Render(cli.Truncate(value, valueW))
	}

	route := strings.TrimSpace(d.TransportFrom + " → " + d.TransportTo)
	if d.TransportFrom == "" && d.TransportTo == "" {
		route = "-"
	}
	when := d.Date.String()
	if d.Date.IsSet() {
		when += " " + cli.FormatDayOfWeek(int(d.Date.Weekday()))
	}

	lines := []string{
		field("Date", orDash(when)),
		field("Location", orDash(d.Location)),
		"",
		field("Transport", d.TransportType.Emoji()+" "+string(d.TransportType)),
		field("Route", route),
		field("Departs", orDash(d.TransportTime)),
		field("Cost", cli.FormatMoney(a.sym, d.TransportCost)),
		"",
		field("Stay", d.AccommodationType.Emoji()+" "+string(d.AccommodationType)),
	}
	if !d.AccommodationType.Unpaid() {
		lines = append(lines,
			field("Name", orDash(d.AccommodationName)),
			field("Cost", cli.FormatMoney(a.sym, d.AccommodationCost)),
		)
	}
	lines = append(lines, "", field("Day total", cli.FormatMoney(a.sym, d.Cost())))
	if d.Notes != "" {
		lines = append(lines, "", labelStyle.Render("Notes"))
		for _, l := range strings.Split(d.Notes, "\n") {
			lines = append(lines, valueStyle.Render(cli.Truncate(l, innerW)))
		}
	}

	lines = append(lines, "", labelStyle.Render("Complete ")+components.CompletionDots(pipeline.DayCompletionScore(d)))
	if issues := pipeline.ValidateDay(d); len(issues) > 0 {
		for _, issue := range issues {
			lines = append(lines, warnStyle.Render(cli.Truncate("! "+issue, innerW)))
		}
	} else if pipeline.IsDaySubstantiallyComplete(d) {
		lines = append(lines, goodStyle.Render("✓ ready to go"))
	}

	return components.ContentCard(fmt.Sprintf("Day %d", d.DayNumber), strings.Join(lines, "\n"), outerW)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
