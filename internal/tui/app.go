// Package tui provides the interactive Bubble Tea dashboard for backpack.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/backpack/internal/cli"
	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/pipeline"
	"github.com/theirongolddev/backpack/internal/store"
	"github.com/theirongolddev/backpack/internal/tui/components"
	"github.com/theirongolddev/backpack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// App is the root Bubble Tea model.
type App struct {
	st       *store.Store
	ref      string
	activeID string
	sym      string
	styles   config.StyleTable
	defaults pipeline.DayDefaults
	budget   float64 // default budget for a trip created in the wizard

	// Data
	trip     model.Trip
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Pre-computed for the current trip
	summary     model.TripSummary
	types       model.TypeStats
	tips        []pipeline.Insight
	suggestions []pipeline.Insight

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	days      daysState

	// Add/edit day form. editIdx is -1 while adding.
	dayForm *huh.Form
	dayVals *dayValues
	editIdx int

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	spinner spinner.Model

	// Saves run one at a time; dirty asks for another once the current one lands.
	saving bool
	dirty  bool

	flash   string
	flashID int
}

type daysState struct {
	cursor        int
	confirmDelete bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	maxFormWidth     = 72

	minContentHeight = 5 // minimum content area height
)

// Tab indexes, matching components.Tabs.
const (
	tabOverview = iota
	tabDays
	tabBudget
)

// NewApp creates a new TUI app model. ref optionally names the trip to open;
// otherwise the active trip from cfg is shown.
func NewApp(st *store.Store, cfg config.Config, ref string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	defaults := pipeline.ConfiguredDayDefaults(cfg)

	return App{
		st:       st,
		ref:      ref,
		activeID: cfg.General.ActiveTrip,
		sym:      cfg.Symbol(),
		styles:   cfg.StyleTable(),
		defaults: defaults,
		budget:   cfg.Defaults.TotalBudget,
		editIdx:  -1,
		spinner:  sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadTripCmd(a.st, a.ref, a.activeID),
		a.spinner.Tick,
	)
}

func (a *App) recompute() {
	state := a.trip.TripState
	a.summary = pipeline.Aggregate(state)
	a.types = pipeline.AggregateTypes(state.Days)
	a.tips = pipeline.BudgetTips(state, a.sym)
	a.suggestions = pipeline.Suggest(a.styles, a.trip.TripInfo, len(state.Days), state.Budget.TotalBudget, a.sym)

	if a.days.cursor >= len(state.Days) {
		a.days.cursor = len(state.Days) - 1
	}
	if a.days.cursor < 0 {
		a.days.cursor = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.dayForm != nil {
			a.dayForm = a.dayForm.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil || a.dayForm != nil {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabDays {
				a.moveCursor(-1)
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == tabDays {
				a.moveCursor(1)
			}
			return a, nil

		case tea.MouseButtonLeft:
			// The tab bar is the first row.
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
					a.days.confirmDelete = false
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// Forms intercept all keys
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.dayForm != nil {
			return a.updateDayForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.trip.ID == "" {
			switch key {
			case "q":
				return a, tea.Quit
			case "n":
				return a.startSetup()
			}
			return a, nil
		}

		if a.activeTab == tabDays {
			if m, cmd, handled := a.updateDaysKeys(key); handled {
				return m, cmd
			}
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			if a.saving {
				cmd := a.setFlash("wait for the save to finish")
				return a, cmd
			}
			return a, loadTripCmd(a.st, a.trip.ID, "")
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(msg.Runes) == 1 {
				if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case TripLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		if msg.Err != nil {
			return a, nil
		}
		if !msg.Found {
			return a.startSetup()
		}
		a.trip = msg.Trip
		a.needSetup = false
		a.recompute()
		return a, nil

	case TripSavedMsg:
		a.saving = false
		if msg.Err != nil {
			cmd := a.setFlash("save failed: " + msg.Err.Error())
			return a, cmd
		}
		if msg.Trip.ID == a.trip.ID {
			a.trip.UpdatedAt = msg.Trip.UpdatedAt
			a.trip.CreatedAt = msg.Trip.CreatedAt
		}
		if a.dirty {
			a.dirty = false
			cmd := a.persist()
			return a, cmd
		}
		return a, nil

	case flashExpiredMsg:
		if msg.id == a.flashID {
			a.flash = ""
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the active form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.dayForm != nil {
		return a.updateDayForm(msg)
	}

	return a, nil
}

// updateDaysKeys handles the Days tab bindings. handled is false for keys
// that fall through to the global bindings.
func (a App) updateDaysKeys(key string) (tea.Model, tea.Cmd, bool) {
	if a.days.confirmDelete {
		a.days.confirmDelete = false
		if key != "y" {
			cmd := a.setFlash("delete cancelled")
			return a, cmd, true
		}
		n := a.days.cursor + 1
		if err := pipeline.DeleteDay(&a.trip.TripState, a.days.cursor); err != nil {
			cmd := a.setFlash(err.Error())
			return a, cmd, true
		}
		cmd := a.commit(fmt.Sprintf("deleted day %d", n))
		return a, cmd, true
	}

	n := len(a.trip.Days)
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g", "home":
		a.days.cursor = 0
	case "G", "end":
		a.days.cursor = max(n-1, 0)
	case "a":
		return a.startDayForm(-1)
	case "e", "enter":
		if n == 0 {
			return a, nil, true
		}
		return a.startDayForm(a.days.cursor)
	case "c":
		if n == 0 {
			return a, nil, true
		}
		d, err := pipeline.CopyDay(&a.trip.TripState, a.days.cursor)
		if err != nil {
			cmd := a.setFlash(err.Error())
			return a, cmd, true
		}
		a.days.cursor = len(a.trip.Days) - 1
		cmd := a.commit(fmt.Sprintf("copied to day %d", d.DayNumber))
		return a, cmd, true
	case "x", "delete":
		if n == 0 {
			return a, nil, true
		}
		a.days.confirmDelete = true
		return a, nil, true
	case "K", "J":
		if n == 0 {
			return a, nil, true
		}
		delta := 1
		if key == "K" {
			delta = -1
		}
		idx, err := pipeline.MoveDay(&a.trip.TripState, a.days.cursor, delta)
		if err != nil {
			return a, nil, true
		}
		if idx == a.days.cursor {
			return a, nil, true
		}
		a.days.cursor = idx
		cmd := a.commit(fmt.Sprintf("moved to day %d", idx+1))
		return a, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a *App) moveCursor(delta int) {
	next := a.days.cursor + delta
	if next < 0 || next >= len(a.trip.Days) {
		return
	}
	a.days.cursor = next
}

// commit recomputes after an in-place change to the trip and saves it.
func (a *App) commit(flash string) tea.Cmd {
	a.recompute()
	return tea.Batch(a.setFlash(flash), a.persist())
}

// persist saves a copy of the trip, or marks it dirty when a save is in flight.
func (a *App) persist() tea.Cmd {
	if a.saving {
		a.dirty = true
		return nil
	}
	a.saving = true
	return saveTripCmd(a.st, cloneTrip(a.trip))
}

func (a *App) setFlash(s string) tea.Cmd {
	a.flashID++
	a.flash = s
	return flashCmd(a.flashID)
}

func (a App) formWidth() int {
	return min(a.width-8, maxFormWidth)
}

// startDayForm opens the day form for the day at idx, or for a new day when
// idx is -1.
func (a App) startDayForm(idx int) (tea.Model, tea.Cmd, bool) {
	title := "Add day"
	var d model.DayRecord
	if idx < 0 {
		d = pipeline.NormalizeDay(model.DayRecord{Date: a.nextDate()}, a.defaults)
	} else {
		d = a.trip.Days[idx]
		title = fmt.Sprintf("Edit day %d", d.DayNumber)
	}

	a.editIdx = idx
	a.dayVals = dayValuesFrom(d)
	a.dayForm = newDayForm(title, a.dayVals)
	if a.width > 0 {
		a.dayForm = a.dayForm.WithWidth(a.formWidth())
	}
	return a, a.dayForm.Init(), true
}

// nextDate proposes the date for a new day: the day after the last dated
// day, else counted from the trip start.
func (a App) nextDate() model.Date {
	days := a.trip.Days
	if n := len(days); n > 0 && days[n-1].Date.IsSet() {
		return model.Date{Time: days[n-1].Date.AddDate(0, 0, 1)}
	}
	if a.trip.StartDate.IsSet() {
		return model.Date{Time: a.trip.StartDate.AddDate(0, 0, len(days))}
	}
	return model.Date{}
}

func (a App) updateDayForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.dayForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.dayForm = f
	}

	switch a.dayForm.State {
	case huh.StateCompleted:
		vals, idx := a.dayVals, a.editIdx
		a.dayForm, a.dayVals, a.editIdx = nil, nil, -1
		cmd := a.applyDayForm(vals, idx)
		return a, cmd
	case huh.StateAborted:
		a.dayForm, a.dayVals, a.editIdx = nil, nil, -1
		return a, nil
	}
	return a, cmd
}

// applyDayForm stores the form values as a new day (idx -1) or over day idx.
func (a *App) applyDayForm(vals *dayValues, idx int) tea.Cmd {
	var d model.DayRecord
	if idx >= 0 && idx < len(a.trip.Days) {
		d = a.trip.Days[idx]
	}
	if err := vals.apply(&d); err != nil {
		return a.setFlash(err.Error())
	}

	verb := "updated"
	if idx < 0 {
		pipeline.AddDay(&a.trip.TripState, a.defaults)
		idx = len(a.trip.Days) - 1
		verb = "added"
	}
	if err := pipeline.UpdateDay(&a.trip.TripState, idx, d, a.defaults); err != nil {
		return a.setFlash(err.Error())
	}
	a.days.cursor = idx
	a.activeTab = tabDays
	return a.commit(fmt.Sprintf("%s day %d", verb, idx+1))
}

func (a App) startSetup() (tea.Model, tea.Cmd) {
	a.needSetup = true
	a.setupVals = &setupValues{}
	a.setupForm = newSetupForm(a.setupVals, a.styles, a.sym)
	if a.width > 0 {
		a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.setupForm.Init()
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		vals := *a.setupVals
		a.needSetup = false
		a.setupForm = nil
		a.loaded = false
		return a, tea.Batch(createTripCmd(a.st, vals, a.budget), a.spinner.Tick)
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.dayForm != nil {
		return a.viewDayForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	if a.trip.ID == "" {
		return a.viewEmpty()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	t := theme.Active
	msg := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Background).
		Render(fmt.Sprintf("Terminal too narrow (%d cols, need %d)", a.width, minTerminalWidth))
	return lipgloss.Place(a.width, h, lipgloss.Center, lipgloss.Center, msg,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)
	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ backpack"))
	b.WriteString(subtitleStyle.Render(" · Trip Planner"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Loading trip..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// viewEmpty is shown when no trip could be opened.
func (a App) viewEmpty() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)
	errStyle := lipgloss.NewStyle().
		Foreground(t.Red).
		Background(t.Surface)
	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ No trip open"))
	b.WriteString("\n\n")
	if a.loadErr != nil {
		b.WriteString(errStyle.Render(a.loadErr.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(descStyle.Render("[n] plan a new trip   [q] quit"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewDayForm() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(a.dayForm.View()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)
	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)
	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o d b", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Select day"},
			{"g G", "First / Last day"},
		}},
		{"Days", []struct{ key, desc string }{
			{"a", "Add day"},
			{"e Enter", "Edit day"},
			{"c", "Copy day"},
			{"x", "Delete day (y to confirm)"},
			{"K J", "Move day up / down"},
		}},
		{"General", []struct{ key, desc string }{
			{"r", "Reload trip"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, sec := range sections {
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar plus a trip info line
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)
	accentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	info := pillStyle.Render(" ") + accentStyle.Render(a.trip.DisplayName())
	if a.trip.StartDate.IsSet() || a.trip.EndDate.IsSet() {
		info += pillStyle.Render(" │ " + dateOrTBD(a.trip.StartDate) + " → " + dateOrTBD(a.trip.EndDate))
	}
	info += pillStyle.Render(" │ ") + accentStyle.Render(cli.FormatDays(a.summary.DayCount))
	if a.trip.TravelStyle != "" {
		info += pillStyle.Render(" │ " + a.trip.TravelStyle)
	}

	infoRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) +
		"\n" + infoRowStyle.Render(info)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.trip.DisplayName(), a.statusFlash(), a.saving)

	// 3. Content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabDays:
		content = a.renderDaysTab(cw, contentH)
	case tabBudget:
		content = a.renderBudgetTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when w > cw
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// statusFlash returns the delete prompt while it is pending, else the flash.
func (a App) statusFlash() string {
	if a.days.confirmDelete && a.days.cursor < len(a.trip.Days) {
		return fmt.Sprintf("delete day %d? [y/N]", a.days.cursor+1)
	}
	return a.flash
}

// ─── Helpers ────────────────────────────────────────────────────

func dateOrTBD(d model.Date) string {
	if !d.IsSet() {
		return "TBD"
	}
	return d.Format("2 Jan 2006")
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
