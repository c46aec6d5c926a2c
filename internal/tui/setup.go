package tui

import (
	"errors"
	"strings"

	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/pipeline"
	"github.com/theirongolddev/backpack/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// setupValues holds the first-trip wizard's answers.
type setupValues struct {
	Name   string
	Style  string
	Start  string
	End    string
	Budget string
}

// newSetupForm builds the first-run wizard shown when there is no trip yet.
func newSetupForm(vals *setupValues, styles config.StyleTable, symbol string) *huh.Form {
	opts := make([]huh.Option[string], 0, len(styles)+1)
	for _, name := range styles.Names() {
		opts = append(opts, huh.NewOption(name, name))
	}
	opts = append(opts, huh.NewOption("Not sure yet", ""))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to backpack!").
				Description("No trips yet. Let's plan the first one."),
			huh.NewInput().
				Title("Trip name").
				Placeholder("Southeast Asia 2026").
				Value(&vals.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("give the trip a name")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Travel style").
				Options(opts...).
				Value(&vals.Style),
		),
		huh.NewGroup(
			huh.NewInput().Title("Start date").Placeholder("YYYY-MM-DD").Value(&vals.Start).Validate(validateDate),
			huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").Value(&vals.End).Validate(validateDate),
			huh.NewInput().Title("Total budget ("+symbol+")").Value(&vals.Budget).Validate(validateAmount),
		),
	).WithShowHelp(true)
}

// tripFromSetup builds a new trip from the wizard answers.
func tripFromSetup(vals setupValues, defaultBudget float64) (model.Trip, error) {
	t := model.Trip{TripInfo: model.TripInfo{
		Name:        strings.TrimSpace(vals.Name),
		TravelStyle: vals.Style,
		GroupSize:   1,
	}}

	var err error
	if t.StartDate, err = model.ParseDate(vals.Start); err != nil {
		return t, err
	}
	if t.EndDate, err = model.ParseDate(vals.End); err != nil {
		return t, err
	}
	if issues := pipeline.ValidateTripInfo(t.TripInfo); len(issues) > 0 {
		return t, errors.New(issues[0])
	}

	t.Budget.TotalBudget = defaultBudget
	if strings.TrimSpace(vals.Budget) != "" {
		if t.Budget.TotalBudget, err = parseAmount(vals.Budget); err != nil {
			return t, err
		}
	}
	for _, name := range model.DefaultCategoryNames {
		t.Budget.Categories = append(t.Budget.Categories, model.Category{Name: name})
	}
	return t, nil
}

// createTripCmd stores the wizard's trip and makes it active. Saving the
// config is best-effort; the trip is shown either way.
func createTripCmd(st *store.Store, vals setupValues, defaultBudget float64) tea.Cmd {
	return func() tea.Msg {
		t, err := tripFromSetup(vals, defaultBudget)
		if err != nil {
			return TripLoadedMsg{Err: err}
		}
		if err := st.CreateTrip(&t); err != nil {
			return TripLoadedMsg{Err: err}
		}
		cfg, _ := config.Load()
		cfg.General.ActiveTrip = t.ID
		_ = config.Save(cfg)
		return TripLoadedMsg{Trip: t, Found: true}
	}
}
