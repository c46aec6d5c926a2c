package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/backpack/internal/cli"
	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/pipeline"
	"github.com/theirongolddev/backpack/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagTripStart        string
	flagTripEnd          string
	flagTripStyle        string
	flagTripDestinations string
	flagTripGroup        int
	flagTripBudget       float64
	flagTripNoCategories bool
	flagTripName         string
)

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Create, select and manage trips",
}

var tripNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a trip and make it active",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripNew,
}

var tripListCmd = &cobra.Command{
	Use:     "list [filter]",
	Aliases: []string{"ls"},
	Short:   "List stored trips",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runTripList,
}

var tripUseCmd = &cobra.Command{
	Use:   "use <trip>",
	Short: "Set the active trip",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripUse,
}

var tripEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Change trip details",
	RunE:  runTripEdit,
}

var tripShowCmd = &cobra.Command{
	Use:   "show [trip]",
	Short: "Show a trip summary (default: active trip)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTripShow,
}

var tripRmCmd = &cobra.Command{
	Use:   "rm <trip>",
	Short: "Delete a trip",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripRm,
}

func init() {
	for _, c := range []*cobra.Command{tripNewCmd, tripEditCmd} {
		c.Flags().StringVar(&flagTripStart, "start", "", "Start date (YYYY-MM-DD)")
		c.Flags().StringVar(&flagTripEnd, "end", "", "End date (YYYY-MM-DD)")
		c.Flags().StringVar(&flagTripStyle, "style", "", "Travel style, e.g. \"Budget Backpacker\"")
		c.Flags().StringVar(&flagTripDestinations, "destinations", "", "Destinations, free text")
		c.Flags().IntVar(&flagTripGroup, "group", 0, "Group size")
		c.Flags().Float64Var(&flagTripBudget, "budget", 0, "Total budget")
	}
	tripNewCmd.Flags().BoolVar(&flagTripNoCategories, "no-categories", false, "Start without the default budget categories")
	tripEditCmd.Flags().StringVar(&flagTripName, "name", "", "New trip name")

	tripCmd.AddCommand(tripNewCmd, tripListCmd, tripUseCmd, tripShowCmd, tripEditCmd, tripRmCmd)
	rootCmd.AddCommand(tripCmd)
}

func runTripNew(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	t := model.Trip{TripInfo: model.TripInfo{Name: strings.TrimSpace(args[0]), GroupSize: 1}}
	t.Budget.TotalBudget = cfg.Defaults.TotalBudget
	if !flagTripNoCategories {
		for _, name := range model.DefaultCategoryNames {
			t.Budget.Categories = append(t.Budget.Categories, model.Category{Name: name})
		}
	}
	if err := applyTripFlags(cmd, &t); err != nil {
		return err
	}

	if err := st.CreateTrip(&t); err != nil {
		return fmt.Errorf("creating trip: %w", err)
	}

	cfg.General.ActiveTrip = t.ID
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\n  Created %s (%s), now active.\n", t.DisplayName(), shortID(t.ID))
	printInsights(pipeline.Suggest(cfg.StyleTable(), t.TripInfo, 0, t.Budget.TotalBudget, cfg.Symbol()))
	return nil
}

func runTripEdit(cmd *cobra.Command, _ []string) error {
	return withTrip(func(st *store.Store, _ config.Config, t model.Trip) error {
		if cmd.Flags().Changed("name") {
			t.Name = strings.TrimSpace(flagTripName)
		}
		if err := applyTripFlags(cmd, &t); err != nil {
			return err
		}
		if err := st.SaveTrip(&t); err != nil {
			return fmt.Errorf("saving trip: %w", err)
		}
		fmt.Printf("  Updated %s\n", t.DisplayName())
		return nil
	})
}

// applyTripFlags copies explicitly set trip flags onto t and validates the result.
func applyTripFlags(cmd *cobra.Command, t *model.Trip) error {
	var err error
	f := cmd.Flags()
	if f.Changed("start") {
		if t.StartDate, err = model.ParseDate(flagTripStart); err != nil {
			return err
		}
	}
	if f.Changed("end") {
		if t.EndDate, err = model.ParseDate(flagTripEnd); err != nil {
			return err
		}
	}
	if f.Changed("style") {
		t.TravelStyle = flagTripStyle
	}
	if f.Changed("destinations") {
		t.Destinations = flagTripDestinations
	}
	if f.Changed("group") {
		t.GroupSize = flagTripGroup
	}
	if f.Changed("budget") {
		t.Budget.TotalBudget = flagTripBudget
	}
	if issues := pipeline.ValidateTripInfo(t.TripInfo); len(issues) > 0 {
		return errors.New(strings.Join(issues, "; "))
	}
	return nil
}

func runTripList(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	trips, err := st.ListTrips()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		trips = pipeline.FilterByName(trips, args[0])
	}
	if len(trips) == 0 {
		fmt.Println("\n  No trips found.")
		return nil
	}

	sym := cfg.Symbol()
	rows := make([][]string, 0, len(trips)+2)
	for _, t := range trips {
		s := pipeline.Aggregate(t.TripState)
		active := ""
		if t.ID == cfg.General.ActiveTrip {
			active = "*"
		}
		rows = append(rows, []string{
			active,
			shortID(t.ID),
			cli.Truncate(t.DisplayName(), 28),
			orTBD(t.StartDate.String()),
			cli.FormatNumber(int64(s.DayCount)),
			cli.FormatMoney(sym, s.PlannedTotal),
			cli.FormatMoney(sym, s.TotalBudget),
			cli.FormatPercent(s.CompletionRate),
		})
	}

	us := pipeline.AggregateTrips(trips)
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"", "", "TOTAL", "",
		cli.FormatNumber(int64(us.TotalDaysPlanned)),
		"",
		cli.FormatMoney(sym, us.TotalBudget),
		"",
	})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"", "ID", "Name", "Start", "Days", "Planned", "Budget", "Done"},
		Rows:    rows,
	}))
	if us.TotalBudget > 0 {
		fmt.Printf("  Spent %s of %s across %d trips (%s), avg %.1f days per trip\n\n",
			cli.FormatMoney(sym, us.TotalSpent), cli.FormatMoney(sym, us.TotalBudget),
			us.TotalTrips, cli.FormatPct(us.BudgetEfficiency), us.AverageTripLength)
	}
	return nil
}

func runTripUse(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	t, err := st.FindTrip(args[0])
	if err != nil {
		return fmt.Errorf("trip %q: %w", args[0], err)
	}
	cfg.General.ActiveTrip = t.ID
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("  Active trip: %s (%s)\n", t.DisplayName(), shortID(t.ID))
	return nil
}

func runTripShow(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		flagTrip = args[0]
	}
	return runSummary(cmd, nil)
}

func runTripRm(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	t, err := st.FindTrip(args[0])
	if err != nil {
		return fmt.Errorf("trip %q: %w", args[0], err)
	}
	if err := st.DeleteTrip(t.ID); err != nil {
		return err
	}
	if t.SourcePath != "" {
		_ = st.DeleteFileTracker(t.SourcePath)
	}
	if cfg.General.ActiveTrip == t.ID {
		cfg.General.ActiveTrip = ""
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}
	fmt.Printf("  Deleted %s\n", t.DisplayName())
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
