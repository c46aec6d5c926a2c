package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/backpack/internal/cli"
	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/pipeline"
	"github.com/theirongolddev/backpack/internal/store"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Trip totals, budget status and completion",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	err := withTrip(func(_ *store.Store, cfg config.Config, t model.Trip) error {
		printSummary(cfg, t)
		return nil
	})
	if errors.Is(err, errNoTrip) {
		fmt.Println("\n  No trip selected.")
		fmt.Println("  Create one with `backpack trip new <name>` or import a snapshot with `backpack import <dir>`.")
		return nil
	}
	return err
}

func printSummary(cfg config.Config, t model.Trip) {
	sym := cfg.Symbol()
	s := pipeline.Aggregate(t.TripState)

	fmt.Println()
	fmt.Println(cli.RenderTitle(t.DisplayName()))
	fmt.Println()

	dates := "TBD"
	if t.StartDate.IsSet() || t.EndDate.IsSet() {
		dates = fmt.Sprintf("%s to %s", orTBD(t.StartDate.String()), orTBD(t.EndDate.String()))
	}

	rows := [][]string{
		{"Dates", dates},
		{"Style", orTBD(t.TravelStyle)},
		{"Days", cli.FormatDays(s.DayCount)},
		{"Complete", fmt.Sprintf("%d of %d  (%s)", s.CompleteDays, s.DayCount, cli.FormatPercent(s.CompletionRate))},
		{"---"},
		{"Transport", cli.FormatMoney(sym, s.TransportCost)},
		{"Accommodation", cli.FormatMoney(sym, s.AccommodationCost)},
	}
	for _, c := range t.Budget.Categories {
		if c.Planned > 0 {
			rows = append(rows, []string{c.Name, cli.FormatMoney(sym, c.Planned)})
		}
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Planned Total", cli.FormatMoney(sym, s.PlannedTotal)},
		[]string{"Spent Total", cli.FormatMoney(sym, s.SpentTotal)},
		[]string{"Spent vs Plan", cli.FormatDelta(sym, s.SpentTotal, s.PlannedTotal)},
		[]string{"Budget", cli.FormatMoney(sym, s.TotalBudget)},
		[]string{"Remaining", cli.FormatMoney(sym, s.Remaining)},
		[]string{"---"},
		[]string{"Avg/day", cli.FormatMoney(sym, s.AverageDailyCost)},
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if s.TotalBudget > 0 {
		fmt.Printf("  Used  %s  %s\n", cli.RenderUtilizationBar(s.PlannedUtilization, 30), cli.FormatPct(s.PlannedUtilization))
	}
	fmt.Printf("  %s\n\n", cli.RenderStatus(s.Status, sym))

	printInsights(pipeline.BudgetTips(t.TripState, sym))
}

// printInsights prints advisory lines, coloured by level.
func printInsights(insights []pipeline.Insight) {
	if len(insights) == 0 {
		return
	}
	for _, in := range insights {
		switch in.Level {
		case pipeline.InsightWarning:
			fmt.Printf("  %s\n", cli.RenderWarning(in.Message))
		case pipeline.InsightGood:
			fmt.Printf("  %s\n", cli.RenderGood(in.Message))
		default:
			fmt.Printf("  %s\n", cli.RenderMuted(in.Message))
		}
	}
	fmt.Println()
}

func orTBD(s string) string {
	if s == "" {
		return "TBD"
	}
	return s
}
