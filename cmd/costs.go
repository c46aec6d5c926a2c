package cmd

import (
	"fmt"

	"github.com/theirongolddev/backpack/internal/cli"
	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/pipeline"
	"github.com/theirongolddev/backpack/internal/store"

	"github.com/spf13/cobra"
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Cost breakdown by category and by transport/accommodation type",
	RunE:  runCosts,
}

func init() {
	rootCmd.AddCommand(costsCmd)
}

func runCosts(_ *cobra.Command, _ []string) error {
	return withTrip(func(_ *store.Store, cfg config.Config, t model.Trip) error {
		sym := cfg.Symbol()
		s := pipeline.Aggregate(t.TripState)

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("COST BREAKDOWN  %s", t.DisplayName())))
		fmt.Println()

		if len(s.Breakdown) == 0 && len(s.SpentBreakdown) == 0 {
			fmt.Println("  Nothing costed yet.")
			fmt.Println()
			return nil
		}

		spent := make(map[string]float64, len(s.SpentBreakdown))
		for _, c := range s.SpentBreakdown {
			spent[c.Name] = c.Amount
		}

		rows := make([][]string, 0, len(s.Breakdown)+2)
		for _, c := range s.Breakdown {
			share := ""
			if s.PlannedTotal > 0 {
				share = cli.FormatPercent(c.Amount / s.PlannedTotal)
			}
			rows = append(rows, []string{c.Name, cli.FormatMoney(sym, c.Amount), cli.FormatMoney(sym, spent[c.Name]), share})
		}
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"TOTAL", cli.FormatMoney(sym, s.PlannedTotal), cli.FormatMoney(sym, s.SpentTotal), ""})

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By Category",
			Headers: []string{"Category", "Planned", "Spent", "Share"},
			Rows:    rows,
		}))

		// Planned vs spent
		if s.TotalBudget > 0 {
			maxV := max(s.TotalBudget, s.PlannedTotal, s.SpentTotal)
			fmt.Printf("  Budget vs Plan\n")
			fmt.Printf("%s  %s\n", cli.RenderHorizontalBar("Budget ", s.TotalBudget, maxV, 30), cli.FormatMoney(sym, s.TotalBudget))
			fmt.Printf("%s  %s\n", cli.RenderHorizontalBar("Planned", s.PlannedTotal, maxV, 30), cli.FormatMoney(sym, s.PlannedTotal))
			fmt.Printf("%s  %s\n\n", cli.RenderHorizontalBar("Spent  ", s.SpentTotal, maxV, 30), cli.FormatMoney(sym, s.SpentTotal))
		}

		types := pipeline.AggregateTypes(t.Days)
		printTypeTable("By Transport", "Transport", types.Transport, sym)
		printTypeTable("By Accommodation", "Stay", types.Accommodation, sym)

		if share := pipeline.TransportShare(t.Days, t.Budget); share > 0 {
			fmt.Printf("  Transport is %s of the planned total\n\n", cli.FormatPercent(share))
		}
		return nil
	})
}

func printTypeTable(title, header string, counts []model.TypeCount, sym string) {
	if len(counts) == 0 {
		return
	}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Emoji + " " + c.Name, cli.FormatDays(c.Days), cli.FormatMoney(sym, c.Cost)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{header, "Days", "Cost"},
		Rows:    rows,
	}))
}
