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

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Day-by-day itinerary and cost table",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	return withTrip(func(_ *store.Store, cfg config.Config, t model.Trip) error {
		if len(t.Days) == 0 {
			fmt.Println("\n  No days planned yet. Add one with `backpack day add`.")
			return nil
		}
		sym := cfg.Symbol()

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("ITINERARY  %s", t.DisplayName())))
		fmt.Println()

		rows := make([][]string, 0, len(t.Days)+2)
		costs := make([]float64, 0, len(t.Days))
		for _, d := range t.Days {
			date, dow := "", ""
			if d.Date.IsSet() {
				date = d.Date.String()
				dow = cli.FormatDayOfWeek(int(d.Date.Weekday()))
			}
			done := ""
			if pipeline.IsDaySubstantiallyComplete(d) {
				done = "✓"
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", d.DayNumber),
				date,
				dow,
				cli.Truncate(d.Location, 20),
				cli.Truncate(string(d.TransportType), 18),
				cli.FormatMoney(sym, d.TransportCost),
				cli.Truncate(string(d.AccommodationType), 18),
				cli.FormatMoney(sym, d.AccommodationCost),
				cli.FormatMoney(sym, d.Cost()),
				done,
			})
			costs = append(costs, d.Cost())
		}
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{
			"TOTAL", "", "", "", "",
			cli.FormatMoney(sym, pipeline.TotalTransportCost(t.Days)),
			"",
			cli.FormatMoney(sym, pipeline.TotalAccommodationCost(t.Days)),
			cli.FormatMoney(sym, pipeline.BasicCost(t.Days)),
			"",
		})

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"#", "Date", "Day", "Location", "Transport", "Cost", "Stay", "Cost", "Day Total", "Done"},
			Rows:    rows,
		}))

		fmt.Printf("  Daily cost  %s   avg %s/day\n\n",
			cli.RenderSparkline(costs),
			cli.FormatMoney(sym, pipeline.AverageDailyCost(t.Days)))
		return nil
	})
}
