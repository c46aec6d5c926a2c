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

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggested budget and days, tips and validation issues",
	RunE:  runSuggest,
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List travel styles and their daily ranges",
	RunE:  runStyles,
}

func init() {
	rootCmd.AddCommand(suggestCmd, stylesCmd)
}

func runSuggest(_ *cobra.Command, _ []string) error {
	return withTrip(func(_ *store.Store, cfg config.Config, t model.Trip) error {
		sym := cfg.Symbol()
		styles := cfg.StyleTable()

		days := pipeline.SuggestedDays(t.TripInfo)
		basis := "dates"
		if days == 0 {
			days = len(t.Days)
			basis = "planned days"
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("SUGGESTIONS  %s", t.DisplayName())))
		fmt.Println()

		style := orTBD(config.NormalizeStyleName(t.TravelStyle))
		rate := config.FallbackDailyRate
		if tier, ok := styles.Lookup(t.TravelStyle); ok {
			rate = tier.Rate.DailyMid()
		}
		suggested := pipeline.SuggestedBudgetFrom(styles, t.TravelStyle, days)

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Style", style},
				{"Daily rate", cli.FormatMoney(sym, rate)},
				{"Days", fmt.Sprintf("%s (from %s)", cli.FormatDays(days), basis)},
				{"---"},
				{"Suggested budget", cli.FormatMoney(sym, suggested)},
				{"Current budget", cli.FormatMoney(sym, t.Budget.TotalBudget)},
			},
		}))

		insights := pipeline.Suggest(styles, t.TripInfo, len(t.Days), t.Budget.TotalBudget, sym)
		insights = append(insights, pipeline.BudgetTips(t.TripState, sym)...)
		printInsights(insights)

		issues := pipeline.ValidateTripInfo(t.TripInfo)
		for _, d := range t.Days {
			for _, issue := range pipeline.ValidateDay(d) {
				issues = append(issues, fmt.Sprintf("Day %d: %s", d.DayNumber, issue))
			}
		}
		for _, issue := range issues {
			fmt.Printf("  %s\n", cli.RenderWarning(issue))
		}
		if len(issues) > 0 {
			fmt.Println()
		}
		return nil
	})
}

func runStyles(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	sym := cfg.Symbol()
	rows := make([][]string, 0, len(cfg.StyleTable()))
	for _, tier := range cfg.StyleTable() {
		rows = append(rows, []string{
			tier.Name,
			cli.FormatMoneyShort(sym, tier.Rate.DailyLow),
			cli.FormatMoneyShort(sym, tier.Rate.DailyHigh),
			cli.FormatMoney(sym, tier.Rate.DailyMid()),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Style", "Low/day", "High/day", "Suggested/day"},
		Rows:    rows,
	}))
	fmt.Printf("  Unknown styles use %s/day\n\n", cli.FormatMoney(sym, config.FallbackDailyRate))
	return nil
}
