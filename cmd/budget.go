package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/backpack/internal/cli"
	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/pipeline"
	"github.com/theirongolddev/backpack/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagCatPlanned float64
	flagCatSpent   float64
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show budget status and manage categories",
	RunE:  runBudget,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Set the trip's total budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSet,
}

var budgetCategoryCmd = &cobra.Command{
	Use:   "category <name>",
	Short: "Add a category or change its planned and spent amounts",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetCategory,
}

var budgetRmCategoryCmd = &cobra.Command{
	Use:   "rm-category <name>",
	Short: "Remove a budget category",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetRmCategory,
}

func init() {
	budgetCategoryCmd.Flags().Float64Var(&flagCatPlanned, "planned", 0, "Planned amount")
	budgetCategoryCmd.Flags().Float64Var(&flagCatSpent, "spent", 0, "Amount spent so far")
	budgetCmd.AddCommand(budgetSetCmd, budgetCategoryCmd, budgetRmCategoryCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	return withTrip(func(_ *store.Store, cfg config.Config, t model.Trip) error {
		sym := cfg.Symbol()
		s := pipeline.Aggregate(t.TripState)

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET  %s", t.DisplayName())))
		fmt.Println()

		rows := make([][]string, 0, len(t.Budget.Categories)+6)
		for _, c := range t.Budget.Categories {
			rows = append(rows, []string{c.Name, cli.FormatMoney(sym, c.Planned), cli.FormatMoney(sym, c.Spent)})
		}
		if len(rows) > 0 {
			rows = append(rows, []string{"---"})
		}
		rows = append(rows,
			[]string{"Days (transport + stay)", cli.FormatMoney(sym, s.BasicCost), cli.FormatMoney(sym, s.BasicCost)},
			[]string{"---"},
			[]string{"TOTAL", cli.FormatMoney(sym, s.PlannedTotal), cli.FormatMoney(sym, s.SpentTotal)},
			[]string{"Remaining", cli.FormatMoney(sym, s.Remaining), cli.FormatMoney(sym, s.SpentRemaining)},
		)

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Category", "Planned", "Spent"},
			Rows:    rows,
		}))

		fmt.Printf("  Budget  %s\n", cli.FormatMoney(sym, s.TotalBudget))
		if s.TotalBudget > 0 {
			fmt.Printf("  Plan    %s  %s  %s\n", cli.RenderUtilizationBar(s.PlannedUtilization, 30),
				cli.FormatPct(s.PlannedUtilization), cli.RenderStatus(s.Status, sym))
			fmt.Printf("  Spent   %s  %s  %s\n", cli.RenderUtilizationBar(s.SpentUtilization, 30),
				cli.FormatPct(s.SpentUtilization), cli.RenderStatus(s.SpentStatus, sym))
		} else {
			fmt.Printf("  %s\n", cli.RenderMuted("No total budget set. Use `backpack budget set <amount>`."))
		}
		fmt.Println()
		return nil
	})
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimLeft(s, "£$€¥")), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("amount must not be negative, got %s", s)
	}
	return v, nil
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	return withTrip(func(st *store.Store, cfg config.Config, t model.Trip) error {
		t.Budget.TotalBudget = amount
		if err := st.SaveTrip(&t); err != nil {
			return fmt.Errorf("saving trip: %w", err)
		}
		fmt.Printf("  Budget for %s set to %s\n", t.DisplayName(), cli.FormatMoney(cfg.Symbol(), amount))
		return nil
	})
}

func runBudgetCategory(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("category name must not be empty")
	}
	if flagCatPlanned < 0 || flagCatSpent < 0 {
		return fmt.Errorf("amounts must not be negative")
	}
	return withTrip(func(st *store.Store, cfg config.Config, t model.Trip) error {
		i := t.Budget.CategoryIndex(name)
		if i < 0 {
			t.Budget.Categories = append(t.Budget.Categories, model.Category{Name: name})
			i = len(t.Budget.Categories) - 1
		}
		c := &t.Budget.Categories[i]
		if cmd.Flags().Changed("planned") {
			c.Planned = flagCatPlanned
		}
		if cmd.Flags().Changed("spent") {
			c.Spent = flagCatSpent
		}
		if err := st.SaveTrip(&t); err != nil {
			return fmt.Errorf("saving trip: %w", err)
		}
		sym := cfg.Symbol()
		fmt.Printf("  %s: planned %s, spent %s\n", c.Name, cli.FormatMoney(sym, c.Planned), cli.FormatMoney(sym, c.Spent))
		return nil
	})
}

func runBudgetRmCategory(_ *cobra.Command, args []string) error {
	return withTrip(func(st *store.Store, _ config.Config, t model.Trip) error {
		i := t.Budget.CategoryIndex(args[0])
		if i < 0 {
			return fmt.Errorf("no category named %q", args[0])
		}
		t.Budget.Categories = append(t.Budget.Categories[:i], t.Budget.Categories[i+1:]...)
		if err := st.SaveTrip(&t); err != nil {
			return fmt.Errorf("saving trip: %w", err)
		}
		fmt.Printf("  Removed %s\n", args[0])
		return nil
	})
}
