// Package cmd implements the backpack CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/backpack/internal/cli"
	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	dbPath := flagDB
	if dbPath == "" {
		dbPath = config.GetDBPath(cfg)
	}

	fmt.Println("  [General]")
	fmt.Printf("    Currency:    %s (%s)\n", cfg.General.Currency, cfg.Symbol())
	fmt.Printf("    Database:    %s\n", dbPath)
	if cfg.General.ActiveTrip != "" {
		fmt.Printf("    Active trip: %s\n", activeTripLabel(cfg, dbPath))
	} else {
		fmt.Println("    Active trip: none")
	}
	fmt.Println()

	fmt.Println("  [Defaults]")
	fmt.Printf("    Transport:     %s\n", cfg.Defaults.TransportType)
	fmt.Printf("    Accommodation: %s\n", cfg.Defaults.AccommodationType)
	fmt.Printf("    Trip budget:   %s\n", cli.FormatMoney(cfg.Symbol(), cfg.Defaults.TotalBudget))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Emoji: %v\n", cfg.Appearance.Emoji)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	if len(cfg.Styles.Overrides) > 0 {
		fmt.Println("  [Styles]")
		for _, tier := range cfg.StyleTable() {
			fmt.Printf("    %-20s %s-%s/day\n", tier.Name,
				cli.FormatMoneyShort(cfg.Symbol(), tier.Rate.DailyLow),
				cli.FormatMoneyShort(cfg.Symbol(), tier.Rate.DailyHigh))
		}
		fmt.Println()
	}

	fmt.Println("  Run `backpack setup` to reconfigure.")
	return nil
}

// activeTripLabel names the active trip, falling back to its raw ID.
func activeTripLabel(cfg config.Config, dbPath string) string {
	st, err := store.Open(dbPath)
	if err != nil {
		return cfg.General.ActiveTrip
	}
	defer func() { _ = st.Close() }()
	t, err := st.GetTrip(cfg.General.ActiveTrip)
	if err != nil {
		return cfg.General.ActiveTrip + " (missing)"
	}
	return fmt.Sprintf("%s (%s)", t.DisplayName(), shortID(t.ID))
}
