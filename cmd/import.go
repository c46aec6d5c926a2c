package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/backpack/internal/cli"
	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagImportUse bool

var importCmd = &cobra.Command{
	Use:   "import <dir|file>",
	Short: "Import saved trip snapshots, skipping files unchanged since the last import",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportUse, "use", false, "Make the imported trip active when exactly one is imported")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%10 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Importing %s", cli.RenderProgressBar(current, total, 20))
		}
	}

	res, err := pipeline.LoadWithTracker(args[0], st, pipeline.ConfiguredDayDefaults(cfg), progressFn)
	if err != nil {
		return err
	}

	if !flagQuiet {
		if res.TotalFiles == 0 {
			fmt.Fprintf(os.Stderr, "  No trip snapshots found in %s\n", args[0])
			return nil
		}
		fmt.Fprintf(os.Stderr, "\r  Imported %d trips, %d unchanged    \n", res.Imported, res.Unchanged)
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "  Skipped: %v\n", e)
		}
		if res.ParseErrors > 0 {
			fmt.Fprintf(os.Stderr, "  %d fields could not be read and were left blank\n", res.ParseErrors)
		}
	}

	sym := cfg.Symbol()
	for _, t := range res.Trips {
		s := pipeline.Aggregate(t.TripState)
		fmt.Printf("  %s  %-28s %s  %s\n", shortID(t.ID), cli.Truncate(t.DisplayName(), 28),
			cli.FormatDays(s.DayCount), cli.FormatMoney(sym, s.PlannedTotal))
	}

	if flagImportUse && len(res.Trips) == 1 {
		cfg.General.ActiveTrip = res.Trips[0].ID
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("  Active trip: %s\n", res.Trips[0].DisplayName())
	}
	return nil
}
