package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/export"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagExportOut     string
	flagExportNoEmoji bool
	flagExportBackup  bool
)

var exportCmd = &cobra.Command{
	Use:       "export <csv|text|json>",
	Short:     "Export the itinerary as CSV, plain text or a JSON snapshot",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"csv", "text", "json"},
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().BoolVar(&flagExportNoEmoji, "no-emoji", false, "Plain text without emoji markers")
	exportCmd.Flags().BoolVar(&flagExportBackup, "backup", false, "Back up an existing output file before overwriting")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	format := strings.ToLower(args[0])
	switch format {
	case "csv", "text", "txt", "json":
	default:
		return fmt.Errorf("unknown export format %q (want csv, text or json)", args[0])
	}

	return withTrip(func(_ *store.Store, cfg config.Config, t model.Trip) error {
		if flagExportOut != "" && flagExportBackup {
			if _, err := os.Stat(flagExportOut); err == nil {
				backup, err := export.Backup(flagExportOut)
				if err != nil {
					return fmt.Errorf("backing up %s: %w", flagExportOut, err)
				}
				if !flagQuiet {
					fmt.Fprintf(os.Stderr, "  Backed up to %s\n", backup)
				}
			}
		}

		// Snapshots to a file go through the atomic writer.
		if format == "json" && flagExportOut != "" {
			if err := export.WriteSnapshot(flagExportOut, t); err != nil {
				return err
			}
			return reportExport(t, flagExportOut)
		}

		var w io.Writer = os.Stdout
		if flagExportOut != "" {
			f, err := os.Create(flagExportOut) //nolint:gosec // output path is chosen by the local user
			if err != nil {
				return fmt.Errorf("creating %s: %w", flagExportOut, err)
			}
			defer func() { _ = f.Close() }()
			w = f
		}

		var err error
		switch format {
		case "csv":
			err = export.WriteCSV(w, t.Days)
		case "json":
			err = writeSnapshotTo(w, t)
		default:
			err = export.WriteText(w, t, export.TextOptions{
				Symbol: cfg.Symbol(),
				Emoji:  cfg.Appearance.Emoji && !flagExportNoEmoji,
			})
		}
		if err != nil {
			return fmt.Errorf("exporting %s: %w", format, err)
		}
		if flagExportOut != "" {
			return reportExport(t, flagExportOut)
		}
		return nil
	})
}

func writeSnapshotTo(w io.Writer, t model.Trip) error {
	data, err := export.MarshalSnapshot(t, time.Now().UTC())
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func reportExport(t model.Trip, path string) error {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Exported %s to %s\n", t.DisplayName(), path)
	}
	return nil
}
