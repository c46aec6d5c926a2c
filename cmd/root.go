package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDB    string
	flagTrip  string
	flagQuiet bool
)

var rootCmd = &cobra.Command{
	Use:           "backpack",
	Short:         "Backpacking trip planner and budget tracker",
	Long:          "Plan trip itineraries day by day and track costs against a budget.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Trip database path (default from config or $BACKPACK_DB)")
	rootCmd.PersistentFlags().StringVarP(&flagTrip, "trip", "t", "", "Trip ID, ID prefix or name (default: active trip)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig reads the config file. A broken file is reported and defaults are used.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Warning: %v (using defaults)\n", err)
	}
	return cfg
}

// openStore opens the trip database selected by --db, env or config.
func openStore(cfg config.Config) (*store.Store, error) {
	path := flagDB
	if path == "" {
		path = config.GetDBPath(cfg)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trip database %s: %w", path, err)
	}
	return st, nil
}

// errNoTrip is returned when no trip is selected and none is active.
var errNoTrip = errors.New("no trip selected: pass --trip or run `backpack trip use <trip>`")

// resolveTrip finds the trip named by --trip, falling back to the active trip
// in config and then to the only trip in the database.
func resolveTrip(st *store.Store, cfg config.Config) (model.Trip, error) {
	ref := flagTrip
	if ref == "" {
		ref = cfg.General.ActiveTrip
	}
	if ref != "" {
		t, err := st.FindTrip(ref)
		if err != nil {
			return t, fmt.Errorf("trip %q: %w", ref, err)
		}
		return t, nil
	}

	trips, err := st.ListTrips()
	if err != nil {
		return model.Trip{}, err
	}
	if len(trips) == 1 {
		return trips[0], nil
	}
	return model.Trip{}, errNoTrip
}

// withTrip opens the store, resolves the current trip and runs fn.
func withTrip(fn func(st *store.Store, cfg config.Config, t model.Trip) error) error {
	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	t, err := resolveTrip(st, cfg)
	if err != nil {
		return err
	}
	return fn(st, cfg, t)
}

