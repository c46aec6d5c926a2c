package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/pipeline"
	"github.com/theirongolddev/backpack/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var dayFlags struct {
	date          string
	location      string
	transport     string
	from          string
	to            string
	time          string
	transportCost float64
	stay          string
	stayName      string
	stayCost      float64
	notes         string
}

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Add, edit and reorder itinerary days",
}

var dayListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the itinerary (same as daily)",
	Args:    cobra.NoArgs,
	RunE:    runDaily,
}

var dayAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a day to the itinerary",
	Args:  cobra.NoArgs,
	RunE:  runDayAdd,
}

var dayEditCmd = &cobra.Command{
	Use:   "edit <day>",
	Short: "Change fields of a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runDayEdit,
}

var dayRmCmd = &cobra.Command{
	Use:   "rm <day>",
	Short: "Delete a day and renumber the rest",
	Args:  cobra.ExactArgs(1),
	RunE:  runDayRm,
}

var dayCopyCmd = &cobra.Command{
	Use:   "copy <day>",
	Short: "Append a copy of a day with the date cleared",
	Args:  cobra.ExactArgs(1),
	RunE:  runDayCopy,
}

var dayMoveCmd = &cobra.Command{
	Use:   "move <day> <up|down>",
	Short: "Move a day one place earlier or later",
	Args:  cobra.ExactArgs(2),
	RunE:  runDayMove,
}

func init() {
	for _, c := range []*cobra.Command{dayAddCmd, dayEditCmd} {
		addDayFlags(c.Flags())
	}
	dayCmd.AddCommand(dayListCmd, dayAddCmd, dayEditCmd, dayRmCmd, dayCopyCmd, dayMoveCmd)
	rootCmd.AddCommand(dayCmd)
}

func addDayFlags(f *pflag.FlagSet) {
	f.StringVar(&dayFlags.date, "date", "", "Date (YYYY-MM-DD)")
	f.StringVarP(&dayFlags.location, "location", "l", "", "Where you are")
	f.StringVar(&dayFlags.transport, "transport", "", "Transport type, e.g. Bus, Train, Plane")
	f.StringVar(&dayFlags.from, "from", "", "Departure point")
	f.StringVar(&dayFlags.to, "to", "", "Arrival point")
	f.StringVar(&dayFlags.time, "time", "", "Departure time")
	f.Float64Var(&dayFlags.transportCost, "transport-cost", 0, "Transport cost")
	f.StringVar(&dayFlags.stay, "stay", "", "Accommodation type, e.g. Hostel, Night Bus")
	f.StringVar(&dayFlags.stayName, "stay-name", "", "Accommodation name")
	f.Float64Var(&dayFlags.stayCost, "stay-cost", 0, "Accommodation cost")
	f.StringVarP(&dayFlags.notes, "notes", "n", "", "Notes")
}

// applyDayFlags copies explicitly set day flags onto d.
func applyDayFlags(f *pflag.FlagSet, d *model.DayRecord) error {
	if f.Changed("date") {
		date, err := model.ParseDate(dayFlags.date)
		if err != nil {
			return err
		}
		d.Date = date
	}
	set := func(name string, dst *string, v string) {
		if f.Changed(name) {
			*dst = v
		}
	}
	set("location", &d.Location, dayFlags.location)
	set("from", &d.TransportFrom, dayFlags.from)
	set("to", &d.TransportTo, dayFlags.to)
	set("time", &d.TransportTime, dayFlags.time)
	set("stay-name", &d.AccommodationName, dayFlags.stayName)
	set("notes", &d.Notes, dayFlags.notes)
	if f.Changed("transport") {
		d.TransportType = model.TransportType(dayFlags.transport)
	}
	if f.Changed("stay") {
		d.AccommodationType = model.AccommodationType(dayFlags.stay)
	}
	if f.Changed("transport-cost") {
		d.TransportCost = dayFlags.transportCost
	}
	if f.Changed("stay-cost") {
		d.AccommodationCost = dayFlags.stayCost
	}
	return nil
}

// parseDayArg converts a 1-based day number into an index.
func parseDayArg(arg string, t model.Trip) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("day must be a number, got %q", arg)
	}
	if n < 1 || n > len(t.Days) {
		return 0, fmt.Errorf("day %d: %w (trip has %d days)", n, pipeline.ErrDayOutOfRange, len(t.Days))
	}
	return n - 1, nil
}

// saveDays persists the trip and reports validation issues for day idx.
func saveDays(st *store.Store, t *model.Trip, idx int) error {
	if err := st.SaveTrip(t); err != nil {
		return fmt.Errorf("saving trip: %w", err)
	}
	if idx >= 0 && idx < len(t.Days) {
		d := t.Days[idx]
		for _, issue := range pipeline.ValidateDay(d) {
			fmt.Printf("  Day %d: %s\n", d.DayNumber, issue)
		}
	}
	return nil
}

func runDayAdd(cmd *cobra.Command, _ []string) error {
	return withTrip(func(st *store.Store, cfg config.Config, t model.Trip) error {
		defaults := pipeline.ConfiguredDayDefaults(cfg)
		d := pipeline.AddDay(&t.TripState, defaults)
		if err := applyDayFlags(cmd.Flags(), &d); err != nil {
			return err
		}
		idx := len(t.Days) - 1
		if err := pipeline.UpdateDay(&t.TripState, idx, d, defaults); err != nil {
			return err
		}
		fmt.Printf("  Added day %d to %s\n", idx+1, t.DisplayName())
		return saveDays(st, &t, idx)
	})
}

func runDayEdit(cmd *cobra.Command, args []string) error {
	return withTrip(func(st *store.Store, cfg config.Config, t model.Trip) error {
		idx, err := parseDayArg(args[0], t)
		if err != nil {
			return err
		}
		d := t.Days[idx]
		if err := applyDayFlags(cmd.Flags(), &d); err != nil {
			return err
		}
		if err := pipeline.UpdateDay(&t.TripState, idx, d, pipeline.ConfiguredDayDefaults(cfg)); err != nil {
			return err
		}
		fmt.Printf("  Updated day %d\n", idx+1)
		return saveDays(st, &t, idx)
	})
}

func runDayRm(_ *cobra.Command, args []string) error {
	return withTrip(func(st *store.Store, _ config.Config, t model.Trip) error {
		idx, err := parseDayArg(args[0], t)
		if err != nil {
			return err
		}
		if err := pipeline.DeleteDay(&t.TripState, idx); err != nil {
			return err
		}
		fmt.Printf("  Deleted day %d, %d days left\n", idx+1, len(t.Days))
		return saveDays(st, &t, -1)
	})
}

func runDayCopy(_ *cobra.Command, args []string) error {
	return withTrip(func(st *store.Store, _ config.Config, t model.Trip) error {
		idx, err := parseDayArg(args[0], t)
		if err != nil {
			return err
		}
		d, err := pipeline.CopyDay(&t.TripState, idx)
		if err != nil {
			return err
		}
		fmt.Printf("  Copied day %d to day %d\n", idx+1, d.DayNumber)
		return saveDays(st, &t, -1)
	})
}

func runDayMove(_ *cobra.Command, args []string) error {
	return withTrip(func(st *store.Store, _ config.Config, t model.Trip) error {
		idx, err := parseDayArg(args[0], t)
		if err != nil {
			return err
		}
		var delta int
		switch args[1] {
		case "up", "-1":
			delta = -1
		case "down", "+1", "1":
			delta = 1
		default:
			return fmt.Errorf("direction must be up or down, got %q", args[1])
		}
		to, err := pipeline.MoveDay(&t.TripState, idx, delta)
		if err != nil {
			return err
		}
		fmt.Printf("  Day %d is now day %d\n", idx+1, to+1)
		return saveDays(st, &t, -1)
	})
}
