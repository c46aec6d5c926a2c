package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive preferences wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	budget := strconv.FormatFloat(cfg.Defaults.TotalBudget, 'f', -1, 64)
	transport := cfg.Defaults.TransportType
	stay := cfg.Defaults.AccommodationType

	transportOpts := make([]huh.Option[string], 0, len(model.TransportTypes))
	for _, tt := range model.TransportTypes {
		transportOpts = append(transportOpts, huh.NewOption(tt.Emoji()+" "+string(tt), string(tt)))
	}
	stayOpts := make([]huh.Option[string], 0, len(model.AccommodationTypes))
	for _, at := range model.AccommodationTypes {
		stayOpts = append(stayOpts, huh.NewOption(at.Emoji()+" "+string(at), string(at)))
	}
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to backpack!").
				Description(fmt.Sprintf("Settings are saved to %s", config.Path())),
			huh.NewSelect[string]().
				Title("Currency").
				Options(huh.NewOptions(config.CurrencyCodes()...)...).
				Value(&cfg.General.Currency),
			huh.NewInput().
				Title("Default trip budget").
				Value(&budget).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(s, 64)
					if err != nil || v < 0 {
						return errors.New("enter a non-negative number")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default transport for new days").
				Options(transportOpts...).
				Value(&transport),
			huh.NewSelect[string]().
				Title("Default accommodation for new days").
				Options(stayOpts...).
				Value(&stay),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&cfg.Appearance.Theme),
			huh.NewConfirm().
				Title("Use emoji in itineraries?").
				Value(&cfg.Appearance.Emoji),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	cfg.Defaults.TotalBudget, _ = strconv.ParseFloat(budget, 64)
	cfg.Defaults.TransportType = transport
	cfg.Defaults.AccommodationType = stay

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `backpack setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
