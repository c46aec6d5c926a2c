package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/theirongolddev/backpack/internal/model"

	"github.com/charmbracelet/huh"
)

// dayValues holds the add/edit form's fields as text.
type dayValues struct {
	Date              string
	Location          string
	TransportType     string
	TransportFrom     string
	TransportTo       string
	TransportTime     string
	TransportCost     string
	AccommodationType string
	AccommodationName string
	AccommodationCost string
	Notes             string
}

func dayValuesFrom(d model.DayRecord) *dayValues {
	return &dayValues{
		Date:              d.Date.String(),
		Location:          d.Location,
		TransportType:     string(d.TransportType),
		TransportFrom:     d.TransportFrom,
		TransportTo:       d.TransportTo,
		TransportTime:     d.TransportTime,
		TransportCost:     formatAmount(d.TransportCost),
		AccommodationType: string(d.AccommodationType),
		AccommodationName: d.AccommodationName,
		AccommodationCost: formatAmount(d.AccommodationCost),
		Notes:             d.Notes,
	}
}

// apply writes the form values onto d.
func (v *dayValues) apply(d *model.DayRecord) error {
	date, err := model.ParseDate(v.Date)
	if err != nil {
		return err
	}
	tc, err := parseAmount(v.TransportCost)
	if err != nil {
		return err
	}
	ac, err := parseAmount(v.AccommodationCost)
	if err != nil {
		return err
	}

	d.Date = date
	d.Location = strings.TrimSpace(v.Location)
	d.TransportType = model.TransportType(v.TransportType)
	d.TransportFrom = strings.TrimSpace(v.TransportFrom)
	d.TransportTo = strings.TrimSpace(v.TransportTo)
	d.TransportTime = strings.TrimSpace(v.TransportTime)
	d.TransportCost = tc
	d.AccommodationType = model.AccommodationType(v.AccommodationType)
	d.AccommodationName = strings.TrimSpace(v.AccommodationName)
	d.AccommodationCost = ac
	d.Notes = strings.TrimSpace(v.Notes)
	return nil
}

func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseAmount reads a non-negative amount. Blank means zero.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("enter a number")
	}
	if v < 0 {
		return 0, errors.New("must not be negative")
	}
	return v, nil
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func validateDate(s string) error {
	_, err := model.ParseDate(s)
	if err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

// newDayForm builds the add/edit form bound to vals.
func newDayForm(title string, vals *dayValues) *huh.Form {
	transport := make([]huh.Option[string], 0, len(model.TransportTypes)+1)
	for _, tt := range model.TransportTypes {
		transport = append(transport, huh.NewOption(tt.Emoji()+" "+string(tt), string(tt)))
	}
	stays := make([]huh.Option[string], 0, len(model.AccommodationTypes)+1)
	for _, at := range model.AccommodationTypes {
		stays = append(stays, huh.NewOption(at.Emoji()+" "+string(at), string(at)))
	}
	// Imported days may carry labels outside the standard lists.
	if vals.TransportType != "" && !hasOption(transport, vals.TransportType) {
		transport = append(transport, huh.NewOption(vals.TransportType, vals.TransportType))
	}
	if vals.AccommodationType != "" && !hasOption(stays, vals.AccommodationType) {
		stays = append(stays, huh.NewOption(vals.AccommodationType, vals.AccommodationType))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&vals.Date).Validate(validateDate),
			huh.NewInput().Title("Location").Value(&vals.Location),
			huh.NewText().Title("Notes").Lines(3).Value(&vals.Notes),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Transport").Options(transport...).Value(&vals.TransportType),
			huh.NewInput().Title("From").Value(&vals.TransportFrom),
			huh.NewInput().Title("To").Value(&vals.TransportTo),
			huh.NewInput().Title("Departure time").Value(&vals.TransportTime),
			huh.NewInput().Title("Transport cost").Value(&vals.TransportCost).Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Accommodation").Options(stays...).Value(&vals.AccommodationType),
			huh.NewInput().Title("Name").Value(&vals.AccommodationName),
			huh.NewInput().Title("Accommodation cost").Value(&vals.AccommodationCost).Validate(validateAmount),
		),
	).WithShowHelp(true)
}

func hasOption(opts []huh.Option[string], v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}
