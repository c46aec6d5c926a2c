package pipeline

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
)

// ErrDayOutOfRange is returned when a day index does not exist in the itinerary.
var ErrDayOutOfRange = errors.New("day out of range")

// DayDefaults holds the values a new day starts with.
type DayDefaults struct {
	TransportType     model.TransportType
	AccommodationType model.AccommodationType
}

// StandardDayDefaults returns Bus and Hostel.
func StandardDayDefaults() DayDefaults {
	return DayDefaults{
		TransportType:     model.TransportBus,
		AccommodationType: model.AccommodationHostel,
	}
}

// ConfiguredDayDefaults returns the configured day defaults, falling back to
// StandardDayDefaults for anything unset.
func ConfiguredDayDefaults(cfg config.Config) DayDefaults {
	return DayDefaults{
		TransportType:     model.TransportType(cfg.Defaults.TransportType),
		AccommodationType: model.AccommodationType(cfg.Defaults.AccommodationType),
	}.orStandard()
}

func (d DayDefaults) orStandard() DayDefaults {
	std := StandardDayDefaults()
	if d.TransportType == "" {
		d.TransportType = std.TransportType
	}
	if d.AccommodationType == "" {
		d.AccommodationType = std.AccommodationType
	}
	return d
}

// Renumber sets every day's number to its 1-based position.
func Renumber(days []model.DayRecord) {
	for i := range days {
		days[i].DayNumber = i + 1
	}
}

// NormalizeDay fills empty type fields from defaults and clears the accommodation
// name and cost for days spent on transport or with no accommodation.
func NormalizeDay(d model.DayRecord, defaults DayDefaults) model.DayRecord {
	if d.TransportType == "" {
		d.TransportType = defaults.TransportType
	}
	if d.AccommodationType == "" {
		d.AccommodationType = defaults.AccommodationType
	}
	if d.AccommodationType.Unpaid() {
		d.AccommodationName = ""
		d.AccommodationCost = 0
	}
	return d
}

// AddDay appends a day with defaults and returns it.
func AddDay(state *model.TripState, defaults DayDefaults) model.DayRecord {
	d := NormalizeDay(model.DayRecord{DayNumber: len(state.Days) + 1}, defaults)
	state.Days = append(state.Days, d)
	return d
}

// CopyDay appends a duplicate of the day at index with a blank date.
func CopyDay(state *model.TripState, index int) (model.DayRecord, error) {
	if err := checkIndex(state, index); err != nil {
		return model.DayRecord{}, err
	}
	d := state.Days[index]
	d.Date = model.Date{}
	d.DayNumber = len(state.Days) + 1
	state.Days = append(state.Days, d)
	return d, nil
}

// DeleteDay removes the day at index and renumbers the rest.
func DeleteDay(state *model.TripState, index int) error {
	if err := checkIndex(state, index); err != nil {
		return err
	}
	state.Days = append(state.Days[:index], state.Days[index+1:]...)
	Renumber(state.Days)
	return nil
}

// MoveDay swaps the day at index with its neighbour delta positions away
// (-1 up, +1 down) and renumbers. Moving past either end is a no-op.
// It returns the day's new index.
func MoveDay(state *model.TripState, index, delta int) (int, error) {
	if err := checkIndex(state, index); err != nil {
		return index, err
	}
	target := index + delta
	if target < 0 || target >= len(state.Days) {
		return index, nil
	}
	state.Days[index], state.Days[target] = state.Days[target], state.Days[index]
	Renumber(state.Days)
	return target, nil
}

// UpdateDay replaces the day at index, keeping its number.
func UpdateDay(state *model.TripState, index int, d model.DayRecord, defaults DayDefaults) error {
	if err := checkIndex(state, index); err != nil {
		return err
	}
	d.DayNumber = state.Days[index].DayNumber
	state.Days[index] = NormalizeDay(d, defaults)
	return nil
}

func checkIndex(state *model.TripState, index int) error {
	if index < 0 || index >= len(state.Days) {
		return fmt.Errorf("day %d of %d: %w", index+1, len(state.Days), ErrDayOutOfRange)
	}
	return nil
}
