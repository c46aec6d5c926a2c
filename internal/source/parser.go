// Package source discovers and parses planner trip snapshot files.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/backpack/internal/model"
)

// ParseResult holds the output of parsing a single snapshot file.
type ParseResult struct {
	Trip        model.Trip
	LastSaved   time.Time
	ParseErrors int // fields that could not be read and were left empty
	Err         error
}

// spentCategory receives a snapshot's trip-wide spend when no category records any.
const spentCategory = "Miscellaneous"

// ParseFile reads a snapshot file and converts it to a trip.
// The trip has no ID; SourcePath is set to the file path.
func ParseFile(df DiscoveredFile) ParseResult {
	data, err := os.ReadFile(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	res := ParseBytes(data)
	if res.Err != nil {
		res.Err = fmt.Errorf("%s: %w", df.Path, res.Err)
		return res
	}
	res.Trip.SourcePath = df.Path
	if res.Trip.Name == "" {
		res.Trip.Name = df.Name
	}
	return res
}

// ParseBytes decodes a snapshot. Unreadable dates are counted in ParseErrors
// and left unset; malformed JSON is an error.
func ParseBytes(data []byte) ParseResult {
	var raw RawTripFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return ParseResult{Err: fmt.Errorf("decoding snapshot: %w", err)}
	}

	var res ParseResult
	parseDate := func(s string) model.Date {
		d, err := model.ParseDate(s)
		if err != nil {
			res.ParseErrors++
			return model.Date{}
		}
		return d
	}

	info := raw.TripInfo
	t := model.Trip{
		TripInfo: model.TripInfo{
			Name:                    strings.TrimSpace(info.Name),
			Destinations:            info.Destinations,
			TravelStyle:             info.TravelStyle,
			GroupSize:               info.GroupSize,
			TransportPreference:     info.TransportPreference,
			AccommodationPreference: info.AccommodationPreference,
		},
	}
	if info.StartDate != nil {
		t.StartDate = parseDate(*info.StartDate)
	}
	if info.EndDate != nil {
		t.EndDate = parseDate(*info.EndDate)
	}

	t.Days = make([]model.DayRecord, 0, len(raw.TripData))
	for i, rd := range raw.TripData {
		num := i + 1
		switch {
		case rd.DayNumber != nil:
			num = *rd.DayNumber
		case rd.Day != nil:
			num = *rd.Day
		}
		t.Days = append(t.Days, model.DayRecord{
			DayNumber:         num,
			Date:              parseDate(rd.Date),
			Location:          rd.Location,
			TransportType:     model.TransportType(rd.TransportType),
			TransportFrom:     rd.TransportFrom,
			TransportTo:       rd.TransportTo,
			TransportTime:     rd.TransportTime,
			TransportCost:     rd.TransportCost,
			AccommodationType: model.AccommodationType(rd.AccommodationType),
			AccommodationName: rd.AccommodationName,
			AccommodationCost: rd.AccommodationCost,
			Notes:             rd.Notes,
		})
	}

	t.Budget = model.BudgetConfiguration{
		TotalBudget: raw.BudgetData.TotalBudget,
		Categories:  []model.Category(raw.BudgetData.Categories),
	}
	attributeSpent(&t.Budget, raw.BudgetData.Spent)

	if raw.LastSaved != "" {
		if ts, err := time.ParseInLocation("2006-01-02T15:04:05.999999", raw.LastSaved, time.Local); err == nil {
			res.LastSaved = ts
		} else if ts, err := time.Parse(time.RFC3339Nano, raw.LastSaved); err == nil {
			res.LastSaved = ts
		}
	}

	res.Trip = t
	return res
}

// attributeSpent books a trip-wide spend figure against spentCategory,
// unless categories already carry their own spend.
func attributeSpent(b *model.BudgetConfiguration, spent float64) {
	if spent <= 0 {
		return
	}
	for _, c := range b.Categories {
		if c.Spent != 0 {
			return
		}
	}
	i := b.CategoryIndex(spentCategory)
	if i < 0 {
		b.Categories = append(b.Categories, model.Category{Name: spentCategory})
		i = len(b.Categories) - 1
	}
	b.Categories[i].Spent = spent
}

// FromTrip converts a trip into its snapshot form.
func FromTrip(t model.Trip, savedAt time.Time) RawTripFile {
	days := make([]RawDay, len(t.Days))
	for i, d := range t.Days {
		num := d.DayNumber
		days[i] = RawDay{
			Day:               &num,
			Date:              d.Date.String(),
			Location:          d.Location,
			TransportType:     string(d.TransportType),
			TransportFrom:     d.TransportFrom,
			TransportTo:       d.TransportTo,
			TransportTime:     d.TransportTime,
			TransportCost:     d.TransportCost,
			AccommodationType: string(d.AccommodationType),
			AccommodationName: d.AccommodationName,
			AccommodationCost: d.AccommodationCost,
			Notes:             d.Notes,
		}
	}

	dateOrNil := func(d model.Date) *string {
		if !d.IsSet() {
			return nil
		}
		s := d.String()
		return &s
	}

	categories := t.Budget.Categories
	if categories == nil {
		categories = []model.Category{}
	}

	return RawTripFile{
		TripData: days,
		BudgetData: RawBudget{
			TotalBudget: t.Budget.TotalBudget,
			Categories:  RawCategories(categories),
		},
		TripInfo: RawTripInfo{
			Name:                    t.Name,
			StartDate:               dateOrNil(t.StartDate),
			EndDate:                 dateOrNil(t.EndDate),
			Destinations:            t.Destinations,
			TravelStyle:             t.TravelStyle,
			GroupSize:               t.GroupSize,
			TransportPreference:     t.TransportPreference,
			AccommodationPreference: t.AccommodationPreference,
		},
		LastSaved: savedAt.Format("2006-01-02T15:04:05.000000"),
		Version:   SnapshotVersion,
	}
}
