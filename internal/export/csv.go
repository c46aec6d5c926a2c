// Package export writes trips as CSV, plain-text itineraries and JSON snapshots.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/theirongolddev/backpack/internal/model"
)

// CSVHeader is the column order of WriteCSV.
var CSVHeader = []string{
	"day", "date", "location",
	"transport_type", "transport_from", "transport_to", "transport_time", "transport_cost",
	"accommodation_type", "accommodation_name", "accommodation_cost",
	"notes", "day_cost",
}

// WriteCSV writes a header and one row per day. Costs have two decimals.
func WriteCSV(w io.Writer, days []model.DayRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, d := range days {
		row := []string{
			strconv.Itoa(d.DayNumber),
			d.Date.String(),
			d.Location,
			string(d.TransportType),
			d.TransportFrom,
			d.TransportTo,
			d.TransportTime,
			money(d.TransportCost),
			string(d.AccommodationType),
			d.AccommodationName,
			money(d.AccommodationCost),
			d.Notes,
			money(d.Cost()),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
