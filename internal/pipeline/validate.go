package pipeline

import (
	"fmt"

	"github.com/theirongolddev/backpack/internal/model"
)

// ValidateDay returns advisory issues with a day. It never fails.
func ValidateDay(d model.DayRecord) []string {
	var issues []string

	if !filled(d.Location) {
		issues = append(issues, "Location is required")
	}
	switch {
	case !filled(d.TransportFrom) && !filled(d.TransportTo):
		issues = append(issues, "Transport route is incomplete")
	case filled(d.TransportFrom) != filled(d.TransportTo):
		issues = append(issues, "Both departure and arrival locations are needed for transport")
	}
	if d.TransportCost < 0 {
		issues = append(issues, "Transport cost cannot be negative")
	}
	if d.AccommodationCost < 0 {
		issues = append(issues, "Accommodation cost cannot be negative")
	}
	if d.AccommodationType.Unpaid() && (d.AccommodationCost != 0 || d.AccommodationName != "") {
		issues = append(issues, fmt.Sprintf("%s has no separate accommodation name or cost", d.AccommodationType))
	}

	return issues
}

// ValidateTripInfo returns advisory issues with trip metadata.
func ValidateTripInfo(info model.TripInfo) []string {
	var issues []string
	if info.StartDate.IsSet() && info.EndDate.IsSet() && info.EndDate.Before(info.StartDate.Time) {
		issues = append(issues, "End date is before start date")
	}
	if info.GroupSize < 0 {
		issues = append(issues, "Group size cannot be negative")
	}
	return issues
}
