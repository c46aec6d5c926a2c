package model

import "time"

// TripInfo is trip-level metadata used by suggestion heuristics.
type TripInfo struct {
	Name                    string `json:"name"`
	StartDate               Date   `json:"start_date"`
	EndDate                 Date   `json:"end_date"`
	Destinations            string `json:"destinations"`
	TravelStyle             string `json:"travel_style"`
	GroupSize               int    `json:"group_size"`
	TransportPreference     string `json:"transport_preference,omitempty"`
	AccommodationPreference string `json:"accommodation_preference,omitempty"`
}

// TripState is the mutable itinerary and budget passed into every engine call.
type TripState struct {
	Days   []DayRecord         `json:"days"`
	Budget BudgetConfiguration `json:"budget"`
}

// Trip is a persisted trip.
type Trip struct {
	ID string `json:"id"`
	TripInfo
	TripState
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	SourcePath string    `json:"source_path,omitempty"`
}

// DisplayName returns the trip name, or a placeholder when unnamed.
func (t Trip) DisplayName() string {
	if t.Name == "" {
		return "My Adventure"
	}
	return t.Name
}
