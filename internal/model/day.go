// Package model defines domain types for backpack trips, days, and budgets.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in every serialized form.
const DateLayout = "2006-01-02"

// Date is an optional calendar date. The zero value means "not set".
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. Empty input yields the zero Date.
// Longer timestamps are accepted and truncated to their date part.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{t}, nil
}

// IsSet reports whether a date has been chosen.
func (d Date) IsSet() bool {
	return !d.IsZero()
}

// String returns the date as YYYY-MM-DD, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON encodes unset dates as an empty string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD", "" and null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TransportType is the way a day's leg is travelled.
type TransportType string

// Known transport types.
const (
	TransportBus            TransportType = "Bus"
	TransportBusOvernight   TransportType = "Bus (overnight)"
	TransportTrain          TransportType = "Train"
	TransportTrainOvernight TransportType = "Train (overnight)"
	TransportPlane          TransportType = "Plane"
	TransportFerry          TransportType = "Ferry"
	TransportCarTaxi        TransportType = "Car/Taxi"
	TransportWalking        TransportType = "Walking"
	TransportLocal          TransportType = "Local Transport"
	TransportCycling        TransportType = "Cycling"
)

// TransportTypes lists the known transport types in display order.
var TransportTypes = []TransportType{
	TransportBus, TransportBusOvernight, TransportTrain, TransportTrainOvernight,
	TransportPlane, TransportFerry, TransportCarTaxi, TransportWalking,
	TransportLocal, TransportCycling,
}

var transportEmoji = map[TransportType]string{
	TransportBus:            "🚌",
	TransportBusOvernight:   "🚌",
	TransportTrain:          "🚂",
	TransportTrainOvernight: "🚂",
	TransportPlane:          "✈️",
	TransportFerry:          "⛴️",
	TransportCarTaxi:        "🚗",
	TransportWalking:        "🚶",
	TransportLocal:          "🚊",
	TransportCycling:        "🚴",
}

// Emoji returns the display glyph for the transport type.
func (t TransportType) Emoji() string {
	if e, ok := transportEmoji[t]; ok {
		return e
	}
	return "🚌"
}

// AccommodationType is where the traveller sleeps at the end of a day.
type AccommodationType string

// Known accommodation types.
const (
	AccommodationHostel        AccommodationType = "Hostel"
	AccommodationHotel         AccommodationType = "Hotel"
	AccommodationGuesthouse    AccommodationType = "Guesthouse"
	AccommodationCamping       AccommodationType = "Camping"
	AccommodationBusSleeping   AccommodationType = "Bus (sleeping)"
	AccommodationTrainSleeping AccommodationType = "Train (sleeping)"
	AccommodationAirbnb        AccommodationType = "Airbnb"
	AccommodationCouchsurfing  AccommodationType = "Couchsurfing"
	AccommodationFriendsPlace  AccommodationType = "Friend's place"
	AccommodationNone          AccommodationType = "None (transit day)"
	AccommodationSleeperTrain  AccommodationType = "Sleeper Train"
	AccommodationNightBus      AccommodationType = "Night Bus"
)

// AccommodationTypes lists the standard accommodation types in display order.
var AccommodationTypes = []AccommodationType{
	AccommodationHostel, AccommodationHotel, AccommodationGuesthouse, AccommodationCamping,
	AccommodationBusSleeping, AccommodationTrainSleeping, AccommodationAirbnb,
	AccommodationCouchsurfing, AccommodationFriendsPlace, AccommodationNone,
}

// Regional label sets name the same sleeping-on-transport concept differently.
var sleepingOnTransport = map[AccommodationType]struct{}{
	AccommodationBusSleeping:   {},
	AccommodationTrainSleeping: {},
	AccommodationSleeperTrain:  {},
	AccommodationNightBus:      {},
}

var accommodationEmoji = map[AccommodationType]string{
	AccommodationHostel:        "🏠",
	AccommodationHotel:         "🏨",
	AccommodationGuesthouse:    "🏡",
	AccommodationCamping:       "⛺",
	AccommodationBusSleeping:   "🚌",
	AccommodationTrainSleeping: "🚂",
	AccommodationSleeperTrain:  "🚂",
	AccommodationNightBus:      "🚌",
	AccommodationAirbnb:        "🏠",
	AccommodationCouchsurfing:  "🛋️",
	AccommodationFriendsPlace:  "👥",
	AccommodationNone:          "🚶",
}

// SleepsOnTransport reports whether the night is spent on a bus or train.
func (a AccommodationType) SleepsOnTransport() bool {
	_, ok := sleepingOnTransport[a]
	return ok
}

// IsNone reports whether the day has no accommodation at all.
func (a AccommodationType) IsNone() bool {
	return a == AccommodationNone
}

// Unpaid reports whether the type carries no separate accommodation name or cost.
func (a AccommodationType) Unpaid() bool {
	return a.SleepsOnTransport() || a.IsNone()
}

// Emoji returns the display glyph for the accommodation type.
func (a AccommodationType) Emoji() string {
	if e, ok := accommodationEmoji[a]; ok {
		return e
	}
	return "🏠"
}

// DayRecord is one planned day of travel.
type DayRecord struct {
	DayNumber         int               `json:"day_number"`
	Date              Date              `json:"date"`
	Location          string            `json:"location"`
	TransportType     TransportType     `json:"transport_type"`
	TransportFrom     string            `json:"transport_from"`
	TransportTo       string            `json:"transport_to"`
	TransportTime     string            `json:"transport_time"`
	TransportCost     float64           `json:"transport_cost"`
	AccommodationType AccommodationType `json:"accommodation_type"`
	AccommodationName string            `json:"accommodation_name"`
	AccommodationCost float64           `json:"accommodation_cost"`
	Notes             string            `json:"notes"`
}

// Cost returns the day's transport plus accommodation cost.
func (d DayRecord) Cost() float64 {
	return d.TransportCost + d.AccommodationCost
}
