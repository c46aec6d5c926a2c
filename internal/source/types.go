package source

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/theirongolddev/backpack/internal/model"
)

// SnapshotVersion is written to every snapshot file.
const SnapshotVersion = "1.0"

// RawTripFile is the on-disk trip snapshot written by the planner.
type RawTripFile struct {
	TripData   []RawDay    `json:"trip_data"`
	BudgetData RawBudget   `json:"budget_data"`
	TripInfo   RawTripInfo `json:"trip_info"`
	LastSaved  string      `json:"last_saved,omitempty"`
	Version    string      `json:"version,omitempty"`
}

// RawDay is one entry of trip_data. Older files use "day", newer ones "day_number".
type RawDay struct {
	Day               *int    `json:"day,omitempty"`
	DayNumber         *int    `json:"day_number,omitempty"`
	Date              string  `json:"date"`
	Location          string  `json:"location"`
	TransportType     string  `json:"transport_type"`
	TransportFrom     string  `json:"transport_from"`
	TransportTo       string  `json:"transport_to"`
	TransportTime     string  `json:"transport_time"`
	TransportCost     float64 `json:"transport_cost"`
	AccommodationType string  `json:"accommodation_type"`
	AccommodationName string  `json:"accommodation_name"`
	AccommodationCost float64 `json:"accommodation_cost"`
	Notes             string  `json:"notes"`
}

// RawBudget is the budget_data object. Spent is a single trip-wide figure.
type RawBudget struct {
	TotalBudget float64       `json:"total_budget"`
	Spent       float64       `json:"spent"`
	Categories  RawCategories `json:"categories"`
}

// RawTripInfo is the trip_info object. Dates are ISO strings or null.
type RawTripInfo struct {
	Name                    string  `json:"name"`
	StartDate               *string `json:"start_date"`
	EndDate                 *string `json:"end_date"`
	Destinations            string  `json:"destinations"`
	TravelStyle             string  `json:"travel_style"`
	GroupSize               int     `json:"group_size"`
	TransportPreference     string  `json:"transport_preference,omitempty"`
	AccommodationPreference string  `json:"accommodation_preference,omitempty"`
}

// RawCategories decodes budget categories from either an object keyed by name
// (values are a planned amount or {planned, spent}) or an array of
// {name, planned, spent}. Object key order is preserved.
type RawCategories []model.Category

type rawAmount struct {
	Planned float64 `json:"planned"`
	Spent   float64 `json:"spent"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (rc *RawCategories) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*rc = nil
		return nil
	}

	if data[0] == '[' {
		var list []model.Category
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("decoding category list: %w", err)
		}
		*rc = list
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories: expected object or array, got %v", tok)
	}

	var out []model.Category
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
		c, err := decodeAmount(name, raw)
		if err != nil {
			return err
		}
		out = append(out, c)
	}
	*rc = out
	return nil
}

func decodeAmount(name string, raw json.RawMessage) (model.Category, error) {
	c := model.Category{Name: name}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var a rawAmount
		if err := json.Unmarshal(raw, &a); err != nil {
			return c, fmt.Errorf("category %q: %w", name, err)
		}
		c.Planned, c.Spent = a.Planned, a.Spent
		return c, nil
	}
	if bytes.Equal(raw, []byte("null")) {
		return c, nil
	}
	if err := json.Unmarshal(raw, &c.Planned); err != nil {
		return c, fmt.Errorf("category %q: %w", name, err)
	}
	return c, nil
}

// MarshalJSON writes categories as an ordered object of {planned, spent}.
func (rc RawCategories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range rc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(rawAmount{Planned: c.Planned, Spent: c.Spent})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
