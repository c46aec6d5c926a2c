package model

// TripSummary holds every derived number for one trip.
type TripSummary struct {
	DayCount int

	TransportCost     float64
	AccommodationCost float64
	BasicCost         float64 // transport + accommodation
	PlannedTotal      float64 // basic + planned categories
	SpentTotal        float64 // basic + spent categories

	TotalBudget        float64
	Remaining          float64 // TotalBudget - PlannedTotal
	SpentRemaining     float64 // TotalBudget - SpentTotal
	PlannedUtilization float64 // percent of TotalBudget
	SpentUtilization   float64
	Status             BudgetAssessment
	SpentStatus        BudgetAssessment

	AverageDailyCost float64
	CompletionRate   float64 // fraction of substantially complete days
	CompleteDays     int

	Breakdown      []CategoryAmount
	SpentBreakdown []CategoryAmount
	DailyCosts     []DailyCost
}

// CategoryAmount is one entry of an ordered cost breakdown.
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// DailyCost is one point of the daily cost series.
type DailyCost struct {
	DayNumber int     `json:"day"`
	Cost      float64 `json:"cost"`
	Location  string  `json:"location,omitempty"`
}

// TypeCount is a count and cost sum for one transport or accommodation type.
type TypeCount struct {
	Name  string  `json:"name"`
	Days  int     `json:"days"`
	Cost  float64 `json:"cost"`
	Emoji string  `json:"-"`
}

// TypeStats holds per-type usage for a trip's days.
type TypeStats struct {
	Transport        []TypeCount `json:"transport_stats"`
	Accommodation    []TypeCount `json:"accommodation_stats"`
	MissingLocations int         `json:"missing_locations"`
	MissingTransport int         `json:"missing_transport"`
}

// UserStats aggregates across every stored trip.
type UserStats struct {
	TotalTrips        int     `json:"total_trips"`
	TotalDaysPlanned  int     `json:"total_days_planned"`
	TotalBudget       float64 `json:"total_budget"`
	TotalSpent        float64 `json:"total_spent"`
	AverageTripLength float64 `json:"average_trip_length"`
	BudgetEfficiency  float64 `json:"budget_efficiency"` // spent as percent of budget
}
