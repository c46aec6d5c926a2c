// Package pipeline computes trip statistics and orchestrates itinerary import.
package pipeline

import (
	"strings"

	"github.com/theirongolddev/backpack/internal/model"
)

// Fixed breakdown category names. They always precede the additional categories.
const (
	CategoryTransport     = "Transport"
	CategoryAccommodation = "Accommodation"
)

// TotalTransportCost sums transport costs over all days.
func TotalTransportCost(days []model.DayRecord) float64 {
	total := 0.0
	for _, d := range days {
		total += d.TransportCost
	}
	return total
}

// TotalAccommodationCost sums accommodation costs over all days.
func TotalAccommodationCost(days []model.DayRecord) float64 {
	total := 0.0
	for _, d := range days {
		total += d.AccommodationCost
	}
	return total
}

// BasicCost is transport plus accommodation, with no budget categories.
func BasicCost(days []model.DayRecord) float64 {
	return TotalTransportCost(days) + TotalAccommodationCost(days)
}

// TotalPlannedCost adds every category's planned amount to the per-day costs.
func TotalPlannedCost(days []model.DayRecord, budget model.BudgetConfiguration) float64 {
	total := BasicCost(days)
	for _, c := range budget.Categories {
		total += c.Planned
	}
	return total
}

// TotalSpentCost adds every category's recorded spend to the per-day costs.
func TotalSpentCost(days []model.DayRecord, budget model.BudgetConfiguration) float64 {
	total := BasicCost(days)
	for _, c := range budget.Categories {
		total += c.Spent
	}
	return total
}

// BudgetBreakdown returns Transport, Accommodation, then each category's planned
// amount in declared order. Zero amounts are omitted.
func BudgetBreakdown(days []model.DayRecord, budget model.BudgetConfiguration) []model.CategoryAmount {
	return breakdown(days, budget, func(c model.Category) float64 { return c.Planned })
}

// SpentBreakdown is BudgetBreakdown using recorded spend for the categories.
func SpentBreakdown(days []model.DayRecord, budget model.BudgetConfiguration) []model.CategoryAmount {
	return breakdown(days, budget, func(c model.Category) float64 { return c.Spent })
}

func breakdown(days []model.DayRecord, budget model.BudgetConfiguration, amount func(model.Category) float64) []model.CategoryAmount {
	out := make([]model.CategoryAmount, 0, len(budget.Categories)+2)
	add := func(name string, v float64) {
		// Negative amounts are invalid input; they are dropped along with zeros.
		if v > 0 {
			out = append(out, model.CategoryAmount{Name: name, Amount: v})
		}
	}
	add(CategoryTransport, TotalTransportCost(days))
	add(CategoryAccommodation, TotalAccommodationCost(days))
	for _, c := range budget.Categories {
		add(c.Name, amount(c))
	}
	return out
}

// DailyCostSeries returns (day number, transport + accommodation) per day, in input order.
func DailyCostSeries(days []model.DayRecord) []model.DailyCost {
	series := make([]model.DailyCost, len(days))
	for i, d := range days {
		series[i] = model.DailyCost{
			DayNumber: d.DayNumber,
			Cost:      d.Cost(),
			Location:  d.Location,
		}
	}
	return series
}

// AverageDailyCost is the basic cost divided by the day count, or 0 with no days.
func AverageDailyCost(days []model.DayRecord) float64 {
	if len(days) == 0 {
		return 0
	}
	return BasicCost(days) / float64(len(days))
}

// Aggregate computes every derived number for a trip state.
func Aggregate(state model.TripState) model.TripSummary {
	days := state.Days
	budget := state.Budget

	var s model.TripSummary
	s.DayCount = len(days)
	s.TransportCost = TotalTransportCost(days)
	s.AccommodationCost = TotalAccommodationCost(days)
	s.BasicCost = s.TransportCost + s.AccommodationCost
	s.PlannedTotal = TotalPlannedCost(days, budget)
	s.SpentTotal = TotalSpentCost(days, budget)

	s.TotalBudget = budget.TotalBudget
	s.Remaining = budget.TotalBudget - s.PlannedTotal
	s.SpentRemaining = budget.TotalBudget - s.SpentTotal
	s.PlannedUtilization = BudgetUtilizationPercent(s.PlannedTotal, budget.TotalBudget)
	s.SpentUtilization = BudgetUtilizationPercent(s.SpentTotal, budget.TotalBudget)
	s.Status = ClassifyBudget(s.Remaining, budget.TotalBudget)
	s.SpentStatus = ClassifyBudget(s.SpentRemaining, budget.TotalBudget)

	s.AverageDailyCost = AverageDailyCost(days)
	for _, d := range days {
		if IsDaySubstantiallyComplete(d) {
			s.CompleteDays++
		}
	}
	s.CompletionRate = TripCompletionRate(days)

	s.Breakdown = BudgetBreakdown(days, budget)
	s.SpentBreakdown = SpentBreakdown(days, budget)
	s.DailyCosts = DailyCostSeries(days)

	return s
}

// AggregateTrips computes totals across many trips.
func AggregateTrips(trips []model.Trip) model.UserStats {
	var us model.UserStats
	us.TotalTrips = len(trips)
	for _, t := range trips {
		us.TotalDaysPlanned += len(t.Days)
		us.TotalBudget += t.Budget.TotalBudget
		us.TotalSpent += TotalSpentCost(t.Days, t.Budget)
	}
	if us.TotalTrips > 0 {
		us.AverageTripLength = float64(us.TotalDaysPlanned) / float64(us.TotalTrips)
	}
	us.BudgetEfficiency = BudgetUtilizationPercent(us.TotalSpent, us.TotalBudget)
	return us
}

// FilterByName returns trips whose name contains the substring, ignoring case.
func FilterByName(trips []model.Trip, name string) []model.Trip {
	if name == "" {
		return trips
	}
	var result []model.Trip
	for _, t := range trips {
		if containsIgnoreCase(t.Name, name) {
			result = append(result, t)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
