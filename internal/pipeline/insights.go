package pipeline

import (
	"fmt"

	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
)

// InsightLevel grades an advisory message.
type InsightLevel string

// Insight levels.
const (
	InsightInfo    InsightLevel = "info"
	InsightGood    InsightLevel = "good"
	InsightWarning InsightLevel = "warning"
)

// Insight is an advisory message derived from trip numbers.
type Insight struct {
	Level   InsightLevel `json:"level"`
	Message string       `json:"message"`
}

// Thresholds for budget tips, in currency units per day and planned-total shares.
const (
	expensiveDaily      = 60.0
	efficientDaily      = 30.0
	transportHeavy      = 0.4
	underBudgetFactor   = 0.8
	recommendedHeadroom = 1.3
	generousFactor      = 1.5
)

// BudgetTips returns advice about the planned per-day spend and transport share.
// The per-day figure here includes budget categories, unlike AverageDailyCost.
func BudgetTips(state model.TripState, symbol string) []Insight {
	if len(state.Days) == 0 {
		return nil
	}

	var tips []Insight
	planned := TotalPlannedCost(state.Days, state.Budget)
	perDay := planned / float64(len(state.Days))

	switch {
	case perDay > expensiveDaily:
		tips = append(tips, Insight{InsightWarning, fmt.Sprintf(
			"Your daily average (%s%.2f) is quite high for backpacking. Consider cheaper accommodation or transport.",
			symbol, perDay)})
	case perDay < efficientDaily:
		tips = append(tips, Insight{InsightGood, fmt.Sprintf(
			"Great job keeping costs low at %s%.2f per day.", symbol, perDay)})
	}

	if TransportShare(state.Days, state.Budget) > transportHeavy {
		tips = append(tips, Insight{InsightWarning,
			"Transport is over 40% of your budget. Consider slower travel or overnight buses to save on accommodation."})
	}

	return tips
}

// SuggestedDays returns the inclusive day count between the trip's dates,
// or 0 when the dates are unset or not in order.
func SuggestedDays(info model.TripInfo) int {
	if !info.StartDate.IsSet() || !info.EndDate.IsSet() {
		return 0
	}
	if !info.EndDate.After(info.StartDate.Time) {
		return 0
	}
	return int(info.EndDate.Sub(info.StartDate.Time).Hours()/24) + 1
}

// Suggest compares the trip against its own dates and travel style.
func Suggest(styles config.StyleTable, info model.TripInfo, dayCount int, totalBudget float64, symbol string) []Insight {
	var out []Insight

	want := SuggestedDays(info)
	if want > dayCount {
		out = append(out, Insight{InsightInfo, fmt.Sprintf(
			"Based on your dates you might want to plan %d days; %d are planned so far.",
			want, dayCount)})
	}

	// The trip's dates take precedence over the planned day count.
	days := want
	if days == 0 {
		days = dayCount
	}
	if days == 0 || info.TravelStyle == "" {
		return out
	}

	style := config.NormalizeStyleName(info.TravelStyle)
	suggested := SuggestedBudgetFrom(styles, info.TravelStyle, days)
	switch {
	case totalBudget < suggested*underBudgetFactor:
		out = append(out, Insight{InsightWarning, fmt.Sprintf(
			"For a %d-day %s trip, consider budgeting %s%.0f-%s%.0f.",
			days, style, symbol, suggested, symbol, suggested*recommendedHeadroom)})
	case totalBudget > suggested*generousFactor:
		out = append(out, Insight{InsightGood, fmt.Sprintf(
			"You have plenty of budget for %s travel, with room for extra experiences.", style)})
	}

	return out
}
