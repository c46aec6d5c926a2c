package pipeline

import (
	"math"

	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
)

// closeThreshold is the share of the budget below which remaining money is "close".
const closeThreshold = 0.1

// BudgetUtilizationPercent is total as a percentage of the budget, or 0 with no budget.
func BudgetUtilizationPercent(total, totalBudget float64) float64 {
	if totalBudget > 0 {
		return total / totalBudget * 100
	}
	return 0
}

// ClassifyBudget grades remaining money against the budget.
// A zero budget uses a zero threshold, so it is never "cutting it close".
func ClassifyBudget(remaining, totalBudget float64) model.BudgetAssessment {
	if remaining < 0 {
		return model.BudgetAssessment{Status: model.OverBudget, Over: math.Abs(remaining)}
	}
	threshold := 0.0
	if totalBudget > 0 {
		threshold = closeThreshold * totalBudget
	}
	if remaining < threshold {
		return model.BudgetAssessment{Status: model.CuttingItClose}
	}
	return model.BudgetAssessment{Status: model.WithinBudget}
}

// SuggestedBudget estimates a trip budget from the built-in travel style tiers.
func SuggestedBudget(travelStyle string, dayCount int) float64 {
	return SuggestedBudgetFrom(config.DefaultStyles, travelStyle, dayCount)
}

// SuggestedBudgetFrom estimates a budget as the tier's daily midpoint times the
// day count. Unknown styles use config.FallbackDailyRate per day.
func SuggestedBudgetFrom(styles config.StyleTable, travelStyle string, dayCount int) float64 {
	daily := config.FallbackDailyRate
	if tier, ok := styles.Lookup(travelStyle); ok {
		daily = tier.Rate.DailyMid()
	}
	return daily * float64(dayCount)
}
