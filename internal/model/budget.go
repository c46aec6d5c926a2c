package model

// Category is a named discretionary spending line outside per-day costs.
type Category struct {
	Name    string  `json:"name"`
	Planned float64 `json:"planned"`
	Spent   float64 `json:"spent"`
}

// BudgetConfiguration is the trip-level spending plan.
type BudgetConfiguration struct {
	TotalBudget float64    `json:"total_budget"`
	Categories  []Category `json:"categories"`
}

// DefaultCategoryNames are the categories offered to a new trip.
var DefaultCategoryNames = []string{
	"Food & Drink",
	"Activities",
	"Shopping",
	"Emergency",
	"Insurance",
	"Miscellaneous",
}

// CategoryIndex returns the position of the named category, or -1.
func (b BudgetConfiguration) CategoryIndex(name string) int {
	for i, c := range b.Categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// BudgetStatus classifies remaining budget for display.
type BudgetStatus int

// Budget statuses, ordered from best to worst.
const (
	WithinBudget BudgetStatus = iota
	CuttingItClose
	OverBudget
)

func (s BudgetStatus) String() string {
	switch s {
	case CuttingItClose:
		return "CUTTING_IT_CLOSE"
	case OverBudget:
		return "OVER_BUDGET"
	default:
		return "WITHIN_BUDGET"
	}
}

// MarshalText encodes the status by name.
func (s BudgetStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BudgetAssessment is a status plus the overspend magnitude when over budget.
type BudgetAssessment struct {
	Status BudgetStatus `json:"status"`
	Over   float64      `json:"over,omitempty"`
}
