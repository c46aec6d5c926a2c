package pipeline

import (
	"math"
	"testing"

	"github.com/theirongolddev/backpack/internal/model"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func twoDayState() model.TripState {
	return model.TripState{
		Days: []model.DayRecord{
			{DayNumber: 1, TransportCost: 10, AccommodationCost: 20},
			{DayNumber: 2, TransportCost: 5, AccommodationCost: 0},
		},
		Budget: model.BudgetConfiguration{
			TotalBudget: 100,
			Categories:  []model.Category{{Name: "Food", Planned: 20}},
		},
	}
}

func TestAggregate_TwoDays(t *testing.T) {
	s := Aggregate(twoDayState())

	if !approx(s.TransportCost, 15) {
		t.Errorf("TransportCost = %.2f, want 15", s.TransportCost)
	}
	if !approx(s.AccommodationCost, 20) {
		t.Errorf("AccommodationCost = %.2f, want 20", s.AccommodationCost)
	}
	if !approx(s.AverageDailyCost, 17.5) {
		t.Errorf("AverageDailyCost = %.2f, want 17.5", s.AverageDailyCost)
	}
	if !approx(s.PlannedTotal, 55) {
		t.Errorf("PlannedTotal = %.2f, want 55", s.PlannedTotal)
	}
	if !approx(s.PlannedUtilization, 55) {
		t.Errorf("PlannedUtilization = %.2f, want 55", s.PlannedUtilization)
	}
	if s.Status.Status != model.WithinBudget {
		t.Errorf("Status = %s, want WITHIN_BUDGET", s.Status.Status)
	}

	wantNames := []string{"Transport", "Accommodation", "Food"}
	if len(s.Breakdown) != len(wantNames) {
		t.Fatalf("Breakdown = %+v", s.Breakdown)
	}
	for i, name := range wantNames {
		if s.Breakdown[i].Name != name {
			t.Errorf("Breakdown[%d] = %q, want %q", i, s.Breakdown[i].Name, name)
		}
	}

	if len(s.DailyCosts) != 2 || !approx(s.DailyCosts[0].Cost, 30) || !approx(s.DailyCosts[1].Cost, 5) {
		t.Errorf("DailyCosts = %+v", s.DailyCosts)
	}
}

func TestAggregate_OverBudget(t *testing.T) {
	state := twoDayState()
	state.Budget.TotalBudget = 50

	s := Aggregate(state)
	if !approx(s.Remaining, -5) {
		t.Errorf("Remaining = %.2f, want -5", s.Remaining)
	}
	if s.Status.Status != model.OverBudget || !approx(s.Status.Over, 5) {
		t.Errorf("Status = %+v, want OVER_BUDGET by 5", s.Status)
	}
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(model.TripState{})
	if s.DayCount != 0 || s.AverageDailyCost != 0 || s.CompletionRate != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	if s.PlannedUtilization != 0 {
		t.Errorf("PlannedUtilization = %.2f, want 0 with no budget", s.PlannedUtilization)
	}
	if len(s.Breakdown) != 0 {
		t.Errorf("Breakdown = %+v, want empty", s.Breakdown)
	}
	if s.DailyCosts == nil || len(s.DailyCosts) != 0 {
		t.Errorf("DailyCosts = %#v, want empty non-nil", s.DailyCosts)
	}
}

func TestTotals_PlannedAndSpent(t *testing.T) {
	days := []model.DayRecord{{TransportCost: 12.5, AccommodationCost: 7.5}}
	budget := model.BudgetConfiguration{Categories: []model.Category{
		{Name: "Food", Planned: 30, Spent: 10},
		{Name: "Activities", Planned: 20, Spent: 25},
	}}

	if got := BasicCost(days); !approx(got, 20) {
		t.Errorf("BasicCost = %.2f, want 20", got)
	}
	if got := TotalPlannedCost(days, budget); !approx(got, 70) {
		t.Errorf("TotalPlannedCost = %.2f, want 70", got)
	}
	if got := TotalSpentCost(days, budget); !approx(got, 55) {
		t.Errorf("TotalSpentCost = %.2f, want 55", got)
	}
}

func TestTotals_TransportPlusStayMatchesDailyCosts(t *testing.T) {
	tests := []struct {
		name string
		days []model.DayRecord
	}{
		{"empty", nil},
		{"single", []model.DayRecord{{TransportCost: 3.3, AccommodationCost: 19.9}}},
		{"mixed", []model.DayRecord{
			{TransportCost: 45, AccommodationCost: 0},
			{TransportCost: 0, AccommodationCost: 22.5},
			{TransportCost: 7.25, AccommodationCost: 18.75},
			{TransportCost: 0.1, AccommodationCost: 0.2},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perDay := 0.0
			for _, dc := range DailyCostSeries(tt.days) {
				perDay += dc.Cost
			}
			sum := TotalTransportCost(tt.days) + TotalAccommodationCost(tt.days)
			if math.Abs(sum-perDay) > 1e-9 {
				t.Errorf("transport+stay = %v, per-day sum = %v", sum, perDay)
			}
			if !approx(BasicCost(tt.days), sum) {
				t.Errorf("BasicCost = %v, want %v", BasicCost(tt.days), sum)
			}
		})
	}
}

func TestBudgetBreakdown_OmitsZeroAndNegative(t *testing.T) {
	days := []model.DayRecord{{TransportCost: 0, AccommodationCost: 40}}
	budget := model.BudgetConfiguration{Categories: []model.Category{
		{Name: "Shopping", Planned: 0},
		{Name: "Refund", Planned: -10},
		{Name: "Insurance", Planned: 25, Spent: 25},
		{Name: "Activities", Planned: 15},
	}}

	got := BudgetBreakdown(days, budget)
	want := []model.CategoryAmount{
		{Name: "Accommodation", Amount: 40},
		{Name: "Insurance", Amount: 25},
		{Name: "Activities", Amount: 15},
	}
	if len(got) != len(want) {
		t.Fatalf("BudgetBreakdown = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("BudgetBreakdown[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	spent := SpentBreakdown(days, budget)
	if len(spent) != 2 || spent[1].Name != "Insurance" {
		t.Errorf("SpentBreakdown = %+v", spent)
	}
}

func TestDailyCostSeries_KeepsInputOrder(t *testing.T) {
	days := []model.DayRecord{
		{DayNumber: 3, TransportCost: 1},
		{DayNumber: 1, AccommodationCost: 2},
	}
	got := DailyCostSeries(days)
	if got[0].DayNumber != 3 || got[1].DayNumber != 1 {
		t.Errorf("DailyCostSeries order = %+v", got)
	}
}

func TestAggregateTrips(t *testing.T) {
	a := model.Trip{TripState: twoDayState()}
	b := model.Trip{TripState: model.TripState{
		Days:   []model.DayRecord{{AccommodationCost: 10}, {}, {}, {}},
		Budget: model.BudgetConfiguration{TotalBudget: 100},
	}}

	us := AggregateTrips([]model.Trip{a, b})
	if us.TotalTrips != 2 || us.TotalDaysPlanned != 6 {
		t.Errorf("counts = %+v", us)
	}
	if !approx(us.AverageTripLength, 3) {
		t.Errorf("AverageTripLength = %.2f, want 3", us.AverageTripLength)
	}
	// Spent: trip a has 35 basic + 0 spent categories, trip b 10.
	if !approx(us.TotalSpent, 45) {
		t.Errorf("TotalSpent = %.2f, want 45", us.TotalSpent)
	}
	if !approx(us.BudgetEfficiency, 22.5) {
		t.Errorf("BudgetEfficiency = %.2f, want 22.5", us.BudgetEfficiency)
	}

	if empty := AggregateTrips(nil); empty.AverageTripLength != 0 || empty.BudgetEfficiency != 0 {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestFilterByName(t *testing.T) {
	trips := []model.Trip{
		{TripInfo: model.TripInfo{Name: "Balkans Loop"}},
		{TripInfo: model.TripInfo{Name: "Andes"}},
	}
	if got := FilterByName(trips, "BALK"); len(got) != 1 || got[0].Name != "Balkans Loop" {
		t.Errorf("FilterByName = %+v", got)
	}
	if got := FilterByName(trips, ""); len(got) != 2 {
		t.Errorf("FilterByName(\"\") len = %d, want 2", len(got))
	}
}
