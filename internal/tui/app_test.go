package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/backpack/internal/config"
	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "trips.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func testTrip(name string) model.Trip {
	return model.Trip{
		TripInfo: model.TripInfo{
			Name:        name,
			StartDate:   model.NewDate(2025, 6, 1),
			EndDate:     model.NewDate(2025, 6, 2),
			TravelStyle: "Budget Backpacker",
			GroupSize:   1,
		},
		TripState: model.TripState{
			Days: []model.DayRecord{
				{DayNumber: 1, Date: model.NewDate(2025, 6, 1), Location: "Sarajevo",
					TransportType: model.TransportBus, TransportCost: 10,
					AccommodationType: model.AccommodationHostel, AccommodationCost: 20},
				{DayNumber: 2, Date: model.NewDate(2025, 6, 2), Location: "Mostar",
					TransportType: model.TransportTrain, TransportCost: 5,
					AccommodationType: model.AccommodationHostel, AccommodationCost: 15},
			},
			Budget: model.BudgetConfiguration{TotalBudget: 300},
		},
	}
}

// loadedApp returns an app showing a stored copy of testTrip on the Days tab.
func loadedApp(t *testing.T) (App, *store.Store) {
	t.Helper()
	st := openTestStore(t)
	trip := testTrip("Balkans")
	if err := st.CreateTrip(&trip); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	a := NewApp(st, config.DefaultConfig(), "")
	a = update(t, a, loadTrip(st, trip.ID, ""))
	if a.trip.ID != trip.ID {
		t.Fatalf("loaded trip %q, want %q", a.trip.ID, trip.ID)
	}
	a.activeTab = tabDays
	return a, st
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	next, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return next
}

func press(t *testing.T, a App, key string) App {
	t.Helper()
	return update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// finishSave runs the save the app has in flight and delivers its result.
func finishSave(t *testing.T, a App, st *store.Store) App {
	t.Helper()
	if !a.saving {
		t.Fatal("no save in flight")
	}
	msg := saveTripCmd(st, cloneTrip(a.trip))()
	saved, ok := msg.(TripSavedMsg)
	if !ok {
		t.Fatalf("save returned %T", msg)
	}
	if saved.Err != nil {
		t.Fatalf("save: %v", saved.Err)
	}
	return update(t, a, saved)
}

func TestLoadTrip_Resolution(t *testing.T) {
	st := openTestStore(t)

	if msg := loadTrip(st, "", ""); msg.Found || msg.Err != nil {
		t.Fatalf("empty store: found=%v err=%v, want not found and no error", msg.Found, msg.Err)
	}

	first := testTrip("First")
	second := testTrip("Second")
	if err := st.CreateTrip(&first); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	if err := st.CreateTrip(&second); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	if msg := loadTrip(st, "", first.ID); !msg.Found || msg.Trip.ID != first.ID {
		t.Errorf("active trip: got %q found=%v, want %q", msg.Trip.ID, msg.Found, first.ID)
	}
	if msg := loadTrip(st, "Second", first.ID); !msg.Found || msg.Trip.ID != second.ID {
		t.Errorf("ref by name: got %q, want %q", msg.Trip.ID, second.ID)
	}
	if msg := loadTrip(st, "", "gone"); !msg.Found {
		t.Error("stale active trip should fall back to a stored trip")
	}
	msg := loadTrip(st, "Nowhere", "")
	if msg.Found || !errors.Is(msg.Err, store.ErrNotFound) {
		t.Errorf("unknown ref: found=%v err=%v, want ErrNotFound", msg.Found, msg.Err)
	}
}

func TestTripLoadedWithoutTripStartsSetup(t *testing.T) {
	a := NewApp(openTestStore(t), config.DefaultConfig(), "")
	a = update(t, a, TripLoadedMsg{})
	if a.setupForm == nil || !a.needSetup {
		t.Fatal("expected the setup wizard when there is no trip")
	}
}

func TestDaysTab_CopyMoveDelete(t *testing.T) {
	a, st := loadedApp(t)

	a = press(t, a, "c")
	if len(a.trip.Days) != 3 || a.days.cursor != 2 {
		t.Fatalf("after copy: %d days, cursor %d; want 3 days, cursor 2", len(a.trip.Days), a.days.cursor)
	}
	if a.trip.Days[2].Location != "Sarajevo" || a.trip.Days[2].Date.IsSet() {
		t.Errorf("copy = %+v, want Sarajevo with a blank date", a.trip.Days[2])
	}
	if !a.saving {
		t.Fatal("copy should start a save")
	}

	// A second change while saving is queued.
	a = press(t, a, "K")
	if a.days.cursor != 1 || a.trip.Days[1].Location != "Sarajevo" || a.trip.Days[1].DayNumber != 2 {
		t.Fatalf("after move up: cursor %d, day 2 = %+v", a.days.cursor, a.trip.Days[1])
	}
	if !a.dirty {
		t.Fatal("change during a save should mark the trip dirty")
	}

	a = finishSave(t, a, st)
	if a.dirty || !a.saving {
		t.Fatalf("after first save: dirty=%v saving=%v, want a follow-up save", a.dirty, a.saving)
	}
	a = finishSave(t, a, st)
	if a.saving {
		t.Fatal("no save should remain in flight")
	}

	got, err := st.GetTrip(a.trip.ID)
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if len(got.Days) != 3 || got.Days[1].Location != "Sarajevo" || got.Days[2].Location != "Mostar" {
		t.Fatalf("stored days = %+v", got.Days)
	}

	// Delete needs confirmation.
	a = press(t, a, "x")
	a = press(t, a, "n")
	if len(a.trip.Days) != 3 {
		t.Fatalf("delete without confirmation removed a day")
	}
	a = press(t, a, "x")
	if !a.days.confirmDelete {
		t.Fatal("x should ask for confirmation")
	}
	a = press(t, a, "y")
	if len(a.trip.Days) != 2 || a.trip.Days[1].Location != "Mostar" || a.trip.Days[1].DayNumber != 2 {
		t.Fatalf("after delete: %+v", a.trip.Days)
	}
	a = finishSave(t, a, st)

	got, err = st.GetTrip(a.trip.ID)
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if len(got.Days) != 2 {
		t.Fatalf("stored %d days after delete, want 2", len(got.Days))
	}
}

func TestDaysTab_MovePastEndIsNoop(t *testing.T) {
	a, _ := loadedApp(t)
	a = press(t, a, "K")
	if a.days.cursor != 0 || a.saving {
		t.Fatalf("moving the first day up: cursor %d saving=%v", a.days.cursor, a.saving)
	}
	if a.trip.Days[0].Location != "Sarajevo" {
		t.Errorf("day order changed: %+v", a.trip.Days)
	}
}

func TestApplyDayForm_AddAndEdit(t *testing.T) {
	a, _ := loadedApp(t)

	if got := a.nextDate().String(); got != "2025-06-03" {
		t.Errorf("nextDate = %q, want 2025-06-03", got)
	}

	vals := &dayValues{Date: "2025-06-03", Location: " Kotor ", TransportCost: "12.5", AccommodationCost: "18"}
	a.applyDayForm(vals, -1)
	if len(a.trip.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(a.trip.Days))
	}
	d := a.trip.Days[2]
	if d.DayNumber != 3 || d.Location != "Kotor" || d.TransportCost != 12.5 || d.AccommodationCost != 18 {
		t.Errorf("added day = %+v", d)
	}
	if d.TransportType != model.TransportBus || d.AccommodationType != model.AccommodationHostel {
		t.Errorf("empty types should take defaults, got %q/%q", d.TransportType, d.AccommodationType)
	}
	if a.summary.DayCount != 3 {
		t.Errorf("summary not recomputed: DayCount=%d", a.summary.DayCount)
	}

	edit := dayValuesFrom(a.trip.Days[0])
	edit.AccommodationType = string(model.AccommodationNightBus)
	edit.AccommodationName = "Should be cleared"
	a.applyDayForm(edit, 0)
	if got := a.trip.Days[0]; got.AccommodationCost != 0 || got.AccommodationName != "" || got.DayNumber != 1 {
		t.Errorf("night bus day kept a stay: %+v", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{" 12.50 ", 12.5, false},
		{"0", 0, false},
		{"-3", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAmount(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDayValuesRoundTrip(t *testing.T) {
	d := testTrip("x").Days[0]
	d.Notes = "early start"

	var got model.DayRecord
	if err := dayValuesFrom(d).apply(&got); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !got.Date.Equal(d.Date.Time) {
		t.Errorf("date = %v, want %v", got.Date, d.Date)
	}
	got.DayNumber, got.Date = d.DayNumber, d.Date
	if got != d {
		t.Errorf("round trip = %+v, want %+v", got, d)
	}

	bad := dayValuesFrom(d)
	bad.Date = "June 1st"
	if err := bad.apply(&got); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

func TestTripFromSetup(t *testing.T) {
	trip, err := tripFromSetup(setupValues{
		Name:  " Andes ",
		Style: "Mid-range Explorer",
		Start: "2025-09-01",
		End:   "2025-09-14",
	}, 1500)
	if err != nil {
		t.Fatalf("tripFromSetup: %v", err)
	}
	if trip.Name != "Andes" || trip.Budget.TotalBudget != 1500 || trip.GroupSize != 1 {
		t.Errorf("trip = %+v", trip.TripInfo)
	}
	if len(trip.Budget.Categories) != len(model.DefaultCategoryNames) {
		t.Errorf("got %d categories, want the defaults", len(trip.Budget.Categories))
	}

	if _, err := tripFromSetup(setupValues{Name: "Backwards", Start: "2025-09-14", End: "2025-09-01"}, 0); err == nil {
		t.Error("expected an error when the end date is before the start")
	}
}

func TestOverviewShowsReadiness(t *testing.T) {
	a, _ := loadedApp(t)
	a.width = 140
	out := a.renderOverviewTab(120)
	if !strings.Contains(out, "Trip Readiness") {
		t.Error("overview missing readiness card")
	}
	if !strings.Contains(out, "0 of 2 days planned") {
		t.Error("overview missing completed-day count")
	}
}
