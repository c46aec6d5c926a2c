package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/backpack/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "trips.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleTrip() model.Trip {
	return model.Trip{
		TripInfo: model.TripInfo{
			Name:         "Balkans Loop",
			StartDate:    model.NewDate(2025, 6, 1),
			EndDate:      model.NewDate(2025, 6, 3),
			Destinations: "Sarajevo, Mostar",
			TravelStyle:  "Budget Backpacker (£25-40/day)",
			GroupSize:    2,
		},
		TripState: model.TripState{
			Days: []model.DayRecord{
				{DayNumber: 1, Date: model.NewDate(2025, 6, 1), Location: "Sarajevo",
					TransportType: model.TransportBus, TransportCost: 10,
					AccommodationType: model.AccommodationHostel, AccommodationName: "Hostel Kucha", AccommodationCost: 20},
				{DayNumber: 2, Location: "Mostar", TransportType: model.TransportTrain,
					TransportFrom: "Sarajevo", TransportTo: "Mostar", TransportCost: 5,
					AccommodationType: model.AccommodationNone},
			},
			Budget: model.BudgetConfiguration{
				TotalBudget: 300,
				Categories: []model.Category{
					{Name: "Food & Drink", Planned: 60, Spent: 12.5},
					{Name: "Activities", Planned: 0, Spent: 0},
				},
			},
		},
	}
}

func TestOpen_AppliesMigrations(t *testing.T) {
	s := openTestStore(t)
	version, dirty, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("schema version = %d dirty=%v, want 1 clean", version, dirty)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	trip := sampleTrip()
	if err := s.CreateTrip(&trip); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	_ = s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s2.Close() }()
	n, err := s2.TripCount()
	if err != nil {
		t.Fatalf("TripCount: %v", err)
	}
	if n != 1 {
		t.Errorf("TripCount = %d, want 1", n)
	}
}

func TestCreateAndGetTrip(t *testing.T) {
	s := openTestStore(t)
	trip := sampleTrip()
	if err := s.CreateTrip(&trip); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	if trip.ID == "" {
		t.Fatal("CreateTrip did not assign an ID")
	}

	got, err := s.GetTrip(trip.ID)
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if got.Name != "Balkans Loop" || got.GroupSize != 2 {
		t.Errorf("trip info = %+v", got.TripInfo)
	}
	if got.StartDate.String() != "2025-06-01" {
		t.Errorf("StartDate = %q, want 2025-06-01", got.StartDate)
	}
	if len(got.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(got.Days))
	}
	if got.Days[0].AccommodationName != "Hostel Kucha" || got.Days[1].Date.IsSet() {
		t.Errorf("days not preserved: %+v", got.Days)
	}
	if got.Days[1].AccommodationType != model.AccommodationNone {
		t.Errorf("day 2 accommodation = %q", got.Days[1].AccommodationType)
	}
	if len(got.Budget.Categories) != 2 || got.Budget.Categories[0].Spent != 12.5 {
		t.Errorf("categories = %+v", got.Budget.Categories)
	}
	if got.Budget.TotalBudget != 300 {
		t.Errorf("TotalBudget = %.2f, want 300", got.Budget.TotalBudget)
	}
}

func TestSaveTrip_ReplacesChildren(t *testing.T) {
	s := openTestStore(t)
	trip := sampleTrip()
	if err := s.CreateTrip(&trip); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	trip.Days = trip.Days[:1]
	trip.Budget.Categories = []model.Category{{Name: "Insurance", Planned: 40}}
	if err := s.SaveTrip(&trip); err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}

	got, err := s.GetTrip(trip.ID)
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if len(got.Days) != 1 {
		t.Errorf("days = %d, want 1", len(got.Days))
	}
	if len(got.Budget.Categories) != 1 || got.Budget.Categories[0].Name != "Insurance" {
		t.Errorf("categories = %+v", got.Budget.Categories)
	}
}

func TestFindTrip(t *testing.T) {
	s := openTestStore(t)
	a := sampleTrip()
	a.ID = "aaaa1111-0000-0000-0000-000000000000"
	b := sampleTrip()
	b.ID = "aaaa2222-0000-0000-0000-000000000000"
	b.Name = "Andes"
	for _, tr := range []*model.Trip{&a, &b} {
		if err := s.CreateTrip(tr); err != nil {
			t.Fatalf("CreateTrip: %v", err)
		}
	}

	if got, err := s.FindTrip("andes"); err != nil || got.ID != b.ID {
		t.Errorf("FindTrip(name) = %q, %v; want %q", got.ID, err, b.ID)
	}
	if got, err := s.FindTrip("aaaa1"); err != nil || got.ID != a.ID {
		t.Errorf("FindTrip(prefix) = %q, %v; want %q", got.ID, err, a.ID)
	}
	if _, err := s.FindTrip("aaaa"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("FindTrip(shared prefix) err = %v, want ErrAmbiguous", err)
	}
	if _, err := s.FindTrip("zzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindTrip(missing) err = %v, want ErrNotFound", err)
	}
	if _, err := s.FindTrip("%"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindTrip(%%) err = %v, want ErrNotFound", err)
	}
}

func TestListAndDeleteTrip(t *testing.T) {
	s := openTestStore(t)
	a := sampleTrip()
	b := sampleTrip()
	b.Name = "Andes"
	b.Days = nil
	for _, tr := range []*model.Trip{&a, &b} {
		if err := s.CreateTrip(tr); err != nil {
			t.Fatalf("CreateTrip: %v", err)
		}
	}

	trips, err := s.ListTrips()
	if err != nil {
		t.Fatalf("ListTrips: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("ListTrips len = %d, want 2", len(trips))
	}
	days := 0
	for _, tr := range trips {
		days += len(tr.Days)
	}
	if days != 2 {
		t.Errorf("total days across trips = %d, want 2", days)
	}

	if err := s.DeleteTrip(a.ID); err != nil {
		t.Fatalf("DeleteTrip: %v", err)
	}
	if err := s.DeleteTrip(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteTrip err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetTrip(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTrip after delete err = %v, want ErrNotFound", err)
	}
}

func TestImportTrip_TracksFile(t *testing.T) {
	s := openTestStore(t)
	trip := sampleTrip()
	trip.SourcePath = "/tmp/trip_data.json"
	if err := s.ImportTrip(&trip, 1234, 567); err != nil {
		t.Fatalf("ImportTrip: %v", err)
	}

	tracked, err := s.GetTrackedFiles()
	if err != nil {
		t.Fatalf("GetTrackedFiles: %v", err)
	}
	fi, ok := tracked["/tmp/trip_data.json"]
	if !ok {
		t.Fatal("file not tracked")
	}
	if fi.MtimeNs != 1234 || fi.SizeBytes != 567 || fi.TripID != trip.ID {
		t.Errorf("tracked = %+v", fi)
	}

	// Re-import with the same ID updates in place.
	trip.Name = "Renamed"
	if err := s.ImportTrip(&trip, 2000, 600); err != nil {
		t.Fatalf("re-ImportTrip: %v", err)
	}
	n, _ := s.TripCount()
	if n != 1 {
		t.Errorf("TripCount = %d, want 1", n)
	}
}
