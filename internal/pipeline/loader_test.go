package pipeline

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/store"
)

func writeTripFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const snapshotA = `{"trip_data": [
	{"day": 3, "location": "Split", "transport_type": "", "accommodation_type": "Night Bus", "accommodation_cost": 9},
	{"day": 1, "location": "Hvar", "transport_cost": 12}
], "budget_data": {"total_budget": 200, "categories": {}}, "trip_info": {"name": "Croatia"}}`

const snapshotB = `{"trip_data": [], "budget_data": {"total_budget": 50}, "trip_info": {"name": "Weekend", "group_size": 0}}`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeTripFile(t, dir, "croatia.json", snapshotA)
	writeTripFile(t, dir, "weekend.json", snapshotB)
	writeTripFile(t, dir, "broken.json", `{"trip_data":`)
	writeTripFile(t, dir, "croatia_backup_20250101_000000.json", snapshotA)

	var calls atomic.Int32
	res, err := Load(dir, func(current, total int) {
		calls.Add(1)
		if total != 3 {
			t.Errorf("progress total = %d, want 3", total)
		}
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.TotalFiles != 3 || res.ParsedFiles != 2 || res.FileErrors != 1 {
		t.Errorf("counts = %+v", res)
	}
	if calls.Load() != 3 {
		t.Errorf("progress calls = %d, want 3", calls.Load())
	}

	var croatia model.Trip
	for _, tr := range res.Trips {
		if tr.Name == "Croatia" {
			croatia = tr
		}
		if tr.GroupSize != 1 {
			t.Errorf("%s GroupSize = %d, want 1", tr.Name, tr.GroupSize)
		}
	}
	if len(croatia.Days) != 2 {
		t.Fatalf("croatia days = %+v", croatia.Days)
	}
	d := croatia.Days[0]
	if d.DayNumber != 1 || d.TransportType != model.TransportBus || d.AccommodationCost != 0 {
		t.Errorf("normalized day = %+v", d)
	}
	if croatia.Days[1].DayNumber != 2 || croatia.Days[1].AccommodationType != model.AccommodationHostel {
		t.Errorf("second day = %+v", croatia.Days[1])
	}
}

func TestLoad_EmptyDir(t *testing.T) {
	res, err := Load(filepath.Join(t.TempDir(), "none"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.TotalFiles != 0 || len(res.Trips) != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestLoadWithTracker(t *testing.T) {
	dir := t.TempDir()
	pathA := writeTripFile(t, dir, "croatia.json", snapshotA)
	writeTripFile(t, dir, "weekend.json", snapshotB)

	st, err := store.Open(filepath.Join(t.TempDir(), "trips.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = st.Close() }()

	first, err := LoadWithTracker(dir, st, StandardDayDefaults(), nil)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if first.Imported != 2 || first.Unchanged != 0 {
		t.Errorf("first = %+v", first)
	}

	second, err := LoadWithTracker(dir, st, StandardDayDefaults(), nil)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if second.Imported != 0 || second.Unchanged != 2 {
		t.Errorf("second = %+v", second)
	}

	tracked, err := st.GetTrackedFiles()
	if err != nil {
		t.Fatal(err)
	}
	origID := tracked[pathA].TripID

	// Change the file; re-import must update the same trip.
	writeTripFile(t, dir, "croatia.json", `{"trip_data": [], "budget_data": {"total_budget": 999}, "trip_info": {"name": "Croatia v2"}}`)
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(pathA, future, future); err != nil {
		t.Fatal(err)
	}

	third, err := LoadWithTracker(dir, st, StandardDayDefaults(), nil)
	if err != nil {
		t.Fatalf("third load: %v", err)
	}
	if third.Imported != 1 || third.Unchanged != 1 {
		t.Errorf("third = %+v", third)
	}

	trip, err := st.GetTrip(origID)
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if trip.Name != "Croatia v2" || trip.Budget.TotalBudget != 999 {
		t.Errorf("reimported trip = %+v", trip)
	}
	if n, _ := st.TripCount(); n != 2 {
		t.Errorf("TripCount = %d, want 2", n)
	}
}

func TestLoadWithTracker_AppliesDayDefaults(t *testing.T) {
	dir := t.TempDir()
	writeTripFile(t, dir, "croatia.json", snapshotA)

	st, err := store.Open(filepath.Join(t.TempDir(), "trips.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = st.Close() }()

	defaults := DayDefaults{TransportType: model.TransportTrain, AccommodationType: model.AccommodationCamping}
	res, err := LoadWithTracker(dir, st, defaults, nil)
	if err != nil {
		t.Fatalf("LoadWithTracker: %v", err)
	}
	if len(res.Trips) != 1 {
		t.Fatalf("trips = %d, want 1", len(res.Trips))
	}

	days := res.Trips[0].Days
	if days[0].TransportType != model.TransportTrain || days[0].AccommodationType != model.AccommodationNightBus {
		t.Errorf("day 1 = %+v", days[0])
	}
	if days[1].TransportType != model.TransportTrain || days[1].AccommodationType != model.AccommodationCamping {
		t.Errorf("day 2 = %+v", days[1])
	}
}
