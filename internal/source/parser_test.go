package source

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/backpack/internal/model"
)

// writeSnapshot creates a temp snapshot file and returns a DiscoveredFile for it.
func writeSnapshot(t *testing.T, body string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "trip_data.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return newDiscovered(path)
}

const legacySnapshot = `{
  "trip_data": [
    {"day": 1, "date": "2025-06-01", "location": "Edinburgh", "transport_type": "Train",
     "transport_from": "London", "transport_to": "Edinburgh", "transport_time": "09:30",
     "transport_cost": 45.5, "accommodation_type": "Hostel", "accommodation_name": "Castle Rock",
     "accommodation_cost": 22.0, "notes": "Arthur's Seat"},
    {"day": 2, "date": "", "location": "Inverness", "transport_type": "Bus",
     "transport_from": "Edinburgh", "transport_to": "Inverness", "transport_time": "",
     "transport_cost": 18.0, "accommodation_type": "None (transit day)", "accommodation_name": "",
     "accommodation_cost": 0.0, "notes": ""}
  ],
  "budget_data": {"total_budget": 500.0, "spent": 0.0,
                  "categories": {"Food & Drink": 120, "Activities": {"planned": 40, "spent": 15}, "Insurance": 0}},
  "trip_info": {"name": "Highlands", "start_date": "2025-06-01", "end_date": "2025-06-05",
                "destinations": "Edinburgh, Inverness", "travel_style": "🎒 Budget Backpacker (£25-40/day)",
                "group_size": 2},
  "last_saved": "2025-05-20T18:04:11.123456",
  "version": "1.0"
}`

func TestParseFile_Legacy(t *testing.T) {
	res := ParseFile(writeSnapshot(t, legacySnapshot))
	if res.Err != nil {
		t.Fatalf("ParseFile: %v", res.Err)
	}
	if res.ParseErrors != 0 {
		t.Errorf("ParseErrors = %d, want 0", res.ParseErrors)
	}

	trip := res.Trip
	if trip.Name != "Highlands" || trip.GroupSize != 2 {
		t.Errorf("info = %+v", trip.TripInfo)
	}
	if trip.StartDate.String() != "2025-06-01" || trip.EndDate.String() != "2025-06-05" {
		t.Errorf("dates = %s..%s", trip.StartDate, trip.EndDate)
	}
	if filepath.Base(trip.SourcePath) != "trip_data.json" {
		t.Errorf("SourcePath = %q", trip.SourcePath)
	}

	if len(trip.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(trip.Days))
	}
	d := trip.Days[0]
	if d.DayNumber != 1 || d.TransportCost != 45.5 || d.AccommodationName != "Castle Rock" {
		t.Errorf("day 1 = %+v", d)
	}
	if trip.Days[1].Date.IsSet() {
		t.Error("empty date should stay unset")
	}
	if trip.Days[1].AccommodationType != model.AccommodationNone {
		t.Errorf("day 2 accommodation = %q", trip.Days[1].AccommodationType)
	}

	cats := trip.Budget.Categories
	wantNames := []string{"Food & Drink", "Activities", "Insurance"}
	if len(cats) != len(wantNames) {
		t.Fatalf("categories = %+v", cats)
	}
	for i, name := range wantNames {
		if cats[i].Name != name {
			t.Errorf("category[%d] = %q, want %q (declared order)", i, cats[i].Name, name)
		}
	}
	if cats[0].Planned != 120 || cats[1].Planned != 40 || cats[1].Spent != 15 {
		t.Errorf("category amounts = %+v", cats)
	}

	if res.LastSaved.IsZero() || res.LastSaved.Year() != 2025 {
		t.Errorf("LastSaved = %v", res.LastSaved)
	}
}

func TestParseFile_DayNumberKeyAndArrayCategories(t *testing.T) {
	res := ParseFile(writeSnapshot(t, `{
		"trip_data": [{"day_number": 7, "location": "Split"}, {"location": "Hvar"}],
		"budget_data": {"total_budget": 100, "categories": [{"name": "Food", "planned": 30, "spent": 5}]},
		"trip_info": {}
	}`))
	if res.Err != nil {
		t.Fatalf("ParseFile: %v", res.Err)
	}
	if res.Trip.Days[0].DayNumber != 7 || res.Trip.Days[1].DayNumber != 2 {
		t.Errorf("day numbers = %d, %d", res.Trip.Days[0].DayNumber, res.Trip.Days[1].DayNumber)
	}
	if res.Trip.Name != "trip_data" {
		t.Errorf("Name = %q, want file name fallback", res.Trip.Name)
	}
	if len(res.Trip.Budget.Categories) != 1 || res.Trip.Budget.Categories[0].Spent != 5 {
		t.Errorf("categories = %+v", res.Trip.Budget.Categories)
	}
}

func TestParseFile_TripWideSpent(t *testing.T) {
	res := ParseFile(writeSnapshot(t, `{
		"trip_data": [],
		"budget_data": {"total_budget": 100, "spent": 42, "categories": {"Food": 10}},
		"trip_info": {"name": "x", "start_date": null}
	}`))
	if res.Err != nil {
		t.Fatalf("ParseFile: %v", res.Err)
	}
	cats := res.Trip.Budget.Categories
	if len(cats) != 2 || cats[1].Name != "Miscellaneous" || cats[1].Spent != 42 {
		t.Errorf("categories = %+v", cats)
	}
	if res.Trip.StartDate.IsSet() {
		t.Error("null start date should be unset")
	}
}

func TestParseFile_BadDateCounted(t *testing.T) {
	res := ParseFile(writeSnapshot(t, `{
		"trip_data": [{"day": 1, "date": "next tuesday"}],
		"budget_data": {}, "trip_info": {"start_date": "2025-13-45"}
	}`))
	if res.Err != nil {
		t.Fatalf("ParseFile: %v", res.Err)
	}
	if res.ParseErrors != 2 {
		t.Errorf("ParseErrors = %d, want 2", res.ParseErrors)
	}
}

func TestParseFile_Malformed(t *testing.T) {
	res := ParseFile(writeSnapshot(t, `{"trip_data": [`))
	if res.Err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	res = ParseFile(DiscoveredFile{Path: filepath.Join(t.TempDir(), "missing.json")})
	if res.Err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFromTrip_RoundTrip(t *testing.T) {
	orig := ParseFile(writeSnapshot(t, legacySnapshot)).Trip

	raw := FromTrip(orig, time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local))
	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back := ParseBytes(data)
	if back.Err != nil {
		t.Fatalf("ParseBytes: %v", back.Err)
	}

	if back.Trip.Name != orig.Name || len(back.Trip.Days) != len(orig.Days) {
		t.Errorf("round trip = %+v", back.Trip)
	}
	for i, c := range orig.Budget.Categories {
		if back.Trip.Budget.Categories[i] != c {
			t.Errorf("category[%d] = %+v, want %+v", i, back.Trip.Budget.Categories[i], c)
		}
	}
	if raw.Version != SnapshotVersion {
		t.Errorf("Version = %q", raw.Version)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"trip_data.json",
		"trip_data_backup_20250601_120000.json",
		"notes.txt",
		filepath.Join("archive", "andes.json"),
		filepath.Join(".git", "config.json"),
	} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	names := map[string]bool{}
	for _, f := range files {
		names[f.Name] = true
	}
	if len(files) != 2 || !names["trip_data"] || !names["andes"] {
		t.Errorf("ScanDir = %+v", files)
	}

	missing, err := ScanDir(filepath.Join(dir, "nope"))
	if err != nil || missing != nil {
		t.Errorf("ScanDir(missing) = %v, %v", missing, err)
	}

	single, err := ScanDir(filepath.Join(dir, "trip_data.json"))
	if err != nil || len(single) != 1 {
		t.Errorf("ScanDir(file) = %v, %v", single, err)
	}
}
