package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/source"
	"github.com/theirongolddev/backpack/internal/store"
)

func syntheticState(days int) model.TripState {
	state := model.TripState{Budget: model.BudgetConfiguration{TotalBudget: float64(days) * 40}}
	for i := 0; i < days; i++ {
		state.Days = append(state.Days, model.DayRecord{
			DayNumber:         i + 1,
			Location:          fmt.Sprintf("Stop %d", i),
			TransportType:     model.TransportTypes[i%len(model.TransportTypes)],
			TransportFrom:     "A",
			TransportTo:       "B",
			TransportCost:     float64(i % 30),
			AccommodationType: model.AccommodationTypes[i%len(model.AccommodationTypes)],
			AccommodationCost: float64(i % 25),
		})
	}
	for _, name := range model.DefaultCategoryNames {
		state.Budget.Categories = append(state.Budget.Categories, model.Category{Name: name, Planned: 50, Spent: 20})
	}
	return state
}

func writeSyntheticDir(b *testing.B, files, days int) string {
	b.Helper()
	dir := b.TempDir()
	for i := 0; i < files; i++ {
		trip := model.Trip{TripInfo: model.TripInfo{Name: fmt.Sprintf("Trip %d", i)}, TripState: syntheticState(days)}
		data, err := json.Marshal(source.FromTrip(trip, time.Now()))
		if err != nil {
			b.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("trip_%03d.json", i)), data, 0o600); err != nil {
			b.Fatal(err)
		}
	}
	return dir
}

func BenchmarkAggregate(b *testing.B) {
	state := syntheticState(365)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Aggregate(state)
	}
}

func BenchmarkLoad(b *testing.B) {
	dir := writeSyntheticDir(b, 64, 30)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result, err := Load(dir, nil)
		if err != nil {
			b.Fatal(err)
		}
		_ = result
	}
}

func BenchmarkParseFile(b *testing.B) {
	dir := writeSyntheticDir(b, 1, 365)
	files, err := source.ScanDir(dir)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := source.ParseFile(files[0])
		if result.Err != nil {
			b.Fatal(result.Err)
		}
	}
}

func BenchmarkLoadWithTracker(b *testing.B) {
	dir := writeSyntheticDir(b, 64, 30)
	st, err := store.Open(filepath.Join(b.TempDir(), "trips.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = st.Close() }()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr, err := LoadWithTracker(dir, st, StandardDayDefaults(), nil)
		if err != nil {
			b.Fatal(err)
		}
		_ = tr
	}
}
