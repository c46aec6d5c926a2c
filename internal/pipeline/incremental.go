package pipeline

import (
	"fmt"
	"os"

	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/source"
	"github.com/theirongolddev/backpack/internal/store"
)

// TrackedLoadResult extends LoadResult with file tracker metadata.
type TrackedLoadResult struct {
	LoadResult
	Unchanged int
	Imported  int
}

// LoadWithTracker discovers snapshots, diffs them against the store's file
// tracker, and imports only new or changed files. A changed file updates the
// trip it was first imported as. Days missing a transport or accommodation
// type get defaults. Trips holds only the imported trips.
func LoadWithTracker(dir string, st *store.Store, defaults DayDefaults, progressFn ProgressFunc) (*TrackedLoadResult, error) {
	files, err := source.ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &TrackedLoadResult{LoadResult: LoadResult{TotalFiles: len(files)}}
	if len(files) == 0 {
		return result, nil
	}

	tracked, err := st.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading file tracker: %w", err)
	}

	type fileStat struct {
		mtimeNs int64
		size    int64
	}

	// Diff: partition into changed and unchanged
	var toImport []source.DiscoveredFile
	var stats []fileStat

	for _, f := range files {
		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}
		fs := fileStat{mtimeNs: info.ModTime().UnixNano(), size: info.Size()}

		prev, ok := tracked[f.Path]
		if ok && prev.TripID != "" && prev.MtimeNs == fs.mtimeNs && prev.SizeBytes == fs.size {
			result.Unchanged++
			continue
		}
		toImport = append(toImport, f)
		stats = append(stats, fs)
	}

	if progressFn != nil && result.Unchanged > 0 {
		progressFn(result.Unchanged, result.TotalFiles)
	}
	if len(toImport) == 0 {
		return result, nil
	}

	for i, pr := range parseAll(toImport, defaults, result.Unchanged, result.TotalFiles, progressFn) {
		if pr.Err != nil {
			result.FileErrors++
			result.Errors = append(result.Errors, pr.Err)
			continue
		}
		result.ParsedFiles++
		result.ParseErrors += pr.ParseErrors

		trip := pr.Trip
		if prev, ok := tracked[toImport[i].Path]; ok && prev.TripID != "" {
			trip.ID = prev.TripID
			keepCreatedAt(st, &trip)
		}
		if err := st.ImportTrip(&trip, stats[i].mtimeNs, stats[i].size); err != nil {
			return nil, fmt.Errorf("importing %s: %w", toImport[i].Path, err)
		}
		result.Imported++
		result.Trips = append(result.Trips, trip)
	}

	return result, nil
}

// keepCreatedAt carries over the creation time of a previously imported trip.
func keepCreatedAt(st *store.Store, t *model.Trip) {
	if existing, err := st.GetTrip(t.ID); err == nil {
		t.CreatedAt = existing.CreatedAt
	}
}
