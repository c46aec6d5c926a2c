package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/backpack/internal/model"
	"github.com/theirongolddev/backpack/internal/source"
)

// LoadResult holds the output of the snapshot loading pipeline.
type LoadResult struct {
	Trips       []model.Trip
	TotalFiles  int
	ParsedFiles int
	ParseErrors int
	FileErrors  int
	Errors      []error
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers and parses all trip snapshots under dir.
// It uses a bounded worker pool for parallel parsing.
func Load(dir string, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &LoadResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	for _, pr := range parseAll(files, StandardDayDefaults(), 0, len(files), progressFn) {
		if pr.Err != nil {
			result.FileErrors++
			result.Errors = append(result.Errors, pr.Err)
			continue
		}
		result.ParsedFiles++
		result.ParseErrors += pr.ParseErrors
		result.Trips = append(result.Trips, pr.Trip)
	}

	return result, nil
}

// parseAll parses files in parallel and returns results in input order with
// imported days normalized against defaults. offset and total shape progress
// reporting.
func parseAll(files []source.DiscoveredFile, defaults DayDefaults, offset, total int, progressFn ProgressFunc) []source.ParseResult {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]source.ParseResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				pr := source.ParseFile(files[idx])
				if pr.Err == nil {
					normalizeImported(&pr.Trip, defaults)
				}
				results[idx] = pr
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n)+offset, total)
				}
			}
		}()
	}

	wg.Wait()
	return results
}

// normalizeImported applies day defaults and renumbers days by position.
func normalizeImported(t *model.Trip, defaults DayDefaults) {
	defaults = defaults.orStandard()
	for i := range t.Days {
		t.Days[i] = NormalizeDay(t.Days[i], defaults)
	}
	Renumber(t.Days)
	if t.GroupSize < 1 {
		t.GroupSize = 1
	}
}
