package pipeline

import (
	"strings"

	"github.com/theirongolddev/backpack/internal/model"
)

// Completion weights for the continuous day score.
const (
	requiredWeight = 0.7
	optionalWeight = 0.3

	// Days with at least this many required fields count as substantially complete.
	substantialRequired = 3
)

// filled treats whitespace-only text as empty.
func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

func countFilled(fields ...bool) int {
	n := 0
	for _, f := range fields {
		if f {
			n++
		}
	}
	return n
}

// requiredFilled counts location, departure, destination and accommodation type.
func requiredFilled(d model.DayRecord) int {
	return countFilled(
		filled(d.Location),
		filled(d.TransportFrom),
		filled(d.TransportTo),
		filled(string(d.AccommodationType)),
	)
}

// optionalFilled counts date, departure time, accommodation name and notes.
func optionalFilled(d model.DayRecord) int {
	return countFilled(
		d.Date.IsSet(),
		filled(d.TransportTime),
		filled(d.AccommodationName),
		filled(d.Notes),
	)
}

// DayCompletionScore is 0.7 * required fraction + 0.3 * optional fraction, in [0, 1].
func DayCompletionScore(d model.DayRecord) float64 {
	required := float64(requiredFilled(d)) / 4
	optional := float64(optionalFilled(d)) / 4
	return requiredWeight*required + optionalWeight*optional
}

// IsDaySubstantiallyComplete reports whether at least 3 of the 4 required fields are set.
func IsDaySubstantiallyComplete(d model.DayRecord) bool {
	return requiredFilled(d) >= substantialRequired
}

// TripCompletionRate is the fraction of substantially complete days, or 0 with no days.
// It counts passing days; it is not the mean of DayCompletionScore.
func TripCompletionRate(days []model.DayRecord) float64 {
	if len(days) == 0 {
		return 0
	}
	complete := 0
	for _, d := range days {
		if IsDaySubstantiallyComplete(d) {
			complete++
		}
	}
	return float64(complete) / float64(len(days))
}
