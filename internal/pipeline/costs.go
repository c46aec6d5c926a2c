package pipeline

import (
	"strings"

	"github.com/theirongolddev/backpack/internal/model"
)

// AggregateTypes counts days and sums costs per transport and accommodation type.
// Types appear in first-seen order. Transport costs are attributed to the day's
// transport type and accommodation costs to its accommodation type.
func AggregateTypes(days []model.DayRecord) model.TypeStats {
	var stats model.TypeStats

	transportIdx := make(map[model.TransportType]int)
	accomIdx := make(map[model.AccommodationType]int)

	for _, d := range days {
		if d.TransportType != "" {
			i, ok := transportIdx[d.TransportType]
			if !ok {
				i = len(stats.Transport)
				transportIdx[d.TransportType] = i
				stats.Transport = append(stats.Transport, model.TypeCount{
					Name:  string(d.TransportType),
					Emoji: d.TransportType.Emoji(),
				})
			}
			stats.Transport[i].Days++
			stats.Transport[i].Cost += d.TransportCost
		}

		if d.AccommodationType != "" {
			i, ok := accomIdx[d.AccommodationType]
			if !ok {
				i = len(stats.Accommodation)
				accomIdx[d.AccommodationType] = i
				stats.Accommodation = append(stats.Accommodation, model.TypeCount{
					Name:  string(d.AccommodationType),
					Emoji: d.AccommodationType.Emoji(),
				})
			}
			stats.Accommodation[i].Days++
			stats.Accommodation[i].Cost += d.AccommodationCost
		}

		if strings.TrimSpace(d.Location) == "" {
			stats.MissingLocations++
		}
		if strings.TrimSpace(d.TransportFrom) == "" {
			stats.MissingTransport++
		}
	}

	return stats
}

// TransportShare is the fraction of the planned total spent on transport.
func TransportShare(days []model.DayRecord, budget model.BudgetConfiguration) float64 {
	total := TotalPlannedCost(days, budget)
	if total <= 0 {
		return 0
	}
	return TotalTransportCost(days) / total
}
