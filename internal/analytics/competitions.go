package analytics

import (
	"math"
	"sort"

	"github.com/maxviazov/federation-analytics/internal/model"
)

// DefaultTopCategories bounds PopularCategories.
const DefaultTopCategories = 10

// ComputeCompetitionStats builds the competition section from all competitions
// and all registrations, regardless of the report period.
func ComputeCompetitionStats(competitions []model.CompetitionRecord, registrations []model.RegistrationRecord, topN int) model.CompetitionStats {
	if topN <= 0 {
		topN = DefaultTopCategories
	}
	stats := model.CompetitionStats{
		TotalCompetitions:  len(competitions),
		TotalRegistrations: len(registrations),
	}

	byMonth := make(map[string]int)
	for _, c := range competitions {
		switch c.Status {
		case model.CompetitionRegistrationOpen, model.CompetitionPublished:
			stats.ActiveCompetitions++
		case model.CompetitionCompleted:
			stats.CompletedCompetitions++
		}
		byMonth[c.CreatedAt.UTC().Format(monthLayout)]++
	}
	stats.AverageParticipants = roundDiv(stats.TotalRegistrations, stats.TotalCompetitions)

	stats.CompetitionsByMonth = make([]model.MonthCount, 0, len(byMonth))
	for m, n := range byMonth {
		stats.CompetitionsByMonth = append(stats.CompetitionsByMonth, model.MonthCount{Month: m, Count: n})
	}
	sort.Slice(stats.CompetitionsByMonth, func(i, j int) bool {
		return stats.CompetitionsByMonth[i].Month < stats.CompetitionsByMonth[j].Month
	})

	stats.PopularCategories = topCategories(registrations, topN)
	return stats
}

// topCategories ranks categories by registration count, descending, with the
// label as tie-break.
func topCategories(registrations []model.RegistrationRecord, n int) []model.CategoryCount {
	counts := make(map[string]int)
	for _, r := range registrations {
		counts[r.Category]++
	}
	out := make([]model.CategoryCount, 0, len(counts))
	for c, k := range counts {
		out = append(out, model.CategoryCount{Category: c, Count: k})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// roundDiv is round(a/b), or 0 when b is 0.
func roundDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return int(math.Round(float64(a) / float64(b)))
}
