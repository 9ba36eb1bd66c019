package analytics

import (
	"strings"

	"github.com/maxviazov/federation-analytics/internal/model"
)

// ComputeClubStats builds the club section. Memberships pointing at clubs
// outside the given row set are ignored.
func ComputeClubStats(clubs []model.ClubRecord, memberships []model.AthleteMembershipRecord) model.ClubStats {
	stats := model.ClubStats{
		TotalClubs:  len(clubs),
		ClubsByCity: make(map[string]int),
	}

	known := make(map[int64]struct{}, len(clubs))
	for _, c := range clubs {
		// placeholder until clubs carry a real activity signal
		if !c.CreatedAt.IsZero() {
			stats.ActiveClubs++
		}
		if city := strings.TrimSpace(c.City); city != "" {
			stats.ClubsByCity[city]++
		}
		known[c.ID] = struct{}{}
	}

	total := 0
	for _, m := range memberships {
		if _, ok := known[m.ClubID]; ok {
			total++
		}
	}
	stats.AverageClubSize = roundDiv(total, len(clubs))
	return stats
}
