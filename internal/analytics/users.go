package analytics

import (
	"sort"
	"time"

	"github.com/maxviazov/federation-analytics/internal/model"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// DefaultActiveWindow is how far back a last activity still counts as active.
const DefaultActiveWindow = 30 * 24 * time.Hour

// ComputeUserStats builds the user section. Totals and growth cover the whole
// row set; NewUsers is limited to the period; ActiveUsers looks back
// activeWindow from now regardless of the period.
func ComputeUserStats(users []model.UserRecord, period model.AnalyticsPeriod, now time.Time, activeWindow time.Duration) model.UserStats {
	if activeWindow <= 0 {
		activeWindow = DefaultActiveWindow
	}
	activeSince := now.Add(-activeWindow)

	stats := model.UserStats{
		TotalUsers:  len(users),
		UsersByRole: make(map[model.Role]int, len(model.BreakdownRoles)),
		UserGrowth:  make([]model.GrowthPoint, 0),
	}
	for _, r := range model.BreakdownRoles {
		stats.UsersByRole[r] = 0
	}

	type growthKey struct {
		day  string
		role model.Role
	}
	growth := make(map[growthKey]int)

	for _, u := range users {
		if period.Contains(u.CreatedAt) {
			stats.NewUsers++
		}
		if u.LastActivityAt != nil && !u.LastActivityAt.Before(activeSince) {
			stats.ActiveUsers++
		}
		// admin and unrecognised roles stay out of the breakdown
		if _, ok := stats.UsersByRole[u.Role]; ok {
			stats.UsersByRole[u.Role]++
		}
		growth[growthKey{day: u.CreatedAt.UTC().Format(dayLayout), role: u.Role}]++
	}

	for k, n := range growth {
		stats.UserGrowth = append(stats.UserGrowth, model.GrowthPoint{Date: k.day, Count: n, Role: k.role})
	}
	sort.Slice(stats.UserGrowth, func(i, j int) bool {
		a, b := stats.UserGrowth[i], stats.UserGrowth[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.Role < b.Role
	})
	return stats
}
