package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maxviazov/federation-analytics/internal/model"
)

// ComputeFinancialStats builds the payment section from registrations already
// restricted to the report period. MonthlyRevenue always refers to the
// calendar month of now, not to the period.
func ComputeFinancialStats(registrations []model.RegistrationRecord, now time.Time) model.FinancialStats {
	stats := model.FinancialStats{
		TotalRevenue:           decimal.Zero,
		MonthlyRevenue:         decimal.Zero,
		AverageRegistrationFee: decimal.Zero,
	}

	byMonth := make(map[string]decimal.Decimal)
	for _, r := range registrations {
		switch r.PaymentStatus {
		case model.PaymentPaid:
			stats.TotalRevenue = stats.TotalRevenue.Add(r.Fee)
			stats.PaymentSuccess++
			m := r.CreatedAt.UTC().Format(monthLayout)
			byMonth[m] = byMonth[m].Add(r.Fee)
		case model.PaymentPending:
			stats.PaymentPending++
		case model.PaymentFailed:
			stats.PaymentFailed++
		}
	}

	stats.RevenueByMonth = make([]model.MonthRevenue, 0, len(byMonth))
	for m, v := range byMonth {
		stats.RevenueByMonth = append(stats.RevenueByMonth, model.MonthRevenue{Month: m, Revenue: v})
	}
	sort.Slice(stats.RevenueByMonth, func(i, j int) bool {
		return stats.RevenueByMonth[i].Month < stats.RevenueByMonth[j].Month
	})

	if v, ok := byMonth[now.UTC().Format(monthLayout)]; ok {
		stats.MonthlyRevenue = v
	}
	if stats.PaymentSuccess > 0 {
		stats.AverageRegistrationFee = stats.TotalRevenue.
			Div(decimal.NewFromInt(int64(stats.PaymentSuccess))).
			Round(0)
	}
	return stats
}
