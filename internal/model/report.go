package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsPeriod is a half-open interval [Start, End).
type AnalyticsPeriod struct {
	Start time.Time `json:"start_date" yaml:"start_date"`
	End   time.Time `json:"end_date" yaml:"end_date"`
}

// Contains reports whether t falls inside the period.
func (p AnalyticsPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// GrowthPoint is the number of accounts of one role created on one day.
type GrowthPoint struct {
	Date  string `json:"date" yaml:"date"` // YYYY-MM-DD
	Count int    `json:"count" yaml:"count"`
	Role  Role   `json:"role" yaml:"role"`
}

// UserStats holds the user section of a report.
type UserStats struct {
	TotalUsers  int           `json:"total_users" yaml:"total_users"`
	NewUsers    int           `json:"new_users" yaml:"new_users"`
	ActiveUsers int           `json:"active_users" yaml:"active_users"`
	UsersByRole map[Role]int  `json:"users_by_role" yaml:"users_by_role"`
	UserGrowth  []GrowthPoint `json:"user_growth" yaml:"user_growth"`
}

// MonthCount is a count keyed by YYYY-MM.
type MonthCount struct {
	Month string `json:"month" yaml:"month"`
	Count int    `json:"count" yaml:"count"`
}

// CategoryCount is the number of registrations in one category.
type CategoryCount struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// CompetitionStats holds the competition section of a report.
type CompetitionStats struct {
	TotalCompetitions     int             `json:"total_competitions" yaml:"total_competitions"`
	ActiveCompetitions    int             `json:"active_competitions" yaml:"active_competitions"`
	CompletedCompetitions int             `json:"completed_competitions" yaml:"completed_competitions"`
	TotalRegistrations    int             `json:"total_registrations" yaml:"total_registrations"`
	AverageParticipants   int             `json:"average_participants" yaml:"average_participants"`
	CompetitionsByMonth   []MonthCount    `json:"competitions_by_month" yaml:"competitions_by_month"`
	PopularCategories     []CategoryCount `json:"popular_categories" yaml:"popular_categories"`
}

// MonthRevenue is paid revenue keyed by YYYY-MM.
type MonthRevenue struct {
	Month   string          `json:"month" yaml:"month"`
	Revenue decimal.Decimal `json:"revenue" yaml:"revenue"`
}

// FinancialStats holds the payment section of a report.
type FinancialStats struct {
	TotalRevenue           decimal.Decimal `json:"total_revenue" yaml:"total_revenue"`
	MonthlyRevenue         decimal.Decimal `json:"monthly_revenue" yaml:"monthly_revenue"`
	PaymentSuccess         int             `json:"payment_success" yaml:"payment_success"`
	PaymentPending         int             `json:"payment_pending" yaml:"payment_pending"`
	PaymentFailed          int             `json:"payment_failed" yaml:"payment_failed"`
	AverageRegistrationFee decimal.Decimal `json:"average_registration_fee" yaml:"average_registration_fee"`
	RevenueByMonth         []MonthRevenue  `json:"revenue_by_month" yaml:"revenue_by_month"`
}

// ClubStats holds the club section of a report.
type ClubStats struct {
	TotalClubs      int            `json:"total_clubs" yaml:"total_clubs"`
	ActiveClubs     int            `json:"active_clubs" yaml:"active_clubs"`
	ClubsByCity     map[string]int `json:"clubs_by_city" yaml:"clubs_by_city"`
	AverageClubSize int            `json:"average_club_size" yaml:"average_club_size"`
}

// HealthStatus is the state of one dependency.
type HealthStatus string

const (
	HealthHealthy HealthStatus = "healthy"
	HealthWarning HealthStatus = "warning"
	HealthError   HealthStatus = "error"
)

// SystemHealth is a point-in-time snapshot of the engine's dependencies.
type SystemHealth struct {
	DatabaseStatus HealthStatus `json:"database_status" yaml:"database_status"`
	EmailService   HealthStatus `json:"email_service" yaml:"email_service"`
	AuthService    HealthStatus `json:"auth_service" yaml:"auth_service"`
	Uptime         string       `json:"uptime" yaml:"uptime"`
	ResponseTimeMs int64        `json:"response_time_ms" yaml:"response_time_ms"`
}

// ReportSummary repeats the headline numbers of a report.
type ReportSummary struct {
	TotalUsers        int             `json:"total_users" yaml:"total_users"`
	NewUsers          int             `json:"new_users" yaml:"new_users"`
	TotalCompetitions int             `json:"total_competitions" yaml:"total_competitions"`
	TotalRevenue      decimal.Decimal `json:"total_revenue" yaml:"total_revenue"`
	TotalClubs        int             `json:"total_clubs" yaml:"total_clubs"`
}

// Report is the merged output of one analytics run.
type Report struct {
	ReportDate   time.Time        `json:"report_date" yaml:"report_date"`
	Period       AnalyticsPeriod  `json:"period" yaml:"period"`
	Summary      ReportSummary    `json:"summary" yaml:"summary"`
	Users        UserStats        `json:"users" yaml:"users"`
	Competitions CompetitionStats `json:"competitions" yaml:"competitions"`
	Financial    FinancialStats   `json:"financial" yaml:"financial"`
	Clubs        ClubStats        `json:"clubs" yaml:"clubs"`
	SystemHealth SystemHealth     `json:"system_health" yaml:"system_health"`
}
