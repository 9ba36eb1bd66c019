package export_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/maxviazov/federation-analytics/internal/export"
	"github.com/maxviazov/federation-analytics/internal/model"
)

func sampleReport() model.Report {
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)
	revenue := decimal.NewFromInt(600)
	return model.Report{
		ReportDate: now,
		Period:     model.AnalyticsPeriod{Start: now.AddDate(0, 0, -7), End: now},
		Summary: model.ReportSummary{
			TotalUsers: 12, NewUsers: 3, TotalCompetitions: 5, TotalRevenue: revenue, TotalClubs: 2,
		},
		Users: model.UserStats{
			TotalUsers: 12, NewUsers: 3, ActiveUsers: 7,
			UsersByRole: map[model.Role]int{model.RoleAthlete: 9, model.RoleCoach: 2, model.RoleJudge: 1, model.RoleClubOwner: 0},
			UserGrowth:  []model.GrowthPoint{{Date: "2024-06-18", Count: 2, Role: model.RoleAthlete}},
		},
		Competitions: model.CompetitionStats{
			TotalCompetitions: 5, ActiveCompetitions: 2, CompletedCompetitions: 1,
			TotalRegistrations: 10, AverageParticipants: 2,
			CompetitionsByMonth: []model.MonthCount{{Month: "2024-05", Count: 3}, {Month: "2024-06", Count: 2}},
			PopularCategories:   []model.CategoryCount{{Category: "kata", Count: 6}, {Category: "kumite", Count: 4}},
		},
		Financial: model.FinancialStats{
			TotalRevenue: revenue, MonthlyRevenue: revenue, PaymentSuccess: 4, PaymentPending: 1,
			AverageRegistrationFee: decimal.NewFromInt(150),
			RevenueByMonth:         []model.MonthRevenue{{Month: "2024-06", Revenue: revenue}},
		},
		Clubs: model.ClubStats{
			TotalClubs: 2, ActiveClubs: 2, ClubsByCity: map[string]int{"Sofia": 2}, AverageClubSize: 4,
		},
		SystemHealth: model.SystemHealth{
			DatabaseStatus: model.HealthHealthy, EmailService: model.HealthHealthy, AuthService: model.HealthHealthy,
			Uptime: "2h0m0s", ResponseTimeMs: 3,
		},
	}
}

func TestExport_JSONRoundTrip(t *testing.T) {
	rep := sampleReport()

	out, err := export.Export(rep, export.FormatJSON)
	require.NoError(t, err)

	var back model.Report
	require.NoError(t, json.Unmarshal([]byte(out), &back))

	again, err := export.Export(back, export.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, out, again)

	assert.Equal(t, rep.ReportDate, back.ReportDate)
	assert.Equal(t, rep.Users.UsersByRole, back.Users.UsersByRole)
	assert.Equal(t, rep.Competitions.CompetitionsByMonth, back.Competitions.CompetitionsByMonth)
	assert.True(t, rep.Financial.TotalRevenue.Equal(back.Financial.TotalRevenue))
	assert.Equal(t, rep.SystemHealth, back.SystemHealth)
}

func TestExport_CSVLayout(t *testing.T) {
	out, err := export.Export(sampleReport(), export.FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "Report Date,2024-06-20T12:00:00Z", lines[0])
	assert.Contains(t, lines, "User Statistics")
	assert.Contains(t, lines, "Competition Statistics")
	assert.Contains(t, lines, "Financial Statistics")
	assert.Contains(t, lines, "Total Users,12")
	assert.Contains(t, lines, "Average Participants,2")
	assert.Contains(t, lines, "Total Revenue,600")
	assert.Contains(t, lines, "Average Registration Fee,150")
	assert.Contains(t, lines, "")

	// series and rankings belong to the structured formats only
	assert.NotContains(t, out, "kata")
	assert.NotContains(t, out, "2024-05")
}

func TestExport_YAML(t *testing.T) {
	out, err := export.Export(sampleReport(), export.FormatYAML)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	summary, ok := doc["summary"].(map[string]any)
	require.True(t, ok, "summary section missing: %s", out)
	assert.Equal(t, 12, summary["total_users"])
	assert.Equal(t, "600", summary["total_revenue"])
}

func TestExport_PDFUnsupported(t *testing.T) {
	out, err := export.Export(sampleReport(), export.FormatPDF)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)

	var ufe *export.UnsupportedFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "pdf", ufe.Format)
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    export.Format
		wantErr bool
	}{
		{"json", export.FormatJSON, false},
		{" CSV ", export.FormatCSV, false},
		{"yaml", export.FormatYAML, false},
		{"pdf", export.FormatPDF, false},
		{"xlsx", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := export.ParseFormat(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
