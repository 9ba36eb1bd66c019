package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/maxviazov/federation-analytics/internal/model"
)

// Export renders report in the given format. PDF is not implemented and
// fails with *UnsupportedFormatError rather than returning empty output.
func Export(report model.Report, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return exportJSON(report)
	case FormatCSV:
		return exportCSV(report)
	case FormatYAML:
		return exportYAML(report)
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}
}

func exportJSON(report model.Report) (string, error) {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report json: %w", err)
	}
	return string(b), nil
}

func exportYAML(report model.Report) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return "", fmt.Errorf("marshal report yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("flush report yaml: %w", err)
	}
	return buf.String(), nil
}

// exportCSV writes the headline figures only; monthly series and category
// rankings are left to the structured formats.
func exportCSV(report model.Report) (string, error) {
	u, c, f := report.Users, report.Competitions, report.Financial
	records := [][]string{
		{"Report Date", report.ReportDate.Format(time.RFC3339)},
		{"Period Start", report.Period.Start.Format(time.RFC3339)},
		{"Period End", report.Period.End.Format(time.RFC3339)},
		{},
		{"User Statistics"},
		{"Total Users", itoa(u.TotalUsers)},
		{"New Users", itoa(u.NewUsers)},
		{"Active Users", itoa(u.ActiveUsers)},
		{},
		{"Competition Statistics"},
		{"Total Competitions", itoa(c.TotalCompetitions)},
		{"Active Competitions", itoa(c.ActiveCompetitions)},
		{"Completed Competitions", itoa(c.CompletedCompetitions)},
		{"Total Registrations", itoa(c.TotalRegistrations)},
		{"Average Participants", itoa(c.AverageParticipants)},
		{},
		{"Financial Statistics"},
		{"Total Revenue", f.TotalRevenue.String()},
		{"Monthly Revenue", f.MonthlyRevenue.String()},
		{"Successful Payments", itoa(f.PaymentSuccess)},
		{"Pending Payments", itoa(f.PaymentPending)},
		{"Failed Payments", itoa(f.PaymentFailed)},
		{"Average Registration Fee", f.AverageRegistrationFee.String()},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("write report csv: %w", err)
	}
	return buf.String(), nil
}

func itoa(n int) string { return strconv.Itoa(n) }
