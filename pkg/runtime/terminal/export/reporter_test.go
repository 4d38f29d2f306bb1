package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
)

func TestReporter_Handle(t *testing.T) {
	buf := &bytes.Buffer{}
	report := &domain.Report{
		Title: "Campus Energy-Use Dashboard - Executive Summary",
		Period: domain.TimePeriod{
			Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			Duration: 3,
		},
		HasPeriod:   true,
		TotalAmount: 1299.5,
		Unit:        "kWh",
		GeneratedAt: time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC),
		RunID:       "abc-123",
		Sections: []domain.ReportSection{
			{
				Title: "Campus Overview",
				Details: []domain.ReportDetail{
					{Name: "Total Campus Consumption", Value: "1,299.50", Unit: "kWh"},
					{Name: "Number of Buildings Analyzed", Value: 3},
				},
			},
			{
				Title: "Key Insights & Recommendations",
				Notes: []string{"Shift peak load.", "Upgrade equipment."},
			},
		},
	}

	err := NewReporter(buf).Handle(report)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "CAMPUS ENERGY-USE DASHBOARD - EXECUTIVE SUMMARY")
	assert.Contains(t, out, "ANALYSIS PERIOD: 2024-01-01 to 2024-01-04 (3 days)")
	assert.Contains(t, out, "TOTAL: 1299.50 kWh")
	assert.Contains(t, out, "=== CAMPUS OVERVIEW ===")
	assert.Contains(t, out, "| Total Campus Consumption       | 1,299.50")
	assert.Contains(t, out, "1. Shift peak load.")
	assert.Contains(t, out, "2. Upgrade equipment.")
	assert.Contains(t, out, "Report Generated: 2024-02-01 09:30:00")
	assert.Contains(t, out, "Run ID: abc-123")
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}

func TestReporter_HandleWithoutPeriod(t *testing.T) {
	buf := &bytes.Buffer{}

	err := NewReporter(buf).Handle(&domain.Report{Title: "Empty", Unit: "kWh"})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ANALYSIS PERIOD: no valid readings")
	assert.NotContains(t, buf.String(), "Report Generated")
}
