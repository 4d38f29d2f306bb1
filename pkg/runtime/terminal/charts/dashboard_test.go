package charts

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
)

func TestDashboard_Render(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	agg := domain.Aggregates{
		Daily: []domain.DailyTotal{
			{Date: day(1), TotalKWh: 65},
			{Date: day(2), TotalKWh: 40},
			{Date: day(3), TotalKWh: 80},
		},
		Weekly: []domain.WeeklyTotal{
			{Year: 2024, Week: 1, WeekStart: day(1), TotalKWh: 185},
		},
		Buildings: []domain.BuildingStats{
			{Building: "Library", Total: 120, Average: 40, Min: 20, Max: 60, StdDev: 20, Count: 3},
			{Building: "Gym", Total: 65, Average: 65, Min: 65, Max: 65, Count: 1},
		},
		Slots: []domain.SlotStats{
			{TimeSlot: "08:00", Total: 100, Average: 50, Count: 2},
			{TimeSlot: "18:00", Total: 85, Average: 42.5, Count: 2},
		},
		CampusTotal: 185,
	}
	buf := &bytes.Buffer{}

	err := NewDashboard(DefaultOptions()).Render(buf, agg)

	require.NoError(t, err)
	out := buf.String()
	for _, title := range []string{
		"1. Daily Consumption Trend",
		"2. Average Usage by Building",
		"3. Share of Total Consumption",
		"4. Weekly Consumption",
		"5. Peak Hour Analysis",
		"6. Building Statistics",
	} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "kWh per day, 2024-01-01 to 2024-01-03")
	assert.Contains(t, out, "kWh per week, 2024-W01 to 2024-W01")
	assert.Contains(t, out, "64.9%")
	assert.Contains(t, out, "42.50 kWh")
	assert.Contains(t, out, "Readings")
	assert.Contains(t, out, "Library")
	assert.NotContains(t, out, NoData)
	assert.NotContains(t, out, "\x1b[")
}

func TestDashboard_RenderEmpty(t *testing.T) {
	buf := &bytes.Buffer{}

	err := NewDashboard(Options{}).Render(buf, domain.Aggregates{})

	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(buf.String(), NoData))
}

func TestNewDashboard_Sizes(t *testing.T) {
	assert.Equal(t, DefaultOptions(), NewDashboard(Options{}).opts)
	assert.Equal(t, Options{Width: 20, Height: 3}, NewDashboard(Options{Width: 5, Height: 1}).opts)
	assert.Equal(t, Options{Width: 80, Height: 10}, NewDashboard(Options{Width: 80}).opts)
}
