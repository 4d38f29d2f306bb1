package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(date time.Time, slot string, kwh float64, building string) domain.Record {
	return domain.Record{Date: date, TimeSlot: slot, KWh: kwh, Building: building}
}

func table(records ...domain.Record) *domain.CombinedTable {
	t := domain.NewCombinedTable()
	t.Records = append(t.Records, records...)
	return t
}

func TestCompute_TwoBuildingScenario(t *testing.T) {
	date := day(2024, 1, 15)
	tbl := table(
		rec(date, "08:00", 10, "A"),
		rec(date, "09:00", 20, "A"),
		rec(date, "10:00", 30, "A"),
		rec(date, "08:00", 5, "B"),
	)

	agg := Compute(tbl)

	require.Len(t, agg.Daily, 1)
	assert.Equal(t, date, agg.Daily[0].Date)
	assert.Equal(t, 65.0, agg.Daily[0].TotalKWh)

	require.Len(t, agg.Buildings, 2)
	a := agg.Buildings[0]
	assert.Equal(t, "A", a.Building)
	assert.Equal(t, 60.0, a.Total)
	assert.Equal(t, 20.0, a.Average)
	assert.Equal(t, 10.0, a.Min)
	assert.Equal(t, 30.0, a.Max)
	assert.InDelta(t, 10.0, a.StdDev, 1e-9)
	assert.Equal(t, 3, a.Count)

	b := agg.Buildings[1]
	assert.Equal(t, domain.BuildingStats{Building: "B", Total: 5, Average: 5, Min: 5, Max: 5, StdDev: 0, Count: 1}, b)

	name, total, ok := HighestConsumer(agg.Buildings)
	assert.True(t, ok)
	assert.Equal(t, "A", name)
	assert.Equal(t, 60.0, total)

	name, total, ok = LowestConsumer(agg.Buildings)
	assert.True(t, ok)
	assert.Equal(t, "B", name)
	assert.Equal(t, 5.0, total)

	assert.Equal(t, 65.0, agg.CampusTotal)
	assert.Equal(t, 4, agg.Readings())
}

func TestCompute_TotalsAgree(t *testing.T) {
	tbl := table(
		rec(day(2024, 1, 1), "08:00", 0.1, "Library"),
		rec(day(2024, 1, 1), "09:00", 0.2, "Gym"),
		rec(day(2024, 1, 2), "08:00", 1.7, "Library"),
		rec(day(2024, 1, 9), "12:00", 3.3, "Hall"),
		rec(day(2024, 1, 9), "unknown", 2.05, "Gym"),
	)

	agg := Compute(tbl)

	dailySum := 0.0
	for _, d := range agg.Daily {
		dailySum += d.TotalKWh
	}
	buildingSum := 0.0
	for _, b := range agg.Buildings {
		buildingSum += b.Total
	}
	weeklySum := 0.0
	for _, w := range agg.Weekly {
		weeklySum += w.TotalKWh
	}

	assert.InDelta(t, agg.CampusTotal, dailySum, 1e-9)
	assert.InDelta(t, agg.CampusTotal, buildingSum, 1e-9)
	assert.InDelta(t, agg.CampusTotal, weeklySum, 1e-9)
	assert.Len(t, agg.Buildings, 3)
	assert.Equal(t, []string{"Library", "Gym", "Hall"}, buildingNames(agg.Buildings))
}

func TestCompute_TotalsAgreeWithinRounding(t *testing.T) {
	// Given: summation order differs per aggregate
	tbl := table(
		rec(day(2024, 1, 1), "08:00", 0.1, "A"),
		rec(day(2024, 1, 2), "08:00", 0.2, "B"),
		rec(day(2024, 1, 1), "09:00", 0.3, "B"),
		rec(day(2024, 1, 2), "09:00", 0.7, "A"),
	)

	// When
	agg := Compute(tbl)

	// Then
	dailySum := 0.0
	for _, d := range agg.Daily {
		dailySum += d.TotalKWh
	}
	buildingSum := 0.0
	for _, b := range agg.Buildings {
		buildingSum += b.Total
	}
	assert.Equal(t, 1.3, agg.CampusTotal)
	assert.NotEqual(t, agg.CampusTotal, dailySum)
	assert.InDelta(t, agg.CampusTotal, dailySum, 1e-9)
	assert.InDelta(t, agg.CampusTotal, buildingSum, 1e-9)
}

func TestCompute_Empty(t *testing.T) {
	for name, tbl := range map[string]*domain.CombinedTable{
		"empty table": domain.NewCombinedTable(),
		"nil table":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			agg := Compute(tbl)

			assert.NotNil(t, agg.Daily)
			assert.Empty(t, agg.Daily)
			assert.NotNil(t, agg.Weekly)
			assert.Empty(t, agg.Weekly)
			assert.NotNil(t, agg.Buildings)
			assert.Empty(t, agg.Buildings)
			assert.NotNil(t, agg.Slots)
			assert.Empty(t, agg.Slots)
			assert.Equal(t, 0.0, agg.CampusTotal)

			_, _, ok := HighestConsumer(agg.Buildings)
			assert.False(t, ok)
			_, _, ok = PeakSlot(agg.Slots)
			assert.False(t, ok)
			_, ok = agg.Period()
			assert.False(t, ok)
		})
	}
}

func TestHighestConsumer_TieGoesToFirst(t *testing.T) {
	tbl := table(
		rec(day(2024, 1, 1), "08:00", 5, "Zeta"),
		rec(day(2024, 1, 1), "08:00", 7, "Alpha"),
		rec(day(2024, 1, 2), "08:00", 7, "Zeta"),
		rec(day(2024, 1, 2), "08:00", 5, "Alpha"),
	)

	for i := 0; i < 5; i++ {
		summary := BuildingSummary(tbl)

		name, total, ok := HighestConsumer(summary)
		require.True(t, ok)
		assert.Equal(t, "Zeta", name)
		assert.Equal(t, 12.0, total)

		name, _, _ = LowestConsumer(summary)
		assert.Equal(t, "Zeta", name)
	}
}

func TestWeeklyAggregates_ISOWeeks(t *testing.T) {
	tbl := table(
		rec(day(2024, 1, 7), "08:00", 1, "A"),   // Sunday, week 1
		rec(day(2024, 1, 8), "08:00", 2, "A"),   // Monday, week 2
		rec(day(2024, 1, 14), "08:00", 3, "A"),  // Sunday, week 2
		rec(day(2024, 12, 30), "08:00", 4, "A"), // 2025-W01
	)

	weekly := WeeklyAggregates(tbl)

	require.Len(t, weekly, 3)
	assert.Equal(t, domain.WeeklyTotal{Year: 2024, Week: 1, WeekStart: day(2024, 1, 1), TotalKWh: 1}, weekly[0])
	assert.Equal(t, domain.WeeklyTotal{Year: 2024, Week: 2, WeekStart: day(2024, 1, 8), TotalKWh: 5}, weekly[1])
	assert.Equal(t, domain.WeeklyTotal{Year: 2025, Week: 1, WeekStart: day(2024, 12, 30), TotalKWh: 4}, weekly[2])
}

func TestHourlyPeakAnalysis(t *testing.T) {
	tbl := table(
		rec(day(2024, 1, 1), "08:00", 4, "A"),
		rec(day(2024, 1, 1), "18:00", 10, "A"),
		rec(day(2024, 1, 2), "08:00", 6, "B"),
		rec(day(2024, 1, 2), "18:00", 2, "B"),
	)

	slots := HourlyPeakAnalysis(tbl)

	require.Len(t, slots, 2)
	assert.Equal(t, "08:00", slots[0].TimeSlot)
	assert.Equal(t, 10.0, slots[0].Total)
	assert.Equal(t, 5.0, slots[0].Average)
	assert.Equal(t, 6.0, slots[0].Max)
	assert.Equal(t, 4.0, slots[0].Min)
	assert.Equal(t, 2, slots[0].Count)
	assert.InDelta(t, 1.41421356, slots[0].StdDev, 1e-6)

	slot, total, ok := PeakSlot(slots)
	assert.True(t, ok)
	assert.Equal(t, "18:00", slot)
	assert.Equal(t, 12.0, total)
}

func TestBuildingDrillDown(t *testing.T) {
	tbl := table(
		rec(day(2024, 1, 2), "08:00", 1, "A"),
		rec(day(2024, 1, 1), "08:00", 2, "A"),
		rec(day(2024, 1, 1), "09:00", 3, "A"),
		rec(day(2024, 1, 1), "08:00", 9, "B"),
	)

	daily := BuildingDaily(tbl, "A")
	assert.Equal(t, []domain.DailyTotal{
		{Date: day(2024, 1, 1), TotalKWh: 5},
		{Date: day(2024, 1, 2), TotalKWh: 1},
	}, daily)

	breakdown := SlotBreakdown(tbl, "A", day(2024, 1, 1))
	assert.Equal(t, map[string]float64{"08:00": 2, "09:00": 3}, breakdown)
	assert.Empty(t, BuildingDaily(tbl, "Nowhere"))
}

func TestCompute_Deterministic(t *testing.T) {
	tbl := table(
		rec(day(2024, 2, 3), "08:00", 1.25, "A"),
		rec(day(2024, 2, 1), "09:00", 2.5, "B"),
		rec(day(2024, 2, 2), "08:00", 3.75, "C"),
	)

	assert.Equal(t, Compute(tbl), Compute(tbl))
}

func buildingNames(stats []domain.BuildingStats) []string {
	names := make([]string, len(stats))
	for i, s := range stats {
		names[i] = s.Building
	}
	return names
}
