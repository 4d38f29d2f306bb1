package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
)

// Compute derives every aggregate table from the combined table
func Compute(table *domain.CombinedTable) domain.Aggregates {
	return domain.Aggregates{
		Daily:       DailyTotals(table),
		Weekly:      WeeklyAggregates(table),
		Buildings:   BuildingSummary(table),
		Slots:       HourlyPeakAnalysis(table),
		CampusTotal: CampusTotal(table),
	}
}

// DailyTotals sums kWh per calendar date, ordered by date. Dates without readings are absent.
func DailyTotals(table *domain.CombinedTable) []domain.DailyTotal {
	return dailyTotals(records(table), func(domain.Record) bool { return true })
}

// BuildingDaily is DailyTotals restricted to one building
func BuildingDaily(table *domain.CombinedTable, building string) []domain.DailyTotal {
	return dailyTotals(records(table), func(r domain.Record) bool { return r.Building == building })
}

func dailyTotals(recs []domain.Record, keep func(domain.Record) bool) []domain.DailyTotal {
	totals := make(map[time.Time]float64)
	for _, r := range recs {
		if keep(r) {
			totals[r.Date] += r.KWh
		}
	}

	daily := make([]domain.DailyTotal, 0, len(totals))
	for date, total := range totals {
		daily = append(daily, domain.DailyTotal{Date: date, TotalKWh: total})
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date.Before(daily[j].Date)
	})
	return daily
}

// WeeklyAggregates sums kWh per ISO week (weeks start on Monday)
func WeeklyAggregates(table *domain.CombinedTable) []domain.WeeklyTotal {
	type weekKey struct{ year, week int }
	weeks := make(map[weekKey]*domain.WeeklyTotal)

	for _, r := range records(table) {
		year, week := r.Date.ISOWeek()
		key := weekKey{year, week}
		w, ok := weeks[key]
		if !ok {
			w = &domain.WeeklyTotal{Year: year, Week: week, WeekStart: weekStart(r.Date)}
			weeks[key] = w
		}
		w.TotalKWh += r.KWh
	}

	weekly := make([]domain.WeeklyTotal, 0, len(weeks))
	for _, w := range weeks {
		weekly = append(weekly, *w)
	}
	sort.Slice(weekly, func(i, j int) bool {
		return weekly[i].WeekStart.Before(weekly[j].WeekStart)
	})
	return weekly
}

func weekStart(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7 // Monday = 0
	return date.AddDate(0, 0, -offset)
}

// BuildingSummary computes per-building descriptive statistics in order of first appearance
func BuildingSummary(table *domain.CombinedTable) []domain.BuildingStats {
	groups := groupBy(records(table), func(r domain.Record) string { return r.Building })

	summary := make([]domain.BuildingStats, 0, len(groups))
	for _, g := range groups {
		s := describe(g.values)
		summary = append(summary, domain.BuildingStats{
			Building: g.key,
			Total:    s.total,
			Average:  s.mean,
			Min:      s.min,
			Max:      s.max,
			StdDev:   s.std,
			Count:    s.count,
		})
	}
	return summary
}

// HourlyPeakAnalysis computes per-time-slot statistics in order of first appearance
func HourlyPeakAnalysis(table *domain.CombinedTable) []domain.SlotStats {
	groups := groupBy(records(table), func(r domain.Record) string { return r.TimeSlot })

	slots := make([]domain.SlotStats, 0, len(groups))
	for _, g := range groups {
		s := describe(g.values)
		slots = append(slots, domain.SlotStats{
			TimeSlot: g.key,
			Total:    s.total,
			Average:  s.mean,
			Max:      s.max,
			Min:      s.min,
			StdDev:   s.std,
			Count:    s.count,
		})
	}
	return slots
}

// SlotBreakdown returns the kWh of one building per time slot on a single date
func SlotBreakdown(table *domain.CombinedTable, building string, date time.Time) map[string]float64 {
	breakdown := make(map[string]float64)
	for _, r := range records(table) {
		if r.Building == building && r.Date.Equal(date) {
			breakdown[r.TimeSlot] += r.KWh
		}
	}
	return breakdown
}

// CampusTotal is the sum of every reading
func CampusTotal(table *domain.CombinedTable) float64 {
	total := 0.0
	for _, r := range records(table) {
		total += r.KWh
	}
	return total
}

// HighestConsumer returns the building with the largest total; ties go to the first one listed
func HighestConsumer(summary []domain.BuildingStats) (string, float64, bool) {
	return pickBuilding(summary, func(a, b float64) bool { return a > b })
}

// LowestConsumer returns the building with the smallest total; ties go to the first one listed
func LowestConsumer(summary []domain.BuildingStats) (string, float64, bool) {
	return pickBuilding(summary, func(a, b float64) bool { return a < b })
}

func pickBuilding(summary []domain.BuildingStats, better func(a, b float64) bool) (string, float64, bool) {
	if len(summary) == 0 {
		return "", 0, false
	}
	best := summary[0]
	for _, s := range summary[1:] {
		if better(s.Total, best.Total) {
			best = s
		}
	}
	return best.Building, best.Total, true
}

// PeakSlot returns the time slot with the largest total load
func PeakSlot(slots []domain.SlotStats) (string, float64, bool) {
	if len(slots) == 0 {
		return "", 0, false
	}
	best := slots[0]
	for _, s := range slots[1:] {
		if s.Total > best.Total {
			best = s
		}
	}
	return best.TimeSlot, best.Total, true
}

func records(table *domain.CombinedTable) []domain.Record {
	if table == nil {
		return nil
	}
	return table.Records
}

type group struct {
	key    string
	values []float64
}

// groupBy buckets kWh values by key, keeping keys in first-seen order
func groupBy(recs []domain.Record, key func(domain.Record) string) []*group {
	index := make(map[string]*group)
	var order []*group
	for _, r := range recs {
		k := key(r)
		g, ok := index[k]
		if !ok {
			g = &group{key: k}
			index[k] = g
			order = append(order, g)
		}
		g.values = append(g.values, r.KWh)
	}
	return order
}

type stats struct {
	total, mean, min, max, std float64
	count                      int
}

func describe(values []float64) stats {
	s := stats{count: len(values)}
	if s.count == 0 {
		return s
	}
	s.min, s.max = values[0], values[0]
	for _, v := range values {
		s.total += v
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}
	s.mean = s.total / float64(s.count)
	if s.count < 2 {
		return s
	}
	var sq float64
	for _, v := range values {
		d := v - s.mean
		sq += d * d
	}
	s.std = math.Sqrt(sq / float64(s.count-1))
	return s
}
