package domain

import "time"

type DailyTotal struct {
	Date     time.Time
	TotalKWh float64
}

// WeeklyTotal is keyed by ISO week; WeekStart is the Monday of that week
type WeeklyTotal struct {
	Year      int
	Week      int
	WeekStart time.Time
	TotalKWh  float64
}

type BuildingStats struct {
	Building string
	Total    float64
	Average  float64
	Min      float64
	Max      float64
	StdDev   float64 // sample std-dev, 0 for a single reading
	Count    int
}

type SlotStats struct {
	TimeSlot string
	Total    float64
	Average  float64
	Max      float64
	Min      float64
	StdDev   float64
	Count    int
}

// Aggregates bundles every derived table of a run
type Aggregates struct {
	Daily       []DailyTotal
	Weekly      []WeeklyTotal
	Buildings   []BuildingStats
	Slots       []SlotStats
	CampusTotal float64
}

// Period returns the first and last date covered by the daily totals
func (a Aggregates) Period() (TimePeriod, bool) {
	if len(a.Daily) == 0 {
		return TimePeriod{}, false
	}
	start := a.Daily[0].Date
	end := a.Daily[len(a.Daily)-1].Date
	return TimePeriod{
		Start:    start,
		End:      end,
		Duration: int(end.Sub(start).Hours() / 24),
	}, true
}

// Readings is the number of records the aggregates were computed from
func (a Aggregates) Readings() int {
	n := 0
	for _, b := range a.Buildings {
		n += b.Count
	}
	return n
}
