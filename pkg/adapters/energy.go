package adapters

import (
	"fmt"
	"math"
	"strconv"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
	"github.com/open5nippet/Capstone-Project-1/pkg/models/store"
)

func MapDomainRecordToStoreReadingRow(r domain.Record) store.ReadingRow {
	return store.ReadingRow{
		Date:         r.Date.Format(domain.DateLayout),
		Time:         r.TimeSlot,
		KWh:          strconv.FormatFloat(r.KWh, 'f', -1, 64),
		BuildingName: r.Building,
	}
}

func MapDomainBuildingStatsToStoreRow(s domain.BuildingStats) store.BuildingSummaryRow {
	return store.BuildingSummaryRow{
		Building: s.Building,
		Total:    rounded(s.Total),
		Average:  rounded(s.Average),
		Maximum:  rounded(s.Max),
		Minimum:  rounded(s.Min),
		StdDev:   rounded(s.StdDev),
		Count:    strconv.Itoa(s.Count),
	}
}

func MapDomainSlotStatsToStoreRow(s domain.SlotStats) store.SlotSummaryRow {
	return store.SlotSummaryRow{
		TimeSlot: s.TimeSlot,
		Average:  rounded(s.Average),
		Maximum:  rounded(s.Max),
		Minimum:  rounded(s.Min),
		Count:    strconv.Itoa(s.Count),
	}
}

func MapDomainDailyTotalToStoreRow(d domain.DailyTotal) store.DailyTotalRow {
	return store.DailyTotalRow{
		Date:     d.Date.Format(domain.DateLayout),
		TotalKWh: rounded(d.TotalKWh),
	}
}

func MapDomainWeeklyTotalToStoreRow(w domain.WeeklyTotal) store.WeeklyTotalRow {
	return store.WeeklyTotalRow{
		Week:      fmt.Sprintf("%d-W%02d", w.Year, w.Week),
		WeekStart: w.WeekStart.Format(domain.DateLayout),
		TotalKWh:  rounded(w.TotalKWh),
	}
}

// rounded renders v at 2 decimals
func rounded(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}
