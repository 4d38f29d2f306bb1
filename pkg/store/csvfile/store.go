package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/open5nippet/Capstone-Project-1/pkg/adapters"
	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
	"github.com/open5nippet/Capstone-Project-1/pkg/models/store"
)

const (
	CleanedFile         = "cleaned_energy_data.csv"
	BuildingSummaryFile = "building_summary.csv"
	SlotSummaryFile     = "hourly_peak_analysis.csv"
	DailyTotalsFile     = "daily_totals.csv"
	WeeklyTotalsFile    = "weekly_totals.csv"
)

// WriteCleaned serializes every valid record in table order
func WriteCleaned(path string, table *domain.CombinedTable) error {
	var recs []domain.Record
	if table != nil {
		recs = table.Records
	}
	rows := make([]store.Row, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, adapters.MapDomainRecordToStoreReadingRow(r))
	}
	return writeTable(path, store.CleanedHeader, rows)
}

// WriteBuildingSummary writes the building statistics, largest total first
func WriteBuildingSummary(path string, summary []domain.BuildingStats) error {
	sorted := make([]domain.BuildingStats, len(summary))
	copy(sorted, summary)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total > sorted[j].Total
	})

	rows := make([]store.Row, 0, len(sorted))
	for _, s := range sorted {
		rows = append(rows, adapters.MapDomainBuildingStatsToStoreRow(s))
	}
	return writeTable(path, store.BuildingSummaryHeader, rows)
}

// WriteSlotSummary writes the time slot statistics, highest average first
func WriteSlotSummary(path string, slots []domain.SlotStats) error {
	sorted := make([]domain.SlotStats, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Average > sorted[j].Average
	})

	rows := make([]store.Row, 0, len(sorted))
	for _, s := range sorted {
		rows = append(rows, adapters.MapDomainSlotStatsToStoreRow(s))
	}
	return writeTable(path, store.SlotSummaryHeader, rows)
}

func WriteDailyTotals(path string, daily []domain.DailyTotal) error {
	rows := make([]store.Row, 0, len(daily))
	for _, d := range daily {
		rows = append(rows, adapters.MapDomainDailyTotalToStoreRow(d))
	}
	return writeTable(path, store.DailyTotalsHeader, rows)
}

func WriteWeeklyTotals(path string, weekly []domain.WeeklyTotal) error {
	rows := make([]store.Row, 0, len(weekly))
	for _, w := range weekly {
		rows = append(rows, adapters.MapDomainWeeklyTotalToStoreRow(w))
	}
	return writeTable(path, store.WeeklyTotalsHeader, rows)
}

// writeTable writes to a temp file next to path and renames it into place,
// so readers never observe a partial table
func writeTable(path string, header []string, rows []store.Row) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err = w.Write(row.Fields()); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
