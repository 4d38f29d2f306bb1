package store

// Row is one serialized line of a flat-file table
type Row interface {
	Fields() []string
}

var (
	CleanedHeader         = []string{"date", "time", "kwh", "building_name"}
	BuildingSummaryHeader = []string{"building", "total", "average", "maximum", "minimum", "std_dev", "count"}
	SlotSummaryHeader     = []string{"time_slot", "average", "maximum", "minimum", "count"}
	DailyTotalsHeader     = []string{"date", "total_kwh"}
	WeeklyTotalsHeader    = []string{"week", "week_start", "total_kwh"}
)

type ReadingRow struct {
	Date         string
	Time         string
	KWh          string
	BuildingName string
}

func (r ReadingRow) Fields() []string {
	return []string{r.Date, r.Time, r.KWh, r.BuildingName}
}

type BuildingSummaryRow struct {
	Building string
	Total    string
	Average  string
	Maximum  string
	Minimum  string
	StdDev   string
	Count    string
}

func (r BuildingSummaryRow) Fields() []string {
	return []string{r.Building, r.Total, r.Average, r.Maximum, r.Minimum, r.StdDev, r.Count}
}

type SlotSummaryRow struct {
	TimeSlot string
	Average  string
	Maximum  string
	Minimum  string
	Count    string
}

func (r SlotSummaryRow) Fields() []string {
	return []string{r.TimeSlot, r.Average, r.Maximum, r.Minimum, r.Count}
}

type DailyTotalRow struct {
	Date     string
	TotalKWh string
}

func (r DailyTotalRow) Fields() []string {
	return []string{r.Date, r.TotalKWh}
}

type WeeklyTotalRow struct {
	Week      string // 2024-W03
	WeekStart string
	TotalKWh  string
}

func (r WeeklyTotalRow) Fields() []string {
	return []string{r.Week, r.WeekStart, r.TotalKWh}
}
