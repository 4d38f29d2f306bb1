package charts

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
)

const NoData = "No data available"

var (
	titleColor  = lipgloss.Color("#7D56F4")
	barColor    = lipgloss.Color("#4285f4")
	headerColor = lipgloss.Color("#cc785c")
)

type Options struct {
	Width  int
	Height int
}

func DefaultOptions() Options {
	return Options{Width: 60, Height: 10}
}

// Dashboard renders the six-panel text dashboard of a run
type Dashboard struct {
	opts Options
}

// NewDashboard fills zero sizes from DefaultOptions and enforces a minimum of 20x3
func NewDashboard(opts Options) *Dashboard {
	defaults := DefaultOptions()
	if opts.Width == 0 {
		opts.Width = defaults.Width
	}
	if opts.Height == 0 {
		opts.Height = defaults.Height
	}
	if opts.Width < 20 {
		opts.Width = 20
	}
	if opts.Height < 3 {
		opts.Height = 3
	}
	return &Dashboard{opts: opts}
}

type panel struct {
	title string
	body  string
}

// Render writes every panel to w. Styles are bound to w, so non-terminal output carries no escape codes.
func (d *Dashboard) Render(w io.Writer, agg domain.Aggregates) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(titleColor)
	bar := r.NewStyle().Foreground(barColor)

	panels := []panel{
		{"Daily Consumption Trend", d.dailyTrend(agg.Daily)},
		{"Average Usage by Building", d.buildingAverages(agg.Buildings, bar)},
		{"Share of Total Consumption", d.buildingShares(agg.Buildings, agg.CampusTotal, bar)},
		{"Weekly Consumption", d.weeklyTrend(agg.Weekly)},
		{"Peak Hour Analysis", d.slotAverages(agg.Slots, bar)},
		{"Building Statistics", d.statsTable(r, agg.Buildings)},
	}

	var b strings.Builder
	b.WriteString(title.Render("CAMPUS ENERGY DASHBOARD"))
	b.WriteString("\n\n")
	for i, p := range panels {
		fmt.Fprintf(&b, "%s\n%s\n%s\n\n", title.Render(fmt.Sprintf("%d. %s", i+1, p.title)), strings.Repeat("─", d.opts.Width), p.body)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write dashboard: %w", err)
	}
	return nil
}

func (d *Dashboard) dailyTrend(daily []domain.DailyTotal) string {
	if len(daily) == 0 {
		return NoData
	}
	values := make([]float64, len(daily))
	for i, t := range daily {
		values[i] = t.TotalKWh
	}
	caption := fmt.Sprintf("kWh per day, %s to %s",
		daily[0].Date.Format(domain.DateLayout), daily[len(daily)-1].Date.Format(domain.DateLayout))
	return d.lineChart(values, caption)
}

func (d *Dashboard) weeklyTrend(weekly []domain.WeeklyTotal) string {
	if len(weekly) == 0 {
		return NoData
	}
	values := make([]float64, len(weekly))
	for i, t := range weekly {
		values[i] = t.TotalKWh
	}
	first, last := weekly[0], weekly[len(weekly)-1]
	caption := fmt.Sprintf("kWh per week, %d-W%02d to %d-W%02d", first.Year, first.Week, last.Year, last.Week)
	return d.lineChart(values, caption)
}

func (d *Dashboard) lineChart(values []float64, caption string) string {
	// a single point has no line to draw
	if len(values) == 1 {
		values = []float64{values[0], values[0]}
	}
	return asciigraph.Plot(values,
		asciigraph.Height(d.opts.Height),
		asciigraph.Width(d.opts.Width),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
}

func (d *Dashboard) buildingAverages(buildings []domain.BuildingStats, style lipgloss.Style) string {
	labels := make([]string, len(buildings))
	values := make([]float64, len(buildings))
	for i, b := range buildings {
		labels[i] = b.Building
		values[i] = b.Average
	}
	return d.barChart(labels, values, "%.2f kWh", style)
}

func (d *Dashboard) buildingShares(buildings []domain.BuildingStats, total float64, style lipgloss.Style) string {
	labels := make([]string, len(buildings))
	values := make([]float64, len(buildings))
	for i, b := range buildings {
		labels[i] = b.Building
		if total > 0 {
			values[i] = b.Total / total * 100
		}
	}
	return d.barChart(labels, values, "%.1f%%", style)
}

func (d *Dashboard) slotAverages(slots []domain.SlotStats, style lipgloss.Style) string {
	labels := make([]string, len(slots))
	values := make([]float64, len(slots))
	for i, s := range slots {
		labels[i] = s.TimeSlot
		values[i] = s.Average
	}
	return d.barChart(labels, values, "%.2f kWh", style)
}

func (d *Dashboard) barChart(labels []string, values []float64, valueFormat string, style lipgloss.Style) string {
	if len(values) == 0 {
		return NoData
	}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	labelWidth := 0
	for _, l := range labels {
		if n := lipgloss.Width(l); n > labelWidth {
			labelWidth = n
		}
	}

	barWidth := d.opts.Width - labelWidth - 14
	if barWidth < 10 {
		barWidth = 10
	}

	lines := make([]string, len(values))
	for i, v := range values {
		n := int(v / maxVal * float64(barWidth))
		if n < 0 {
			n = 0
		}
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(labels[i]))
		lines[i] = pad + labels[i] + " │" + style.Render(strings.Repeat("█", n)) + " " + fmt.Sprintf(valueFormat, v)
	}
	return strings.Join(lines, "\n")
}

func (d *Dashboard) statsTable(r *lipgloss.Renderer, buildings []domain.BuildingStats) string {
	if len(buildings) == 0 {
		return NoData
	}

	header := r.NewStyle().Bold(true).Foreground(headerColor).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle()).
		Headers("Building", "Total", "Average", "Max", "Min", "Std Dev", "Readings").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, b := range buildings {
		t.Row(
			b.Building,
			fmt.Sprintf("%.2f", b.Total),
			fmt.Sprintf("%.2f", b.Average),
			fmt.Sprintf("%.2f", b.Max),
			fmt.Sprintf("%.2f", b.Min),
			fmt.Sprintf("%.2f", b.StdDev),
			fmt.Sprintf("%d", b.Count),
		)
	}
	return t.String()
}
