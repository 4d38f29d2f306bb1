package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
	"github.com/open5nippet/Capstone-Project-1/pkg/services/aggregate"
	"github.com/open5nippet/Capstone-Project-1/pkg/services/report"
	"github.com/open5nippet/Capstone-Project-1/pkg/store/csvfile"
)

const (
	DashboardFile = "dashboard.txt"
	SummaryFile   = "summary.txt"
)

type Ingestor interface {
	Ingest(ctx context.Context, dir string) (*domain.CombinedTable, error)
	Summary() domain.IngestSummary
}

type ReportHandler interface {
	Handle(report *domain.Report) error
}

type DashboardRenderer interface {
	Render(w io.Writer, agg domain.Aggregates) error
}

type Dependencies struct {
	Ingestor  Ingestor
	Dashboard DashboardRenderer
	// Console receives the campus report
	Console ReportHandler
	// Summary renders the executive summary into the summary file
	Summary func(w io.Writer) ReportHandler
}

type RunnerConfig struct {
	RunID         string
	SavingsTarget float64
	// LogFile is listed among the run outputs when set
	LogFile string
}

// Result describes one completed run
type Result struct {
	RunID      string
	Table      *domain.CombinedTable
	Ingest     domain.IngestSummary
	Aggregates domain.Aggregates
	Summary    *domain.Report
	Campus     *domain.Report
	Written    []string
	Failed     []string
}

type Runner struct {
	deps   Dependencies
	config RunnerConfig
	now    func() time.Time
}

func NewRunner(deps Dependencies, config RunnerConfig) *Runner {
	if config.SavingsTarget <= 0 {
		config.SavingsTarget = report.DefaultSavingsTarget
	}
	return &Runner{deps: deps, config: config, now: time.Now}
}

type output struct {
	name        string
	description string
	write       func(path string) error
}

// Run executes ingest, aggregation, export and reporting in order.
// Only configuration problems are returned; failed outputs are logged and listed in Result.Failed.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, &domain.ConfigurationError{Path: outputDir, Err: err}
	}

	table, err := r.deps.Ingestor.Ingest(ctx, inputDir)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:  r.config.RunID,
		Table:  table,
		Ingest: r.deps.Ingestor.Summary(),
	}
	res.Aggregates = r.aggregate(logger, table)

	outputs := []output{
		{csvfile.CleanedFile, "Processed dataset", func(p string) error {
			return csvfile.WriteCleaned(p, table)
		}},
		{csvfile.BuildingSummaryFile, "Building statistics", func(p string) error {
			return csvfile.WriteBuildingSummary(p, res.Aggregates.Buildings)
		}},
		{csvfile.SlotSummaryFile, "Time-based analysis", func(p string) error {
			return csvfile.WriteSlotSummary(p, res.Aggregates.Slots)
		}},
		{csvfile.DailyTotalsFile, "Daily campus totals", func(p string) error {
			return csvfile.WriteDailyTotals(p, res.Aggregates.Daily)
		}},
		{csvfile.WeeklyTotalsFile, "Weekly campus totals", func(p string) error {
			return csvfile.WriteWeeklyTotals(p, res.Aggregates.Weekly)
		}},
		{DashboardFile, "Multi-chart dashboard", func(p string) error {
			return r.renderTo(p, func(w io.Writer) error {
				return r.deps.Dashboard.Render(w, res.Aggregates)
			})
		}},
	}
	for _, out := range outputs {
		r.export(logger, res, outputDir, out)
	}

	files := make([]report.OutputFile, 0, len(res.Written)+2)
	for _, out := range outputs {
		if slices.Contains(res.Written, out.name) {
			files = append(files, report.OutputFile{Name: out.name, Description: out.description})
		}
	}
	if r.config.LogFile != "" {
		files = append(files, report.OutputFile{Name: filepath.Base(r.config.LogFile), Description: "Execution log"})
	}
	files = append(files, report.OutputFile{Name: SummaryFile, Description: "This executive summary"})

	res.Summary = report.ExecutiveSummary(res.Aggregates, report.Options{
		SavingsTarget: r.config.SavingsTarget,
		OutputFiles:   files,
		GeneratedAt:   r.now(),
		RunID:         r.config.RunID,
	})
	r.export(logger, res, outputDir, output{SummaryFile, "Executive summary", func(p string) error {
		return r.renderTo(p, func(w io.Writer) error {
			return r.deps.Summary(w).Handle(res.Summary)
		})
	}})

	res.Campus = report.CampusReport(res.Aggregates)
	if err := r.deps.Console.Handle(res.Campus); err != nil {
		logger.Error().Err(err).Msg("failed to print campus report")
	}

	logger.Info().
		Int("records", table.Len()).
		Float64("campus_total_kwh", res.Aggregates.CampusTotal).
		Int("outputs_written", len(res.Written)).
		Int("outputs_failed", len(res.Failed)).
		Msg("run complete")
	return res, nil
}

func (r *Runner) aggregate(logger *zerolog.Logger, table *domain.CombinedTable) domain.Aggregates {
	var agg domain.Aggregates

	agg.Daily = aggregate.DailyTotals(table)
	logger.Info().Str("aggregate", "daily_totals").Int("rows", len(agg.Daily)).Msg("aggregation complete")

	agg.Weekly = aggregate.WeeklyAggregates(table)
	logger.Info().Str("aggregate", "weekly_totals").Int("rows", len(agg.Weekly)).Msg("aggregation complete")

	agg.Buildings = aggregate.BuildingSummary(table)
	logger.Info().Str("aggregate", "building_summary").Int("rows", len(agg.Buildings)).Msg("aggregation complete")

	agg.Slots = aggregate.HourlyPeakAnalysis(table)
	logger.Info().Str("aggregate", "hourly_peak_analysis").Int("rows", len(agg.Slots)).Msg("aggregation complete")

	agg.CampusTotal = aggregate.CampusTotal(table)
	logger.Info().Str("aggregate", "campus_total").Float64("kwh", agg.CampusTotal).Msg("aggregation complete")

	return agg
}

func (r *Runner) export(logger *zerolog.Logger, res *Result, dir string, out output) {
	path := filepath.Join(dir, out.name)
	if err := out.write(path); err != nil {
		logger.Error().Err(err).Str("output", out.name).Msg("export failed")
		res.Failed = append(res.Failed, out.name)
		return
	}
	logger.Info().Str("output", path).Msg("export complete")
	res.Written = append(res.Written, out.name)
}

// renderTo buffers the rendered text and only replaces path once rendering succeeded
func (r *Runner) renderTo(path string, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
