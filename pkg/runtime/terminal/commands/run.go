package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
	"github.com/open5nippet/Capstone-Project-1/pkg/runtime/logging"
	"github.com/open5nippet/Capstone-Project-1/pkg/runtime/terminal/charts"
	"github.com/open5nippet/Capstone-Project-1/pkg/runtime/terminal/export"
	"github.com/open5nippet/Capstone-Project-1/pkg/services/pipeline"
)

type RunCmd struct {
	flags    configFlags
	input    string
	output   string
	workers  int
	logLevel string
	reporter pipeline.ReportHandler
}

func NewRunCmd(reporter pipeline.ReportHandler) *cobra.Command {
	rc := &RunCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ingest meter files, compute aggregates and write the dashboard and reports",
		RunE:  rc.run,
	}

	rc.flags.register(cmd)
	cmd.Flags().StringVarP(&rc.input, "input", "i", "", "Directory with per-building meter CSV files (default ./data)")
	cmd.Flags().StringVarP(&rc.output, "output", "o", "", "Directory for generated outputs (default ./output)")
	cmd.Flags().IntVar(&rc.workers, "workers", 0, "Number of files parsed concurrently (default 1)")
	cmd.Flags().StringVar(&rc.logLevel, "log-level", "", "Log level: debug, info, warn, error (default info)")

	return cmd
}

func (rc *RunCmd) run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := rc.flags.load(cmd, map[string]string{
		"input_dir":      "input",
		"output_dir":     "output",
		"ingest.workers": "workers",
		"log.level":      "log-level",
	})
	if err != nil {
		return err
	}

	logFile := logFilePath(cfg)
	sink, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Console: cmd.ErrOrStderr(),
		File:    logFile,
	})
	if err != nil {
		return &domain.ConfigurationError{Path: logFile, Err: err}
	}
	defer sink.Close()

	ctx, logger, runID := logging.WithRun(cmd.Context(), sink.Logger)
	logger.Info().
		Str("input_dir", cfg.InputDir).
		Str("output_dir", cfg.OutputDir).
		Int("workers", cfg.Ingest.Workers).
		Msg("run started")

	ingestor, err := newIngestor(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("run aborted")
		return err
	}

	runner := pipeline.NewRunner(pipeline.Dependencies{
		Ingestor:  ingestor,
		Dashboard: charts.NewDashboard(charts.Options{Width: cfg.Dashboard.Width, Height: cfg.Dashboard.Height}),
		Console:   rc.reporter,
		Summary: func(w io.Writer) pipeline.ReportHandler {
			return export.NewReporter(w)
		},
	}, pipeline.RunnerConfig{
		RunID:         runID,
		SavingsTarget: cfg.Report.SavingsTarget,
		LogFile:       logFile,
	})

	res, err := runner.Run(ctx, cfg.InputDir, cfg.OutputDir)
	if err != nil {
		logger.Error().Err(err).Msg("run aborted")
		return fmt.Errorf("run failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nProcessed %d records from %d of %d files (%d rows rejected)\n",
		res.Table.Len(), res.Ingest.ProcessedFiles(), len(res.Ingest.Files), res.Ingest.RowsRejected())
	fmt.Fprintf(cmd.OutOrStdout(), "Outputs written to %s (run %s)\n", cfg.OutputDir, runID)
	for _, name := range res.Failed {
		fmt.Fprintf(cmd.OutOrStdout(), "Failed to write %s, see the log for details\n", name)
	}
	return nil
}
