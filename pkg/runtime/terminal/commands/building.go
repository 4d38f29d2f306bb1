package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
	"github.com/open5nippet/Capstone-Project-1/pkg/services/pipeline"
	"github.com/open5nippet/Capstone-Project-1/pkg/services/report"
)

type BuildingCmd struct {
	flags    configFlags
	input    string
	date     string
	reporter pipeline.ReportHandler
}

func NewBuildingCmd(reporter pipeline.ReportHandler) *cobra.Command {
	bc := &BuildingCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "building NAME",
		Short: "Show one building's statistics, daily totals and optionally its time slots on a date",
		Args:  cobra.ExactArgs(1),
		RunE:  bc.run,
	}

	bc.flags.register(cmd)
	cmd.Flags().StringVarP(&bc.input, "input", "i", "", "Directory with per-building meter CSV files (default ./data)")
	cmd.Flags().StringVarP(&bc.date, "date", "d", "", "Day to break down by time slot (YYYY-MM-DD)")

	return cmd
}

func (bc *BuildingCmd) run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	var date time.Time
	if bc.date != "" {
		parsed, err := time.Parse(domain.DateLayout, bc.date)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", bc.date, err)
		}
		date = parsed
	}

	cfg, err := bc.flags.load(cmd, map[string]string{"input_dir": "input"})
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(zerolog.ErrorLevel).
		With().
		Timestamp().
		Logger()

	ingestor, err := newIngestor(cfg, logger)
	if err != nil {
		return err
	}
	tbl, err := ingestor.Ingest(cmd.Context(), cfg.InputDir)
	if err != nil {
		return err
	}

	r, ok := report.BuildingDrillDown(tbl, args[0], date)
	if !ok {
		return fmt.Errorf("no readings found for building %q", args[0])
	}
	return bc.reporter.Handle(r)
}
