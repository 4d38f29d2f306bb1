package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ValidateCmd struct {
	flags configFlags
	input string
}

func NewValidateCmd() *cobra.Command {
	vc := &ValidateCmd{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check input files without writing any output",
		RunE:  vc.run,
	}

	vc.flags.register(cmd)
	cmd.Flags().StringVarP(&vc.input, "input", "i", "", "Directory with per-building meter CSV files (default ./data)")

	return cmd
}

func (vc *ValidateCmd) run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := vc.flags.load(cmd, map[string]string{"input_dir": "input"})
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(zerolog.WarnLevel).
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
	summary := ingestor.Summary()

	out := cmd.OutOrStdout()
	if len(summary.Files) == 0 {
		fmt.Fprintf(out, "No %s files found in %s\n", cfg.Ingest.Extension, cfg.InputDir)
		return nil
	}

	r := lipgloss.NewRenderer(out)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle()).
		Headers("File", "Status", "Read", "Accepted", "Rejected", "Reason").
		StyleFunc(func(row, col int) lipgloss.Style {
			return r.NewStyle().Padding(0, 1)
		})
	for _, f := range summary.Files {
		t.Row(f.File, string(f.Status),
			strconv.Itoa(f.RowsRead), strconv.Itoa(f.RowsAccepted), strconv.Itoa(f.RowsRejected()), f.Reason)
	}

	fmt.Fprintln(out, t.String())
	fmt.Fprintf(out, "%d valid records, %d of %d files usable, %d rows rejected\n",
		tbl.Len(), summary.ProcessedFiles(), len(summary.Files), summary.RowsRejected())
	return nil
}
