package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
)

const DefaultExtension = ".csv"

// BuildingNamer resolves a display name for a source file stem
type BuildingNamer interface {
	Lookup(stem string) (string, bool)
}

type Options struct {
	Extension string
	Schema    domain.Schema
	Buildings BuildingNamer
	// Workers > 1 parses files concurrently; merge order stays the discovered-file order
	Workers int
}

func DefaultOptions() Options {
	return Options{
		Extension: DefaultExtension,
		Schema:    domain.DefaultSchema(),
		Workers:   1,
	}
}

// Ingestor discovers, parses and validates meter files into a CombinedTable
type Ingestor struct {
	opts    Options
	logger  zerolog.Logger
	summary domain.IngestSummary
}

func New(opts Options, logger zerolog.Logger) *Ingestor {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if !strings.HasPrefix(opts.Extension, ".") {
		opts.Extension = "." + opts.Extension
	}
	if len(opts.Schema.Columns) == 0 {
		opts.Schema = domain.DefaultSchema()
	}
	if opts.Schema.UnknownSlot == "" {
		opts.Schema.UnknownSlot = domain.DefaultUnknownSlot
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Ingestor{opts: opts, logger: logger}
}

// Discover lists the files in dir that carry the configured extension, sorted by name
func (i *Ingestor) Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &domain.ConfigurationError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &domain.ConfigurationError{Path: dir, Err: fmt.Errorf("not a directory")}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.ConfigurationError{Path: dir, Err: err}
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if !strings.EqualFold(filepath.Ext(e.Name()), i.opts.Extension) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		mode := e.Type()
		if mode&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				i.logger.Warn().Err(err).Str("file", e.Name()).Msg("skipping unresolvable link")
				continue
			}
			mode = target.Mode()
		}
		if !mode.IsRegular() {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	i.logger.Info().
		Str("dir", dir).
		Int("files", len(paths)).
		Msg("input discovery complete")
	for _, p := range paths {
		i.logger.Info().Str("file", filepath.Base(p)).Msg("discovered input file")
	}

	return paths, nil
}

type fileResult struct {
	records []domain.Record
	summary domain.FileSummary
}

// Ingest runs discover, parse and validate over every file in dir.
// Only a missing/unreadable dir (or ctx cancellation) is returned as an error.
func (i *Ingestor) Ingest(ctx context.Context, dir string) (*domain.CombinedTable, error) {
	i.summary = domain.IngestSummary{}

	paths, err := i.Discover(dir)
	if err != nil {
		return nil, err
	}

	results := make([]fileResult, len(paths))
	if i.opts.Workers > 1 && len(paths) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(i.opts.Workers)
		for idx, path := range paths {
			idx, path := idx, path
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[idx] = i.ingestFile(path)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("ingesting %s: %w", dir, err)
		}
	} else {
		for idx, path := range paths {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("ingesting %s: %w", dir, err)
			}
			results[idx] = i.ingestFile(path)
		}
	}

	table := domain.NewCombinedTable()
	for _, res := range results {
		i.summary.Files = append(i.summary.Files, res.summary)
		if res.summary.Status != domain.FileProcessed {
			continue
		}
		table.Sources = append(table.Sources, res.summary.File)
		table.Records = append(table.Records, res.records...)
	}

	if table.IsEmpty() {
		i.logger.Warn().Str("dir", dir).Msg("no valid records found")
	}
	i.logger.Info().
		Int("records", table.Len()).
		Int("files_processed", i.summary.ProcessedFiles()).
		Int("files_invalid", i.summary.InvalidFiles()).
		Int("rows_rejected", i.summary.RowsRejected()).
		Msg("combined table built")

	return table, nil
}

// Summary returns the diagnostics of the last Ingest call
func (i *Ingestor) Summary() domain.IngestSummary {
	files := make([]domain.FileSummary, len(i.summary.Files))
	copy(files, i.summary.Files)
	return domain.IngestSummary{Files: files}
}

func (i *Ingestor) ingestFile(path string) fileResult {
	name := filepath.Base(path)
	log := i.logger.With().Str("file", name).Logger()

	rows, fs, err := i.Parse(path)
	if err != nil {
		fs.Status = domain.FileInvalid
		fs.Reason = err.Error()
		log.Warn().Err(err).Msg("file skipped")
		return fileResult{summary: fs}
	}

	records := make([]domain.Record, 0, len(rows))
	for _, raw := range rows {
		rec, err := i.Validate(raw)
		if err != nil {
			fs.ValidateRejected++
			log.Warn().Int("line", raw.Line).Err(err).Msg("row rejected")
			continue
		}
		records = append(records, rec)
	}
	fs.RowsAccepted = len(records)

	if fs.RowsRead == 0 {
		fs.Status = domain.FileEmpty
		fs.Reason = "no data rows"
		log.Warn().Msg("file has no data rows")
		return fileResult{summary: fs}
	}

	fs.Status = domain.FileProcessed
	log.Info().
		Int("rows_read", fs.RowsRead).
		Int("rows_accepted", fs.RowsAccepted).
		Int("rows_rejected", fs.RowsRejected()).
		Msg("file ingested")

	return fileResult{records: records, summary: fs}
}
