package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
)

// RawRow is one structurally valid data row, keyed by logical column.
// A column absent from the header has no key; a blank cell maps to "".
type RawRow struct {
	File   string
	Line   int
	Fields map[domain.ColumnName]string
}

// Parse reads one CSV file. Malformed rows are logged and counted, not returned.
// A returned error means the whole file is unusable.
func (i *Ingestor) Parse(path string) ([]RawRow, domain.FileSummary, error) {
	name := filepath.Base(path)
	fs := domain.FileSummary{File: name}

	f, err := os.Open(path)
	if err != nil {
		return nil, fs, &domain.ParseError{File: name, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	rows, err := i.parseStream(f, name, &fs)
	if err != nil {
		return nil, fs, err
	}
	return rows, fs, nil
}

func (i *Ingestor) parseStream(stream io.Reader, name string, fs *domain.FileSummary) ([]RawRow, error) {
	reader := csv.NewReader(stream)
	// column count is checked per row against the header
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &domain.ParseError{File: name, Reason: "file is empty"}
		}
		return nil, &domain.ParseError{File: name, Line: 1, Reason: "unreadable header", Err: err}
	}

	columns, err := resolveColumns(header, i.opts.Schema)
	if err != nil {
		return nil, &domain.ParseError{File: name, Line: 1, Reason: err.Error()}
	}
	if _, ok := columns[domain.ColumnBuilding]; !ok {
		fs.BuildingInferred = true
	}

	log := i.logger.With().Str("file", name).Logger()

	var rows []RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fs.RowsRead++
			fs.ParseRejected++
			pe := &domain.ParseError{File: name, Reason: "malformed row", Err: err}
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				pe.Line = csvErr.StartLine
			}
			log.Warn().Int("line", pe.Line).Err(pe).Msg("row rejected")
			continue
		}

		fs.RowsRead++
		line, _ := reader.FieldPos(0)

		if len(record) != len(header) {
			fs.ParseRejected++
			pe := &domain.ParseError{
				File:   name,
				Line:   line,
				Reason: fmt.Sprintf("expected %d columns, got %d", len(header), len(record)),
			}
			log.Warn().Int("line", line).Err(pe).Msg("row rejected")
			continue
		}

		fields := make(map[domain.ColumnName]string, len(columns))
		for col, idx := range columns {
			fields[col] = strings.TrimSpace(record[idx])
		}
		rows = append(rows, RawRow{File: name, Line: line, Fields: fields})
	}

	return rows, nil
}

// resolveColumns maps each recognized logical column to its header index
func resolveColumns(header []string, schema domain.Schema) (map[domain.ColumnName]int, error) {
	index := make(map[string]int, len(header))
	for idx, h := range header {
		key := normalizeHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = idx
		}
	}

	columns := make(map[domain.ColumnName]int)
	var missing []string
	for _, spec := range schema.Columns {
		found := false
		for _, alias := range spec.Aliases {
			if idx, ok := index[normalizeHeader(alias)]; ok {
				columns[spec.Name] = idx
				found = true
				break
			}
		}
		if !found && spec.Required {
			missing = append(missing, string(spec.Name))
		}
	}

	if len(missing) > 0 {
		got := make([]string, len(header))
		for idx, h := range header {
			got[idx] = normalizeHeader(h)
		}
		return nil, fmt.Errorf("missing required columns %v, got %v", missing, got)
	}
	return columns, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}
