package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
)

var slotLayouts = []string{"15:04", "15:04:05"}

// Validate turns a raw row into a Record, applying the schema's backfill policy
func (i *Ingestor) Validate(raw RawRow) (domain.Record, error) {
	invalid := func(field domain.ColumnName, reason string) error {
		return &domain.ValidationError{File: raw.File, Line: raw.Line, Field: field, Reason: reason}
	}

	dateStr := raw.Fields[domain.ColumnDate]
	if dateStr == "" {
		return domain.Record{}, invalid(domain.ColumnDate, "missing value")
	}
	date, ok := parseDate(dateStr, i.opts.Schema.DateLayouts)
	if !ok {
		return domain.Record{}, invalid(domain.ColumnDate, "unrecognized date "+strconv.Quote(dateStr))
	}

	kwhStr := raw.Fields[domain.ColumnKWh]
	if kwhStr == "" {
		return domain.Record{}, invalid(domain.ColumnKWh, "missing value")
	}
	kwh, err := strconv.ParseFloat(kwhStr, 64)
	if err != nil || isHexFloat(kwhStr) {
		return domain.Record{}, invalid(domain.ColumnKWh, "not a number "+strconv.Quote(kwhStr))
	}
	if math.IsNaN(kwh) || math.IsInf(kwh, 0) {
		return domain.Record{}, invalid(domain.ColumnKWh, "not finite")
	}
	if kwh < 0 {
		return domain.Record{}, invalid(domain.ColumnKWh, "negative reading "+kwhStr)
	}
	if kwh == 0 {
		// drop the sign of -0
		kwh = 0
	}

	slot, reason := i.optional(raw, domain.ColumnTime)
	if reason != "" {
		return domain.Record{}, invalid(domain.ColumnTime, reason)
	}
	building, reason := i.optional(raw, domain.ColumnBuilding)
	if reason != "" {
		return domain.Record{}, invalid(domain.ColumnBuilding, reason)
	}

	return domain.Record{
		Date:     date,
		TimeSlot: normalizeSlot(slot, i.opts.Schema.UnknownSlot),
		KWh:      kwh,
		Building: building,
		Source:   raw.File,
		Line:     raw.Line,
	}, nil
}

// optional returns the value of an optional column, or applies the column's fallback when it is blank.
// A non-empty reason means the row must be rejected.
func (i *Ingestor) optional(raw RawRow, name domain.ColumnName) (string, string) {
	if value := strings.TrimSpace(raw.Fields[name]); value != "" {
		return value, ""
	}

	spec, _ := i.opts.Schema.Column(name)
	switch spec.Fallback {
	case domain.FallbackUnknownSlot:
		return i.opts.Schema.UnknownSlot, ""
	case domain.FallbackSourceFile:
		if building := i.inferBuilding(raw.File); building != "" {
			return building, ""
		}
		return "", "cannot infer building"
	default:
		return "", "missing value"
	}
}

// isHexFloat reports hex notation such as 0x1p3, which ParseFloat accepts
func isHexFloat(s string) bool {
	s = strings.ToLower(strings.TrimLeft(strings.TrimSpace(s), "+-"))
	return strings.HasPrefix(s, "0x")
}

// parseDate tries each layout in order and truncates the match to UTC midnight
func parseDate(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func normalizeSlot(s, unknown string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return unknown
	}
	for _, layout := range slotLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	return s
}
