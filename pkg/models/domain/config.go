package domain

import (
	"fmt"
	"strings"
)

// ColumnName identifies a logical input column
type ColumnName string

const (
	ColumnDate     ColumnName = "date"
	ColumnTime     ColumnName = "time"
	ColumnKWh      ColumnName = "kwh"
	ColumnBuilding ColumnName = "building"
)

// Fallback describes what happens when an optional column is absent or blank
type Fallback string

const (
	FallbackNone        Fallback = "reject"
	FallbackUnknownSlot Fallback = "unknown_slot"
	FallbackSourceFile  Fallback = "source_file"
)

const DefaultUnknownSlot = "unknown"

type ColumnSpec struct {
	Name     ColumnName
	Aliases  []string
	Required bool
	Fallback Fallback
}

func (c ColumnSpec) String() string {
	return fmt.Sprintf("%s[%s]", c.Name, strings.Join(c.Aliases, "|"))
}

// Schema enumerates the recognized input columns and their backfill policy
type Schema struct {
	Columns     []ColumnSpec
	DateLayouts []string
	UnknownSlot string
}

// DefaultSchema mirrors the conventional meter export layout:
// date,time,kwh,building_name with time and building optional
func DefaultSchema() Schema {
	return Schema{
		Columns: []ColumnSpec{
			{Name: ColumnDate, Aliases: []string{"date"}, Required: true, Fallback: FallbackNone},
			{Name: ColumnTime, Aliases: []string{"time", "time_slot"}, Fallback: FallbackUnknownSlot},
			{Name: ColumnKWh, Aliases: []string{"kwh"}, Required: true, Fallback: FallbackNone},
			{Name: ColumnBuilding, Aliases: []string{"building_name", "building"}, Fallback: FallbackSourceFile},
		},
		DateLayouts: []string{
			DateLayout,
			"2006/01/02",
			"01/02/2006",
			"2006-01-02 15:04:05",
			"2006-01-02T15:04:05Z07:00",
		},
		UnknownSlot: DefaultUnknownSlot,
	}
}

// Column returns the spec for a logical column
func (s Schema) Column(name ColumnName) (ColumnSpec, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// WithAliases replaces the aliases of a column, ignoring empty lists
func (s Schema) WithAliases(name ColumnName, aliases []string) Schema {
	if len(aliases) == 0 {
		return s
	}
	cols := make([]ColumnSpec, len(s.Columns))
	copy(cols, s.Columns)
	for i := range cols {
		if cols[i].Name == name {
			cols[i].Aliases = append([]string{}, aliases...)
		}
	}
	s.Columns = cols
	return s
}
