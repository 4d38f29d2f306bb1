package ingest

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// inferBuilding names a building after its source file, e.g. science_block.csv -> "Science Block"
func (i *Ingestor) inferBuilding(file string) string {
	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if i.opts.Buildings != nil {
		if name, ok := i.opts.Buildings.Lookup(stem); ok {
			return name
		}
	}
	return BuildingFromStem(stem)
}

// BuildingFromStem title-cases a file stem, treating '_' and '-' as word breaks
func BuildingFromStem(stem string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(stem))
	if len(words) == 0 {
		return ""
	}
	// cases.Caser is not safe for concurrent use
	return cases.Title(language.English).String(strings.Join(words, " "))
}
