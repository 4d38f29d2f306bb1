package domain

import "time"

// DateLayout is the canonical serialized form of a reading date
const DateLayout = "2006-01-02"

// Record is a single validated meter observation
type Record struct {
	Date     time.Time // UTC midnight
	TimeSlot string    // "08:00" or the unknown slot label
	KWh      float64
	Building string

	// Provenance, used for diagnostics only
	Source string
	Line   int
}

// CombinedTable holds every validated record of a run in file-then-row order
type CombinedTable struct {
	Records []Record
	Sources []string
}

// NewCombinedTable returns an empty, non-nil table
func NewCombinedTable() *CombinedTable {
	return &CombinedTable{
		Records: []Record{},
		Sources: []string{},
	}
}

func (t *CombinedTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

func (t *CombinedTable) IsEmpty() bool {
	return t.Len() == 0
}
