package domain

import "time"

// Report represents a complete analysis report
type Report struct {
	Title       string
	Period      TimePeriod
	HasPeriod   bool
	Sections    []ReportSection
	TotalAmount float64
	Unit        string
	GeneratedAt time.Time
	RunID       string
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Details []ReportDetail
	Notes   []string
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
