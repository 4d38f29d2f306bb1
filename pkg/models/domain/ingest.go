package domain

type FileStatus string

const (
	FileProcessed FileStatus = "processed"
	FileEmpty     FileStatus = "empty"
	FileInvalid   FileStatus = "invalid"
)

// FileSummary counts what happened to the rows of one input file
type FileSummary struct {
	File             string
	Status           FileStatus
	Reason           string
	RowsRead         int
	RowsAccepted     int
	ParseRejected    int
	ValidateRejected int
	BuildingInferred bool
}

func (f FileSummary) RowsRejected() int {
	return f.ParseRejected + f.ValidateRejected
}

// IngestSummary is the diagnostic result of one ingest run
type IngestSummary struct {
	Files []FileSummary
}

func (s IngestSummary) RowsRead() int {
	n := 0
	for _, f := range s.Files {
		n += f.RowsRead
	}
	return n
}

func (s IngestSummary) RowsAccepted() int {
	n := 0
	for _, f := range s.Files {
		n += f.RowsAccepted
	}
	return n
}

func (s IngestSummary) RowsRejected() int {
	n := 0
	for _, f := range s.Files {
		n += f.RowsRejected()
	}
	return n
}

func (s IngestSummary) ProcessedFiles() int {
	return s.countStatus(FileProcessed)
}

// InvalidFiles counts files excluded entirely, including empty ones
func (s IngestSummary) InvalidFiles() int {
	return len(s.Files) - s.ProcessedFiles()
}

func (s IngestSummary) countStatus(status FileStatus) int {
	n := 0
	for _, f := range s.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}
