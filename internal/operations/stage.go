package operations

import "context"

// Stage processes CSV files one at a time
type Stage interface {
	// Name identifies the stage in logs and telemetry
	Name() string

	// ProcessFile handles one file. A returned error marks the file as
	// failed; it never stops the run.
	ProcessFile(ctx context.Context, path string) error
}

// FileFilter is implemented by stages that ignore some CSV files
type FileFilter interface {
	Accept(name string) bool
}

// FileStatus is the outcome of one file
type FileStatus string

const (
	FileStatusProcessed FileStatus = "processed"
	FileStatusFailed    FileStatus = "failed"
	FileStatusSkipped   FileStatus = "skipped"
)

// FileResult records what happened to one file
type FileResult struct {
	Name   string
	Status FileStatus
	Error  error
}

// Summary is the outcome of one run
type Summary struct {
	Stage     string
	Processed int
	Failed    int
	Skipped   int
	Files     []FileResult
}
