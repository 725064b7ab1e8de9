// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Status records what happened to one source file during a batch run.
type Status string

const (
	StatusRenamed Status = "renamed"
	StatusCopied  Status = "copied"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// ErrorKind classifies a per-file failure. Every failure is file-scoped;
// the batch always continues with the next file.
type ErrorKind string

const (
	ErrKindUnreadablePDF      ErrorKind = "unreadable_pdf"
	ErrKindNoPages            ErrorKind = "no_pages"
	ErrKindNoTitleFound       ErrorKind = "no_title_found"
	ErrKindFilesystemFault    ErrorKind = "filesystem_fault"
	ErrKindCollisionExhausted ErrorKind = "collision_exhausted"
)

// Outcome is the per-file record of a batch run.
type Outcome struct {
	// Source is the absolute path of the input PDF.
	Source string `json:"source" yaml:"source"`

	// Dest is the final path the file was renamed or copied to.
	// Empty when Status is failed.
	Dest string `json:"dest,omitempty" yaml:"dest,omitempty"`

	// Title is the extracted title the new name was derived from.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	Status Status `json:"status" yaml:"status"`

	// ErrorKind and ErrorMsg are set only when Status is failed.
	ErrorKind ErrorKind `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	ErrorMsg  string    `json:"error_msg,omitempty" yaml:"error_msg,omitempty"`
}

// Summary holds the per-status counts of a batch run.
type Summary struct {
	Renamed int `json:"renamed" yaml:"renamed"`
	Copied  int `json:"copied" yaml:"copied"`
	Skipped int `json:"skipped" yaml:"skipped"`
	Failed  int `json:"failed" yaml:"failed"`
}

// Total returns the total number of files processed.
func (s Summary) Total() int {
	return s.Renamed + s.Copied + s.Skipped + s.Failed
}

// Succeeded returns the number of files that were renamed or copied.
func (s Summary) Succeeded() int {
	return s.Renamed + s.Copied
}

// HasFailures reports whether any file failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// RunReport is the stable record of one batch run, returned to the caller
// and persisted by the history store.
type RunReport struct {
	InputDir  string `json:"input_dir" yaml:"input_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	InPlace   bool   `json:"in_place" yaml:"in_place"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	Summary  Summary   `json:"summary" yaml:"summary"`
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`
}

// Finalize normalizes timestamps to UTC and recomputes Summary from
// Outcomes. Outcomes keep their processing order; the scan order is
// already deterministic.
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	var s Summary
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusRenamed:
			s.Renamed++
		case StatusCopied:
			s.Copied++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	r.Summary = s
}
