package models

import "time"

// PassResult is the outcome of a single rembg invocation. Indexes are
// 1-based and contiguous within a job; each pass writes a distinct output
// path and never overwrites an earlier one.
type PassResult struct {
	Index      int
	InputPath  string
	OutputPath string
	OK         bool
	Error      string
	Duration   time.Duration
}

// Outcome is the terminal result of one job.
type Outcome struct {
	OK        bool
	Reason    Reason
	FinalPath string // "" on failure
	Passes    []PassResult
}

// TotalPasses reports how many passes actually ran, including a trailing
// failed one.
func (o Outcome) TotalPasses() int {
	return len(o.Passes)
}

// PassRecord is a persisted pass row in the history database.
type PassRecord struct {
	ID         int64
	JobID      int64
	PassNum    int
	InputPath  string
	OutputPath string
	OK         bool
	Error      string
	DurationMS int64
}
