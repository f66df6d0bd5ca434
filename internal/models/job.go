package models

import "time"

type Mode string

const (
	ModeSingle      Mode = "single"
	ModeTwoPass     Mode = "two-pass"
	ModeInfiniteHop Mode = "infinite-hop"
)

type JobStatus string

const (
	JobStatusRunning  JobStatus = "running"
	JobStatusComplete JobStatus = "complete"
	JobStatusFailed   JobStatus = "failed"
)

// Reason records why a job reached a terminal state.
type Reason string

const (
	// ReasonCompleted is the normal end of single and two-pass jobs.
	ReasonCompleted Reason = "completed"
	// ReasonUserSatisfied means the user accepted the result in the dialog.
	ReasonUserSatisfied Reason = "user-satisfied"
	// ReasonDialogUnavailable means no dialog backend could be found, so
	// the loop stopped after the last good pass.
	ReasonDialogUnavailable Reason = "dialog-unavailable"
	// ReasonToolFailure means a rembg invocation failed.
	ReasonToolFailure Reason = "tool-failure"
	// ReasonMaxPasses means the configured safety cap was reached.
	ReasonMaxPasses Reason = "max-passes"
)

// Job describes one processing request. It is built once from the CLI and
// config and never mutated during processing.
type Job struct {
	InputPath    string // absolute
	Mode         Mode
	Model        string
	OutputSuffix string
	OutputPath   string // explicit -o override; single-pass only, "" = naming policy
	Quiet        bool
	Notify       bool
	MaxPasses    int // infinite-hop cap, 0 = unbounded
}

// JobRecord is a persisted job row in the history database.
type JobRecord struct {
	ID          int64
	CreatedAt   time.Time
	CompletedAt *time.Time
	InputPath   string
	Mode        Mode
	Model       string
	Status      JobStatus
	Reason      Reason
	FinalPath   string
	Error       string
}
