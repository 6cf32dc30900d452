package step

import "time"

// Status is the terminal state of a step within one orchestration run.
type Status int

const (
	// StatusSkipped means the staleness predicate found the output
	// present; the command was not invoked.
	StatusSkipped Status = iota
	// StatusRan means the step executed and succeeded.
	StatusRan
	// StatusPlanned means a dry run determined the step would execute.
	StatusPlanned
	// StatusFailed means the step executed and failed, or was abandoned
	// because an upstream step failed.
	StatusFailed
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusRan:
		return "ran"
	case StatusPlanned:
		return "planned"
	default:
		return "failed"
	}
}

// Result records the outcome of one step in one run.
type Result struct {
	StepID   string
	Status   Status
	Err      error
	Duration time.Duration
}
