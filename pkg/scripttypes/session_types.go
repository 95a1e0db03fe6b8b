package scripttypes

import "time"

// State is the lifecycle state of a script session.
type State int

const (
	// StateInit - workspace being created
	StateInit State = iota
	// StateRunning - script lines being dispatched
	StateRunning
	// StateCompleted - all lines processed or stopped by render/abort
	StateCompleted
	// StateFailed - a script error ended processing
	StateFailed
	// StateCleanup - attachments copied out, workspace removed
	StateCleanup
	// StateDone - session released
	StateDone
)

// String returns a human-readable representation of the session state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	case StateFailed:
		return "Failed"
	case StateCleanup:
		return "Cleanup"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Policy decides what happens to the rest of the script when a command fails.
type Policy int

const (
	// PolicyAbort stops processing the remaining lines
	PolicyAbort Policy = iota
	// PolicyContinue reports the failure and moves on to the next line
	PolicyContinue
)

// String returns a human-readable representation of the policy.
func (p Policy) String() string {
	if p == PolicyContinue {
		return "continue"
	}
	return "abort"
}

// Signal is the control value a dispatched line hands back to the loop.
type Signal int

const (
	// SignalNext proceeds to the next line
	SignalNext Signal = iota
	// SignalAbort ends processing after a failed command
	SignalAbort
	// SignalStop ends processing after render
	SignalStop
)

// String returns a human-readable representation of the signal.
func (s Signal) String() string {
	switch s {
	case SignalNext:
		return "next"
	case SignalAbort:
		return "abort"
	case SignalStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Attachment is a declared output of a session.
type Attachment struct {
	File string `json:"file"`
	Name string `json:"name"`
}

// Result is returned by a script run.
type Result struct {
	Elapsed     time.Duration `json:"elapsed"`
	Attachments []Attachment  `json:"attachments"`
}

// ElapsedSeconds returns the elapsed wall-clock time in seconds.
func (r *Result) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}
