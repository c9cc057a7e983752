package deptree

import "fmt"

// State is the lifecycle state of a target. Every target is created Unstarted
// and advances through Started to exactly one of the terminal states; the
// machine never reverses and never skips.
type State int

const (
	// Unstarted is the initial state of every target.
	Unstarted State = iota
	// Started means the target's work has been dispatched and not yet reported.
	Started
	// Failed is the terminal state of a target whose work was reported failed.
	Failed
	// Finished is the terminal state of a target whose work completed.
	Finished
)

// Terminal reports whether the state ends the lifecycle.
func (s State) Terminal() bool {
	return s == Failed || s == Finished
}

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Started:
		return "started"
	case Failed:
		return "failed"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
