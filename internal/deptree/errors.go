package deptree

import (
	"errors"
	"fmt"
)

// Sentinel kinds for every illegal lifecycle transition, one per row of the
// transition table. Finishing a failed target and failing a finished one
// share ErrFinishFailed. Match with errors.Is.
var (
	ErrAlreadyStarted  = errors.New("already started")
	ErrStartedFailed   = errors.New("cannot start a failed target")
	ErrStartedFinished = errors.New("cannot start a finished target")
	ErrNotYetStarted   = errors.New("not yet started")
	ErrAlreadyFinished = errors.New("already finished")
	ErrFinishFailed    = errors.New("finish and fail are mutually exclusive")
	ErrUnstartedFailed = errors.New("cannot fail a target that never started")
	ErrAlreadyFailed   = errors.New("already failed")
)

// TransitionError reports an illegal lifecycle transition, carrying the name
// of the offending target. It wraps one of the sentinel kinds above.
type TransitionError struct {
	Kind   error
	Target string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("target %q: %s", e.Target, e.Kind)
}

func (e *TransitionError) Unwrap() error {
	return e.Kind
}

func (t *Tree[A]) transitionError(kind error, h Handle) error {
	return &TransitionError{Kind: kind, Target: t.targets[h].name}
}
