package pipeline

import (
	"errors"
	"fmt"
)

// State is where a file is in its trip through the pipeline.
type State int

// File states, in transition order. StateFailed is reachable from any
// non-terminal state.
const (
	StateListed State = iota
	StateDownloaded
	StateConverted
	StateStaged
	StateNormalized
	StateFinalized
	StateFailed
)

var stateNames = map[State]string{
	StateListed:     "listed",
	StateDownloaded: "downloaded",
	StateConverted:  "converted",
	StateStaged:     "staged",
	StateNormalized: "normalized",
	StateFinalized:  "finalized",
	StateFailed:     "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateFinalized || s == StateFailed
}

// Kind classifies a stage failure.
type Kind string

// Failure kinds.
const (
	KindStorage       Kind = "storage"
	KindConversion    Kind = "conversion"
	KindNormalization Kind = "normalization"
	KindCleanup       Kind = "cleanup"
)

// StageError records which transition failed and from which state.
type StageError struct {
	Kind  Kind
	State State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failure after %s: %v", e.Kind, e.State, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first StageError in err's chain, or ""
// when there is none.
func KindOf(err error) Kind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}

	return ""
}
