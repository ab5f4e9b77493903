package build

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying the step of a phase that failed.
var (
	ErrClean      = errors.New("uibuild: clean error")
	ErrCopy       = errors.New("uibuild: copy error")
	ErrCompile    = errors.New("uibuild: compile error")
	ErrStyleEntry = errors.New("uibuild: style entry error")
	ErrPackage    = errors.New("uibuild: package error")
)

// PhaseError is the structured failure of one phase.
type PhaseError struct {
	Phase PhaseName
	Kind  error // one of the sentinel errors
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *PhaseError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func phaseError(phase PhaseName, kind, err error) *PhaseError {
	return &PhaseError{Phase: phase, Kind: kind, Err: err}
}
