package build

import (
	"time"

	"git.home.luguber.info/inful/uibuild/internal/compile"
	"git.home.luguber.info/inful/uibuild/internal/metrics"
)

// PhaseName is the human-readable label a phase is reported under.
type PhaseName string

const (
	PhaseClean    PhaseName = "clean"
	PhaseESModule PhaseName = "Build esmodule outputs"
	PhaseCommonJS PhaseName = "Build commonjs outputs"
	PhaseStyle    PhaseName = "Build style entry"
	PhasePacked   PhaseName = "Build packed outputs"
)

var phaseKeys = map[PhaseName]string{
	PhaseClean:    "clean",
	PhaseESModule: "esmodule",
	PhaseCommonJS: "commonjs",
	PhaseStyle:    "style_entry",
	PhasePacked:   "packed",
}

// Key is the short identifier used as a metrics label.
func (p PhaseName) Key() string {
	if k, ok := phaseKeys[p]; ok {
		return k
	}
	return string(p)
}

// PhaseStatus is the outcome of a single phase.
type PhaseStatus string

const (
	PhaseSucceeded PhaseStatus = "success"
	PhaseFailed    PhaseStatus = "failed"
	PhaseSkipped   PhaseStatus = "skipped"
)

func (s PhaseStatus) resultLabel() metrics.ResultLabel {
	switch s {
	case PhaseSucceeded:
		return metrics.ResultSuccess
	case PhaseSkipped:
		return metrics.ResultSkipped
	default:
		return metrics.ResultFailed
	}
}

// PhaseResult is what every phase driver returns.
type PhaseResult struct {
	Phase    PhaseName
	Status   PhaseStatus
	Duration time.Duration
	Err      error          // *PhaseError when Status is failed
	Files    *compile.Stats // set by the two compile phases
}

// OK reports whether the phase succeeded.
func (r PhaseResult) OK() bool { return r.Status == PhaseSucceeded }

func skipped(phase PhaseName) PhaseResult {
	return PhaseResult{Phase: phase, Status: PhaseSkipped}
}
