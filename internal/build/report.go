package build

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"

	"git.home.luguber.info/inful/uibuild/internal/config"
	"git.home.luguber.info/inful/uibuild/internal/metrics"
)

// Report summarizes a full pipeline run.
type Report struct {
	BuildID  string
	Mode     config.BuildMode
	Start    time.Time
	End      time.Time
	Phases   []PhaseResult
	Canceled bool
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// Phase returns the result recorded for name.
func (r *Report) Phase(name PhaseName) (PhaseResult, bool) {
	for _, p := range r.Phases {
		if p.Phase == name {
			return p, true
		}
	}
	return PhaseResult{}, false
}

// Failed lists the phases that failed, in run order.
func (r *Report) Failed() []PhaseResult {
	var out []PhaseResult
	for _, p := range r.Phases {
		if p.Status == PhaseFailed {
			out = append(out, p)
		}
	}
	return out
}

// Outcome classifies the run as a whole.
func (r *Report) Outcome() metrics.BuildOutcomeLabel {
	failed := len(r.Failed())
	succeeded := 0
	for _, p := range r.Phases {
		if p.OK() {
			succeeded++
		}
	}
	switch {
	case r.Canceled:
		return metrics.BuildOutcomeCanceled
	case failed == 0:
		return metrics.BuildOutcomeSuccess
	case succeeded == 0:
		return metrics.BuildOutcomeFailed
	default:
		return metrics.BuildOutcomePartial
	}
}

// Err aggregates every phase failure, or returns nil when the run succeeded.
func (r *Report) Err() error {
	var result *multierror.Error
	for _, p := range r.Failed() {
		result = multierror.Append(result, p.Err)
	}
	if r.Canceled {
		result = multierror.Append(result, context.Canceled)
	}
	return result.ErrorOrNil()
}
