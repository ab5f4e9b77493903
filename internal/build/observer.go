package build

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/uibuild/internal/logfields"
	"git.home.luguber.info/inful/uibuild/internal/metrics"
	"git.home.luguber.info/inful/uibuild/internal/observability"
)

// Observer receives callbacks around phase execution and the build lifecycle.
type Observer interface {
	OnPhaseStart(ctx context.Context, phase PhaseName)
	OnPhaseComplete(ctx context.Context, result PhaseResult)
	OnBuildComplete(ctx context.Context, report *Report)
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnPhaseStart(context.Context, PhaseName)     {}
func (NoopObserver) OnPhaseComplete(context.Context, PhaseResult) {}
func (NoopObserver) OnBuildComplete(context.Context, *Report)     {}

// logObserver reports every phase as started, succeeded or failed.
type logObserver struct{}

func (logObserver) OnPhaseStart(ctx context.Context, phase PhaseName) {
	observability.InfoContext(ctx, "Phase started", logfields.Phase(string(phase)))
}

func (logObserver) OnPhaseComplete(ctx context.Context, r PhaseResult) {
	attrs := []slog.Attr{logfields.Phase(string(r.Phase)), logfields.Duration(r.Duration)}
	switch r.Status {
	case PhaseSucceeded:
		if r.Files != nil {
			attrs = append(attrs,
				slog.Int64("scripts", r.Files.Scripts),
				slog.Int64("styles", r.Files.Styles),
				slog.Int64("components", r.Files.Components),
				slog.Int64("removed", r.Files.Removed))
		}
		observability.InfoContext(ctx, "Phase succeeded", attrs...)
	case PhaseFailed:
		observability.ErrorContext(ctx, "Phase failed", append(attrs, logfields.Error(r.Err))...)
	case PhaseSkipped:
		observability.WarnContext(ctx, "Phase skipped", logfields.Phase(string(r.Phase)))
	}
}

func (logObserver) OnBuildComplete(ctx context.Context, report *Report) {
	attrs := []slog.Attr{
		slog.String("outcome", string(report.Outcome())),
		logfields.Duration(report.Duration()),
		logfields.Mode(string(report.Mode)),
	}
	if failed := report.Failed(); len(failed) > 0 {
		observability.ErrorContext(ctx, "Build finished with failures", append(attrs, logfields.Count(len(failed)))...)
		return
	}
	observability.InfoContext(ctx, "Build finished", attrs...)
}

// recorderObserver adapts metrics.Recorder into an Observer.
type recorderObserver struct{ rec metrics.Recorder }

func (recorderObserver) OnPhaseStart(context.Context, PhaseName) {}

func (r recorderObserver) OnPhaseComplete(_ context.Context, result PhaseResult) {
	if result.Status != PhaseSkipped {
		r.rec.ObservePhaseDuration(result.Phase.Key(), result.Duration)
	}
	r.rec.IncPhaseResult(result.Phase.Key(), result.Status.resultLabel())
}

func (r recorderObserver) OnBuildComplete(_ context.Context, report *Report) {
	r.rec.ObserveBuildDuration(report.Duration())
	r.rec.IncBuildOutcome(report.Outcome())
}

type multiObserver []Observer

func (m multiObserver) OnPhaseStart(ctx context.Context, phase PhaseName) {
	for _, o := range m {
		o.OnPhaseStart(ctx, phase)
	}
}

func (m multiObserver) OnPhaseComplete(ctx context.Context, result PhaseResult) {
	for _, o := range m {
		o.OnPhaseComplete(ctx, result)
	}
}

func (m multiObserver) OnBuildComplete(ctx context.Context, report *Report) {
	for _, o := range m {
		o.OnBuildComplete(ctx, report)
	}
}
