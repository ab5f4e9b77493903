package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/uibuild/internal/config"
	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
	"git.home.luguber.info/inful/uibuild/internal/metrics"
)

// BuildService is the canonical interface for executing builds.
// The CLI build and watch commands are thin wrappers over it.
type BuildService interface {
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	// Config is the loaded configuration for this build.
	Config *config.Config

	// Options override the corresponding configuration values when set.
	Options BuildOptions
}

// BuildOptions provides optional overrides of build behavior.
type BuildOptions struct {
	// Mode overrides build.mode (production or development).
	Mode config.BuildMode

	// FailFast aborts the remaining phases after the first failure.
	FailFast bool

	// Concurrency overrides build.concurrency when positive.
	Concurrency int
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	Status    BuildStatus
	Report    *Report
	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time

	// FilesProcessed counts files compiled or removed across both compile phases.
	FilesProcessed int64
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	BuildStatusSuccess   BuildStatus = "success"
	BuildStatusPartial   BuildStatus = "partial"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess
}

// DefaultBuildService runs builds through a Pipeline.
type DefaultBuildService struct {
	recorder        metrics.Recorder
	pipelineOptions []Option
}

// NewBuildService creates a DefaultBuildService.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder handed to every pipeline.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithPipelineOptions adds options applied to every pipeline.
func (s *DefaultBuildService) WithPipelineOptions(opts ...Option) *DefaultBuildService {
	s.pipelineOptions = append(s.pipelineOptions, opts...)
	return s
}

// Run executes the complete pipeline. The returned error aggregates every failed phase.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	if req.Config == nil {
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return &BuildResult{Status: BuildStatusFailed}, errors.ConfigError("config required").Build()
	}

	cfg := *req.Config
	if req.Options.Mode != "" {
		cfg.Build.Mode = req.Options.Mode
	}
	if req.Options.FailFast {
		cfg.Build.FailFast = true
	}
	if req.Options.Concurrency > 0 {
		cfg.Build.Concurrency = req.Options.Concurrency
	}

	opts := append([]Option{WithRecorder(s.recorder)}, s.pipelineOptions...)
	report := NewPipeline(&cfg, opts...).Run(ctx)

	result := &BuildResult{
		Report:    report,
		StartTime: report.Start,
		EndTime:   report.End,
		Duration:  report.Duration(),
	}
	for _, p := range report.Phases {
		if p.Files != nil {
			result.FilesProcessed += p.Files.Scripts + p.Files.Styles + p.Files.Components + p.Files.Removed
		}
	}

	switch report.Outcome() {
	case metrics.BuildOutcomeSuccess:
		result.Status = BuildStatusSuccess
		return result, nil
	case metrics.BuildOutcomeCanceled:
		result.Status = BuildStatusCancelled
		return result, errors.WrapError(report.Err(), errors.CategoryRuntime, "build canceled").Build()
	case metrics.BuildOutcomePartial:
		result.Status = BuildStatusPartial
	default:
		result.Status = BuildStatusFailed
	}
	return result, errors.WrapError(report.Err(), errors.CategoryBuild, "build failed").
		WithContext("failed_phases", len(report.Failed())).
		Build()
}
