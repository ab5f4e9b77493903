package build

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/uibuild/internal/bundle"
	"git.home.luguber.info/inful/uibuild/internal/classify"
	"git.home.luguber.info/inful/uibuild/internal/compile"
	"git.home.luguber.info/inful/uibuild/internal/config"
	"git.home.luguber.info/inful/uibuild/internal/entry"
	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
	"git.home.luguber.info/inful/uibuild/internal/fsutil"
	"git.home.luguber.info/inful/uibuild/internal/logfields"
	"git.home.luguber.info/inful/uibuild/internal/metrics"
	"git.home.luguber.info/inful/uibuild/internal/observability"
	"git.home.luguber.info/inful/uibuild/internal/styles"
	"git.home.luguber.info/inful/uibuild/internal/transform"
)

// Pipeline runs the build phases for one project configuration.
type Pipeline struct {
	cfg          *config.Config
	classifier   *classify.Classifier
	transformers transform.Set
	styles       *styles.Generator
	bundler      bundle.Bundler
	recorder     metrics.Recorder
	observer     Observer
	failFast     bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTransformers replaces the per-file transformers.
func WithTransformers(set transform.Set) Option {
	return func(p *Pipeline) { p.transformers = set }
}

// WithBundler replaces the package bundler.
func WithBundler(b bundle.Bundler) Option {
	return func(p *Pipeline) { p.bundler = b }
}

// WithRecorder reports phase, build and file metrics to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithObserver adds an observer next to the built-in phase reporter.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = multiObserver{p.observer, o} }
}

// NewPipeline wires the default esbuild-backed transformers and bundler for cfg.
func NewPipeline(cfg *config.Config, opts ...Option) *Pipeline {
	script := transform.NewScriptCompiler(cfg)
	style := transform.NewStyleCompiler(cfg, nil)
	p := &Pipeline{
		cfg:        cfg,
		classifier: classify.New(cfg.Conventions),
		transformers: transform.Set{
			Script:    script,
			Style:     style,
			Component: transform.NewComponentCompiler(cfg, script, style, nil),
		},
		styles:   styles.NewGenerator(cfg),
		bundler:  bundle.NewESBuildBundler(cfg),
		recorder: metrics.NoopRecorder{},
		observer: logObserver{},
		failFast: cfg.Build.FailFast,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.observer = multiObserver{p.observer, recorderObserver{rec: p.recorder}}
	return p
}

func (p *Pipeline) target(format config.ModuleFormat) transform.Target {
	return transform.Target{Format: format, Mode: p.cfg.Build.Mode}
}

// runPhase times fn and turns its outcome (or a panic) into a PhaseResult.
func (p *Pipeline) runPhase(ctx context.Context, phase PhaseName, fn func(ctx context.Context) (*compile.Stats, error)) (res PhaseResult) {
	p.observer.OnPhaseStart(ctx, phase)
	start := time.Now()
	res = PhaseResult{Phase: phase}

	defer func() {
		if r := recover(); r != nil {
			res.Status = PhaseFailed
			res.Err = phaseError(phase, ErrCompile,
				errors.NewError(errors.CategoryInternal, fmt.Sprintf("panic: %v", r)).Build())
		}
		res.Duration = time.Since(start)
		p.observer.OnPhaseComplete(ctx, res)
	}()

	stats, err := fn(observability.WithPhase(ctx, string(phase)))
	res.Files = stats
	if err != nil {
		res.Status = PhaseFailed
		res.Err = err
		return res
	}
	res.Status = PhaseSucceeded
	return res
}

// Clean removes every generated output root.
func (p *Pipeline) Clean(ctx context.Context) PhaseResult {
	return p.runPhase(ctx, PhaseClean, func(context.Context) (*compile.Stats, error) {
		for _, dir := range p.cfg.OutputPaths() {
			if err := fsutil.RemoveAll(dir); err != nil {
				return nil, phaseError(PhaseClean, ErrClean, err)
			}
		}
		return nil, nil
	})
}

// BuildESModuleOutputs copies the source tree to the ES-module root and compiles it there.
func (p *Pipeline) BuildESModuleOutputs(ctx context.Context) PhaseResult {
	return p.runPhase(ctx, PhaseESModule, func(ctx context.Context) (*compile.Stats, error) {
		return p.buildFormat(ctx, PhaseESModule, p.cfg.ESPath(), config.FormatESModule)
	})
}

// BuildCommonJSOutputs copies the source tree to the CommonJS root and compiles it there.
func (p *Pipeline) BuildCommonJSOutputs(ctx context.Context) PhaseResult {
	return p.runPhase(ctx, PhaseCommonJS, func(ctx context.Context) (*compile.Stats, error) {
		return p.buildFormat(ctx, PhaseCommonJS, p.cfg.LibPath(), config.FormatCommonJS)
	})
}

func (p *Pipeline) buildFormat(ctx context.Context, phase PhaseName, outDir string, format config.ModuleFormat) (*compile.Stats, error) {
	if err := fsutil.CopyDir(p.cfg.SourcePath(), outDir); err != nil {
		return nil, phaseError(phase, ErrCopy, err)
	}

	target := p.target(format)
	ctx = observability.WithFormat(ctx, string(format))
	compiler := compile.New(p.classifier, p.transformers, p.cfg.Build.Concurrency, compile.WithRecorder(p.recorder))
	if err := compiler.CompileDir(ctx, outDir, target); err != nil {
		stats := compiler.Stats()
		return &stats, phaseError(phase, ErrCompile, err)
	}

	if err := p.writeScriptEntry(ctx, outDir, target); err != nil {
		stats := compiler.Stats()
		return &stats, phaseError(phase, ErrCompile, err)
	}
	stats := compiler.Stats()
	return &stats, nil
}

// writeScriptEntry writes the package entry into a compiled tree in that tree's format.
func (p *Pipeline) writeScriptEntry(ctx context.Context, outDir string, target transform.Target) error {
	components, err := p.classifier.Components(p.cfg.SourcePath())
	if err != nil {
		return err
	}
	path := filepath.Join(outDir, entry.FileName)
	if err := entry.Generate(path, entry.FromConfig(p.cfg, components)); err != nil {
		return err
	}
	return p.transformers.Script.TransformScript(ctx, path, target)
}

// BuildStyleEntry writes the style dependency map, per-component style entries and the
// consolidated package style.
func (p *Pipeline) BuildStyleEntry(ctx context.Context) PhaseResult {
	return p.runPhase(ctx, PhaseStyle, func(ctx context.Context) (*compile.Stats, error) {
		components, err := p.classifier.Components(p.cfg.SourcePath())
		if err != nil {
			return nil, phaseError(PhaseStyle, ErrStyleEntry, err)
		}
		deps, err := p.styles.GenerateDepsMap(p.classifier, components, p.cfg.StyleDepsPath())
		if err != nil {
			return nil, phaseError(PhaseStyle, ErrStyleEntry, err)
		}
		if err := p.styles.GenerateComponentStyles(components, deps); err != nil {
			return nil, phaseError(PhaseStyle, ErrStyleEntry, err)
		}
		out, err := p.styles.GeneratePackageStyle(deps)
		if err != nil {
			return nil, phaseError(PhaseStyle, ErrStyleEntry, err)
		}
		observability.DebugContext(ctx, "Style entries written",
			logfields.Count(len(components)), logfields.Output(out))
		return nil, nil
	})
}

// BuildPackedOutputs writes the package entry and bundles it twice, plain then minified.
// The minified bundle starts only after the plain one has finished.
func (p *Pipeline) BuildPackedOutputs(ctx context.Context) PhaseResult {
	return p.runPhase(ctx, PhasePacked, func(ctx context.Context) (*compile.Stats, error) {
		components, err := p.classifier.Components(p.cfg.SourcePath())
		if err != nil {
			return nil, phaseError(PhasePacked, ErrPackage, err)
		}
		path := filepath.Join(p.cfg.ESPath(), entry.FileName)
		if err := entry.Generate(path, entry.FromConfig(p.cfg, components)); err != nil {
			return nil, phaseError(PhasePacked, ErrPackage, err)
		}
		for _, minify := range []bool{false, true} {
			if err := p.bundler.Bundle(ctx, minify); err != nil {
				return nil, phaseError(PhasePacked, ErrPackage, err)
			}
		}
		return nil, nil
	})
}

// Run executes every phase in order and returns the report. Failed phases do not stop the
// run unless fail-fast is enabled; cancellation skips the remaining phases.
func (p *Pipeline) Run(ctx context.Context) *Report {
	report := &Report{
		BuildID: uuid.NewString(),
		Mode:    p.cfg.Build.Mode,
		Start:   time.Now(),
	}
	ctx = observability.WithBuildID(ctx, report.BuildID)
	observability.InfoContext(ctx, "Build started",
		logfields.Mode(string(report.Mode)), logfields.Path(p.cfg.Root()))

	phases := []struct {
		name PhaseName
		fn   func(context.Context) PhaseResult
	}{
		{PhaseClean, p.Clean},
		{PhaseESModule, p.BuildESModuleOutputs},
		{PhaseCommonJS, p.BuildCommonJSOutputs},
		{PhaseStyle, p.BuildStyleEntry},
		{PhasePacked, p.BuildPackedOutputs},
	}

	stop := false
	for _, ph := range phases {
		if !stop && ctx.Err() != nil {
			report.Canceled = true
			stop = true
		}
		if stop {
			res := skipped(ph.name)
			p.observer.OnPhaseComplete(ctx, res)
			report.Phases = append(report.Phases, res)
			continue
		}
		res := ph.fn(ctx)
		report.Phases = append(report.Phases, res)
		if !res.OK() && p.failFast {
			stop = true
		}
	}

	report.End = time.Now()
	p.observer.OnBuildComplete(ctx, report)
	return report
}
