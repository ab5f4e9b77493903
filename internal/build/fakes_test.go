package build

import (
	"context"
	"os"
	"sync"
	"time"

	"git.home.luguber.info/inful/uibuild/internal/config"
	"git.home.luguber.info/inful/uibuild/internal/fsutil"
	"git.home.luguber.info/inful/uibuild/internal/metrics"
	"git.home.luguber.info/inful/uibuild/internal/transform"
)

// stubTransformers lay files out like the real transformers and record every target.
type stubTransformers struct {
	mu         sync.Mutex
	formats    []config.ModuleFormat
	failFormat  config.ModuleFormat
	panicFormat config.ModuleFormat
}

func (s *stubTransformers) set() transform.Set {
	return transform.Set{Script: s, Style: s, Component: s}
}

func (s *stubTransformers) observe(target transform.Target) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formats = append(s.formats, target.Format)
	if s.panicFormat != "" && target.Format == s.panicFormat {
		panic("script transformer exploded")
	}
	if s.failFormat != "" && target.Format == s.failFormat {
		return os.ErrInvalid
	}
	return nil
}

func (s *stubTransformers) seen() []config.ModuleFormat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]config.ModuleFormat(nil), s.formats...)
}

func (s *stubTransformers) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formats = nil
}

func (s *stubTransformers) TransformScript(_ context.Context, path string, target transform.Target) error {
	if err := s.observe(target); err != nil {
		return err
	}
	out := fsutil.ReplaceExt(path, ".js")
	if err := fsutil.WriteFile(out, []byte("// "+string(target.Format)+"\n")); err != nil {
		return err
	}
	if out != path {
		return os.Remove(path)
	}
	return nil
}

func (s *stubTransformers) TransformStyle(_ context.Context, path string, target transform.Target) error {
	if err := s.observe(target); err != nil {
		return err
	}
	return fsutil.WriteFile(fsutil.ReplaceExt(path, ".css"), []byte("/* css */\n"))
}

func (s *stubTransformers) TransformComponent(_ context.Context, path string, target transform.Target) error {
	if err := s.observe(target); err != nil {
		return err
	}
	if err := fsutil.WriteFile(fsutil.ReplaceExt(path, ".js"), []byte("// sfc\n")); err != nil {
		return err
	}
	return os.Remove(path)
}

// recordingBundler logs when each call starts and settles.
type recordingBundler struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (b *recordingBundler) log(event string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBundler) Bundle(_ context.Context, minify bool) error {
	name := "plain"
	if minify {
		name = "min"
	}
	b.log("start " + name)
	time.Sleep(5 * time.Millisecond)
	b.log("end " + name)
	return b.err
}

type countingRecorder struct {
	mu       sync.Mutex
	results  map[string]metrics.ResultLabel
	outcomes []metrics.BuildOutcomeLabel
	files    int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{results: map[string]metrics.ResultLabel{}}
}

func (c *countingRecorder) ObservePhaseDuration(string, time.Duration) {}
func (c *countingRecorder) ObserveBuildDuration(time.Duration)         {}

func (c *countingRecorder) IncPhaseResult(phase string, result metrics.ResultLabel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[phase] = result
}

func (c *countingRecorder) IncBuildOutcome(outcome metrics.BuildOutcomeLabel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, outcome)
}

func (c *countingRecorder) IncFileProcessed(string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files++
}

// recordingObserver logs phase callbacks in order.
type recordingObserver struct {
	NoopObserver
	events []string
	report *Report
}

func (o *recordingObserver) OnPhaseStart(_ context.Context, phase PhaseName) {
	o.events = append(o.events, "start "+phase.Key())
}

func (o *recordingObserver) OnPhaseComplete(_ context.Context, r PhaseResult) {
	o.events = append(o.events, string(r.Status)+" "+r.Phase.Key())
}

func (o *recordingObserver) OnBuildComplete(_ context.Context, report *Report) {
	o.report = report
}
