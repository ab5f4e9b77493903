package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/uibuild/internal/build"
	"git.home.luguber.info/inful/uibuild/internal/logfields"
	"git.home.luguber.info/inful/uibuild/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Mode        string `short:"m" help:"Build mode (production|development)"`
	FailFast    bool   `name:"fail-fast" help:"Skip the remaining phases after the first failed one"`
	Concurrency int    `help:"Maximum concurrent leaf transforms (0 uses build.concurrency)"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus textfile metrics to this path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	mode, err := parseMode(b.Mode)
	if err != nil {
		return err
	}
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if b.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	svc := build.NewBuildService().
		WithRecorder(recorder).
		WithPipelineOptions(build.WithObserver(&phasePrinter{w: os.Stdout}))
	result, err := svc.Run(g.Context(), build.BuildRequest{
		Config: cfg,
		Options: build.BuildOptions{
			Mode:        mode,
			FailFast:    b.FailFast,
			Concurrency: b.Concurrency,
		},
	})
	if prom != nil {
		if werr := prom.WriteTextfile(b.MetricsFile); werr != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(b.MetricsFile), logfields.Error(werr))
		}
	}

	if result != nil && result.Report != nil {
		printReport(result)
	}
	return err
}

func printReport(result *build.BuildResult) {
	fmt.Printf("Build %s in %s, %d files processed\n", result.Status, result.Duration.Round(time.Millisecond), result.FilesProcessed)
}

// phasePrinter writes one line per settled phase as the build progresses.
type phasePrinter struct {
	build.NoopObserver
	w io.Writer
}

func (p *phasePrinter) OnPhaseComplete(_ context.Context, r build.PhaseResult) {
	_, _ = fmt.Fprintf(p.w, "%-8s %s (%s)\n", r.Status, r.Phase, r.Duration.Round(time.Millisecond))
}
