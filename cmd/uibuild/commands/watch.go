package commands

import (
	"context"
	"time"

	"git.home.luguber.info/inful/uibuild/internal/build"
	"git.home.luguber.info/inful/uibuild/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Mode     string        `short:"m" help:"Build mode override (production|development)"`
	Debounce time.Duration `help:"Quiet window after the last change before rebuilding" default:"300ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	mode, err := parseMode(w.Mode)
	if err != nil {
		return err
	}
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	svc := build.NewBuildService()
	req := build.BuildRequest{
		Config:  cfg,
		Options: build.BuildOptions{Mode: mode},
	}
	rebuild := func(ctx context.Context) error {
		_, err := svc.Run(ctx, req)
		return err
	}
	return watch.New(cfg.SourcePath(), w.Debounce, rebuild).Run(g.Context())
}
