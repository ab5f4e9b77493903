package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/uibuild/internal/config"
	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
)

// Global context passed to subcommands.
type Global struct {
	Ctx context.Context
}

// Context returns the signal-aware command context.
func (g *Global) Context() context.Context {
	if g == nil || g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"uibuild.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build es/, lib/ and dist/ outputs from the source tree"`
	Clean   CleanCmd   `cmd:"" help:"Remove all build outputs"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild whenever the source tree changes"`
	Inspect InspectCmd `cmd:"" help:"Print how every source entry is classified"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	var logging config.LoggingConfig
	if cfg, err := c.loadConfig(); err == nil {
		logging = cfg.Logging
	}
	slog.SetDefault(newLogger(os.Stderr, c.Verbose, logging))
	return nil
}

func newLogger(w io.Writer, verbose bool, logging config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: config.EffectiveLogLevel(verbose, logging.Level)}
	if config.NormalizeLogFormat(logging.Format) == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadConfig reads the configuration file. A missing file at the default path falls back to
// zero-config defaults rooted in the working directory.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(c.Config, c.Config == config.DefaultConfigFile)
}

// parseMode validates a --mode flag. Empty keeps the configured mode.
func parseMode(raw string) (config.BuildMode, error) {
	mode := config.NormalizeBuildMode(raw)
	if raw != "" && mode == "" {
		return "", errors.ValidationError("invalid --mode (expected production or development)").WithContext("mode", raw).Build()
	}
	return mode, nil
}
