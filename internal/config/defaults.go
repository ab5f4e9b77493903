package config

// applyDefaults fills every unset field. Explicit values are kept.
func applyDefaults(cfg *Config) {
	if cfg.SourceDir == "" {
		cfg.SourceDir = "src"
	}
	if cfg.Output.ESDir == "" {
		cfg.Output.ESDir = "es"
	}
	if cfg.Output.LibDir == "" {
		cfg.Output.LibDir = "lib"
	}
	if cfg.Output.DistDir == "" {
		cfg.Output.DistDir = "dist"
	}

	conv := &cfg.Conventions
	if len(conv.DemoDirs) == 0 {
		conv.DemoDirs = []string{"demo"}
	}
	if len(conv.TestDirs) == 0 {
		conv.TestDirs = []string{"test"}
	}
	if len(conv.ComponentExts) == 0 {
		conv.ComponentExts = []string{".vue"}
	}
	if len(conv.ScriptExts) == 0 {
		conv.ScriptExts = []string{".js", ".jsx", ".ts", ".tsx"}
	}
	if len(conv.StyleExts) == 0 {
		conv.StyleExts = []string{".css", ".less", ".scss", ".sass"}
	}

	if cfg.Build.Mode == "" {
		cfg.Build.Mode = ModeProduction
	} else if m := NormalizeBuildMode(string(cfg.Build.Mode)); m != "" {
		cfg.Build.Mode = m
	}
	if cfg.Build.Concurrency < 0 {
		cfg.Build.Concurrency = 0
	}
	if cfg.Build.Target == "" {
		cfg.Build.Target = "es2015"
	}
	if cfg.Build.JSXFactory == "" {
		cfg.Build.JSXFactory = "h"
	}
	if cfg.Build.JSXFragment == "" {
		cfg.Build.JSXFragment = "Fragment"
	}
	if cfg.Build.Externals == nil {
		cfg.Build.Externals = []string{"vue"}
	}

	if cfg.Style.Lang == "" {
		cfg.Style.Lang = "less"
	}
	if len(cfg.Style.LessCommand) == 0 {
		cfg.Style.LessCommand = []string{"lessc"}
	}
	if len(cfg.Style.SassCommand) == 0 {
		cfg.Style.SassCommand = []string{"sass", "--no-source-map"}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = string(LogFormatText)
	}
}
