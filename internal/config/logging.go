package config

import (
	"log/slog"
	"os"
	"strings"
)

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

func NormalizeLogFormat(raw string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(raw), "json") {
		return LogFormatJSON
	}
	return LogFormatText
}

// ParseLogLevel maps a level name to slog.Level, defaulting to info.
func ParseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// EffectiveLogLevel resolves the level: verbose flag > UIBUILD_LOG_LEVEL > configured level.
func EffectiveLogLevel(verbose bool, configured string) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	if env := os.Getenv("UIBUILD_LOG_LEVEL"); env != "" {
		return ParseLogLevel(env)
	}
	return ParseLogLevel(configured)
}
