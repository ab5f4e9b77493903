package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyPhase      = "phase"
	KeyPath       = "path"
	KeyKind       = "kind"
	KeyFormat     = "format"
	KeyMode       = "mode"
	KeyComponent  = "component"
	KeyCommand    = "command"
	KeyOutput     = "output"
	KeyMinify     = "minify"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Phase(name string) slog.Attr      { return slog.String(KeyPhase, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Kind(k string) slog.Attr          { return slog.String(KeyKind, k) }
func Format(f string) slog.Attr        { return slog.String(KeyFormat, f) }
func Mode(m string) slog.Attr          { return slog.String(KeyMode, m) }
func Component(name string) slog.Attr  { return slog.String(KeyComponent, name) }
func Command(c string) slog.Attr       { return slog.String(KeyCommand, c) }
func Output(p string) slog.Attr        { return slog.String(KeyOutput, p) }
func Minify(on bool) slog.Attr         { return slog.Bool(KeyMinify, on) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
