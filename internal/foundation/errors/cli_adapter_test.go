package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("bad flag").Build(), 2},
		{"config", ConfigError("missing source_dir").Build(), 7},
		{"external", ExternalError(errors.New("exit 1"), "lessc").Build(), 8},
		{"transform", TransformError(errors.New("boom"), "style", "a.less").Build(), 11},
		{"wrapped filesystem", fmt.Errorf("phase: %w", FileSystemError(errors.New("x"), "copy", "src").Build()), 11},
		{"internal", InternalError("unexpected").Build(), 10},
		{"unclassified", errors.New("unknown"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	err := TransformError(errors.New("unexpected token"), "script", "es/a.js").Build()

	quiet := NewCLIErrorAdapter(false, nil)
	assert.Equal(t, "Error: script transform failed: es/a.js (use -v for details)", quiet.FormatError(err))

	verbose := NewCLIErrorAdapter(true, nil)
	assert.Contains(t, verbose.FormatError(err), "unexpected token")

	assert.Equal(t, "", quiet.FormatError(nil))
	assert.Equal(t, "Error: plain", quiet.FormatError(errors.New("plain")))
}
