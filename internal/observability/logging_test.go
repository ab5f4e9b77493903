package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogContextAccumulates(t *testing.T) {
	ctx := WithBuildID(context.Background(), "build-123")
	ctx = WithPhase(ctx, "Build commonjs outputs")
	ctx = WithFormat(ctx, "commonjs")

	lc := GetContext(ctx)
	assert.Equal(t, "build-123", lc.BuildID)
	assert.Equal(t, "Build commonjs outputs", lc.Phase)
	assert.Equal(t, "commonjs", lc.Format)
}

func TestInfoContextIncludesAttributes(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := WithPhase(WithBuildID(context.Background(), "b-1"), "Build style entry")
	InfoContext(ctx, "phase started", slog.Int("components", 3))
	DebugContext(context.Background(), "bare")

	out := buf.String()
	assert.Contains(t, out, "build_id=b-1")
	assert.Contains(t, out, `phase="Build style entry"`)
	assert.Contains(t, out, "components=3")
	assert.Contains(t, out, "msg=bare")
}
