package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/src/button/index.vue", false},
		{"/src/button/index.less", false},
		{"/src/.DS_Store", true},
		{"/src/button/.index.vue.swp", true},
		{"/src/button/index.vue~", true},
		{"/src/button/#index.vue#", true},
		{"/src/button/4913", true},
		{"/src/Thumbs.db", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldIgnoreEvent(tt.path))
		})
	}
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	rebuildReq, trigger, stop := setupRebuildDebouncer(20 * time.Millisecond)
	defer stop()

	for range 10 {
		trigger()
	}

	select {
	case <-rebuildReq:
	case <-time.After(time.Second):
		t.Fatal("debounced trigger never fired")
	}
	select {
	case <-rebuildReq:
		t.Fatal("burst fired more than once")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "button"), 0o755))

	var builds atomic.Int32
	w := New(root, 20*time.Millisecond, func(context.Context) error {
		builds.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond, "initial build")

	require.NoError(t, os.WriteFile(filepath.Join(root, "button", "index.js"), []byte("export default {}"), 0o644))
	require.Eventually(t, func() bool { return builds.Load() >= 2 }, 2*time.Second, 10*time.Millisecond, "rebuild after change")

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingRoot(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), 0, func(context.Context) error { return nil })
	require.Error(t, w.Run(context.Background()))
}
