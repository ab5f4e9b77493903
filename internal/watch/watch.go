// Package watch rebuilds the library whenever the source tree changes.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
	"git.home.luguber.info/inful/uibuild/internal/logfields"
)

// DefaultDebounce is the quiet window after the last change before a rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// BuildFunc runs one build. Its error is logged and does not stop watching.
type BuildFunc func(ctx context.Context) error

// Watcher runs BuildFunc once at start and again after every burst of source changes.
// At most one build runs at a time; changes during a build queue exactly one follow-up.
type Watcher struct {
	root     string
	debounce time.Duration
	build    BuildFunc
}

// New creates a Watcher over root. A non-positive debounce uses DefaultDebounce.
func New(root string, debounce time.Duration, build BuildFunc) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{root: root, debounce: debounce, build: build}
}

// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watcher, err := setupFileWatcher(w.root)
	if err != nil {
		return err
	}
	defer func() {
		_ = watcher.Close()
	}()

	rebuildReq, trigger, stop := setupRebuildDebouncer(w.debounce)
	defer stop()

	done := w.startRebuildWorker(ctx, rebuildReq)
	rebuildReq <- struct{}{}

	slog.Info("Watching for changes", logfields.Path(w.root))
	err = runWatchLoop(ctx, watcher, trigger)
	cancel()
	<-done
	return err
}

func setupFileWatcher(root string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "create file watcher").Build()
	}
	if err := addDirsRecursive(watcher, root); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return watcher, nil
}

// setupRebuildDebouncer returns the rebuild channel, a trigger that fires it after the quiet
// window, and a stop function for the pending timer.
func setupRebuildDebouncer(window time.Duration) (chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(window, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return rebuildReq, trigger, stop
}

// startRebuildWorker drains rebuild requests one build at a time. Requests arriving while
// a build runs collapse into the single buffered slot of the channel.
func (w *Watcher) startRebuildWorker(ctx context.Context, rebuildReq chan struct{}) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				w.processRebuild(ctx)
			}
		}
	}()
	return done
}

func (w *Watcher) processRebuild(ctx context.Context) {
	start := time.Now()
	if err := w.build(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Warn("Rebuild failed", logfields.Error(err), logfields.Duration(time.Since(start)))
		return
	}
	slog.Info("Rebuild finished", logfields.Duration(time.Since(start)))
}

func runWatchLoop(ctx context.Context, watcher *fsnotify.Watcher, trigger func()) error {
	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleFileEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	if _, err := os.Stat(root); err != nil {
		return errors.FileSystemError(err, "stat", root).Build()
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for hidden, editor temp and OS metadata files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db" || base == "4913"
}
