package compile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"git.home.luguber.info/inful/uibuild/internal/fsutil"
	"git.home.luguber.info/inful/uibuild/internal/transform"
)

// fakeTransformers rewrite files the way the real transformers lay them out, without
// compiling anything. Every observed target is recorded.
type fakeTransformers struct {
	mu      sync.Mutex
	targets []transform.Target
	seen    []string
	failOn  string
	panicOn string
	delay   time.Duration

	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

func (f *fakeTransformers) set() transform.Set {
	return transform.Set{Script: f, Style: f, Component: f}
}

func (f *fakeTransformers) enter(path string, target transform.Target) func() {
	n := f.inFlight.Add(1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	f.mu.Lock()
	f.targets = append(f.targets, target)
	f.seen = append(f.seen, filepath.Base(path))
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return func() { f.inFlight.Add(-1) }
}

func (f *fakeTransformers) fail(path string) error {
	if f.panicOn != "" && strings.HasSuffix(path, f.panicOn) {
		panic("transformer exploded")
	}
	if f.failOn != "" && strings.HasSuffix(path, f.failOn) {
		return os.ErrInvalid
	}
	return nil
}

func (f *fakeTransformers) TransformScript(_ context.Context, path string, target transform.Target) error {
	defer f.enter(path, target)()
	if err := f.fail(path); err != nil {
		return err
	}
	out := fsutil.ReplaceExt(path, ".js")
	if err := fsutil.WriteFile(out, []byte("// "+string(target.Format)+"\n")); err != nil {
		return err
	}
	if out != path {
		return os.Remove(path)
	}
	return nil
}

func (f *fakeTransformers) TransformStyle(_ context.Context, path string, target transform.Target) error {
	defer f.enter(path, target)()
	if err := f.fail(path); err != nil {
		return err
	}
	return fsutil.WriteFile(fsutil.ReplaceExt(path, ".css"), []byte("/* css */\n"))
}

func (f *fakeTransformers) TransformComponent(_ context.Context, path string, target transform.Target) error {
	defer f.enter(path, target)()
	if err := f.fail(path); err != nil {
		return err
	}
	if err := fsutil.WriteFile(fsutil.ReplaceExt(path, ".js"), []byte("// sfc\n")); err != nil {
		return err
	}
	if err := fsutil.WriteFile(transform.SFCStylePath(path, "css", 0), []byte("/* sfc */\n")); err != nil {
		return err
	}
	return os.Remove(path)
}
