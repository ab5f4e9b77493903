package transform

import (
	"context"
	"sync"
)

type fakeRunner struct {
	mu     sync.Mutex
	out    []byte
	err    error
	argv   [][]string
	envs   [][]string
	stdins [][]byte
	dirs   []string
}

func (f *fakeRunner) Run(_ context.Context, dir string, env []string, stdin []byte, argv []string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.argv = append(f.argv, argv)
	f.envs = append(f.envs, env)
	f.stdins = append(f.stdins, stdin)
	f.dirs = append(f.dirs, dir)
	return f.out, f.err
}

type recordingTransformer struct {
	mu      sync.Mutex
	paths   []string
	targets []Target
	panics  bool
}

func (r *recordingTransformer) record(path string, target Target) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	r.targets = append(r.targets, target)
	if r.panics {
		panic("style compiler crashed")
	}
}

func (r *recordingTransformer) TransformScript(_ context.Context, path string, target Target) error {
	r.record(path, target)
	return nil
}

func (r *recordingTransformer) TransformStyle(_ context.Context, path string, target Target) error {
	r.record(path, target)
	return nil
}
