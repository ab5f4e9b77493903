// Package compile walks an output tree and compiles it in place.
package compile

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"git.home.luguber.info/inful/uibuild/internal/classify"
	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
	"git.home.luguber.info/inful/uibuild/internal/logfields"
	"git.home.luguber.info/inful/uibuild/internal/metrics"
	"git.home.luguber.info/inful/uibuild/internal/transform"
)

// Stats counts per-file outcomes of a compile pass.
type Stats struct {
	Scripts    int64
	Styles     int64
	Components int64
	Removed    int64
}

// Compiler dispatches every entry of a tree to the matching transformer.
//
// Siblings run concurrently and are never canceled by each other's failure. Only leaf
// operations (transforms and removals) take a slot from the shared semaphore; descending
// into a directory does not, so nested directories cannot starve each other.
type Compiler struct {
	classifier   *classify.Classifier
	transformers transform.Set
	sem          *semaphore.Weighted
	recorder     metrics.Recorder

	scripts    atomic.Int64
	styles     atomic.Int64
	components atomic.Int64
	removed    atomic.Int64
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithRecorder reports processed files to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Compiler) {
		if r != nil {
			c.recorder = r
		}
	}
}

// DefaultConcurrency is the leaf cap used when none is configured.
func DefaultConcurrency() int { return 4 * runtime.GOMAXPROCS(0) }

// New builds a Compiler allowing at most concurrency leaf operations in flight.
// A non-positive concurrency uses DefaultConcurrency.
func New(classifier *classify.Classifier, transformers transform.Set, concurrency int, opts ...Option) *Compiler {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency()
	}
	c := &Compiler{
		classifier:   classifier,
		transformers: transformers,
		sem:          semaphore.NewWeighted(int64(concurrency)),
		recorder:     metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stats returns the counters accumulated across every CompileDir call so far.
func (c *Compiler) Stats() Stats {
	return Stats{
		Scripts:    c.scripts.Load(),
		Styles:     c.styles.Load(),
		Components: c.components.Load(),
		Removed:    c.removed.Load(),
	}
}

// CompileDir compiles every entry below dir for target. It returns once every child has
// settled; the first error observed is returned.
func (c *Compiler) CompileDir(ctx context.Context, dir string, target transform.Target) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.FileSystemError(err, "read dir", dir).Build()
	}

	var g errgroup.Group
	for _, entry := range entries {
		g.Go(func() (err error) {
			path := filepath.Join(dir, entry.Name())
			defer func() {
				if r := recover(); r != nil {
					err = errors.PanicError(r, path).Build()
				}
			}()
			category, err := c.classifier.ClassifyEntry(dir, entry)
			if err != nil {
				return err
			}
			if category == classify.Directory {
				return c.CompileDir(ctx, path, target)
			}
			return c.leaf(ctx, path, category, target)
		})
	}
	return g.Wait()
}

func (c *Compiler) leaf(ctx context.Context, path string, category classify.Category, target transform.Target) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.sem.Release(1)

	var err error
	switch category {
	case classify.Component:
		err = c.transformers.Component.TransformComponent(ctx, path, target)
		c.count(&c.components, category, target, err)
	case classify.Script:
		err = c.transformers.Script.TransformScript(ctx, path, target)
		c.count(&c.scripts, category, target, err)
	case classify.Style:
		err = c.transformers.Style.TransformStyle(ctx, path, target)
		c.count(&c.styles, category, target, err)
	default:
		// demo and test directories and unrecognized files
		if err = os.RemoveAll(path); err != nil {
			err = errors.FileSystemError(err, "remove", path).Build()
		}
		c.count(&c.removed, category, target, err)
		if err == nil {
			slog.Debug("Removed from output", logfields.Path(path), logfields.Kind(category.String()))
		}
	}
	if err != nil {
		return withPath(err, path)
	}
	return nil
}

func (c *Compiler) count(counter *atomic.Int64, category classify.Category, target transform.Target, err error) {
	if err != nil {
		return
	}
	counter.Add(1)
	c.recorder.IncFileProcessed(category.String(), string(target.Format))
}

// withPath makes sure the failing path is attached to err.
func withPath(err error, path string) error {
	if ce, ok := errors.AsClassified(err); ok {
		if _, has := ce.Context().GetString("path"); has {
			return err
		}
		return errors.WrapError(err, ce.Category(), "compile failed").WithContext("path", path).Build()
	}
	return errors.WrapError(err, errors.CategoryBuild, "compile failed").WithContext("path", path).Build()
}
