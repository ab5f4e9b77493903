// Package classify decides which build category a source path belongs to.
//
// Classification is a pure function of the entry's base name and whether it is a directory.
// Demo and test directories are recognized by exact base-name match against the configured
// conventions; files are recognized by extension.
package classify

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/uibuild/internal/config"
	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
)

// Category is the mutually exclusive classification of a path.
type Category int

const (
	Other Category = iota
	Directory
	Component
	Script
	Style
	DemoDir
	TestDir
)

var categoryNames = map[Category]string{
	Other:     "other",
	Directory: "directory",
	Component: "component",
	Script:    "script",
	Style:     "style",
	DemoDir:   "demo",
	TestDir:   "test",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Excluded reports whether the category is removed from output trees without compiling.
func (c Category) Excluded() bool {
	return c == DemoDir || c == TestDir || c == Other
}

// Classifier classifies paths according to project conventions.
type Classifier struct {
	demoDirs      []string
	testDirs      []string
	componentExts []string
	scriptExts    []string
	styleExts     []string
}

// New builds a Classifier from the conventions section of the configuration.
func New(conv config.ConventionsConfig) *Classifier {
	return &Classifier{
		demoDirs:      slices.Clone(conv.DemoDirs),
		testDirs:      slices.Clone(conv.TestDirs),
		componentExts: slices.Clone(conv.ComponentExts),
		scriptExts:    slices.Clone(conv.ScriptExts),
		styleExts:     slices.Clone(conv.StyleExts),
	}
}

// Classify stats path and classifies it. The path must exist.
func (c *Classifier) Classify(path string) (Category, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Other, errors.FileSystemError(err, "stat", path).Build()
	}
	return c.ClassifyName(filepath.Base(path), info.IsDir()), nil
}

// ClassifyEntry classifies a directory listing entry without an extra stat. Symlinks are
// resolved against dir so linked directories still classify as directories.
func (c *Classifier) ClassifyEntry(dir string, entry fs.DirEntry) (Category, error) {
	if entry.Type()&fs.ModeSymlink != 0 {
		return c.Classify(filepath.Join(dir, entry.Name()))
	}
	return c.ClassifyName(entry.Name(), entry.IsDir()), nil
}

// ClassifyName classifies a base name with a known file kind.
func (c *Classifier) ClassifyName(name string, isDir bool) Category {
	if isDir {
		switch {
		case slices.Contains(c.demoDirs, name):
			return DemoDir
		case slices.Contains(c.testDirs, name):
			return TestDir
		default:
			return Directory
		}
	}
	// The longest matching extension wins; ties keep component, script, style order.
	category, longest := Other, 0
	for _, set := range []struct {
		category Category
		exts     []string
	}{
		{Component, c.componentExts},
		{Script, c.scriptExts},
		{Style, c.styleExts},
	} {
		if n := matchExt(name, set.exts); n > longest {
			category, longest = set.category, n
		}
	}
	return category
}

// IsEntryExt reports whether ext is a script or component extension.
func (c *Classifier) IsEntryExt(ext string) bool {
	return slices.Contains(c.scriptExts, ext) || slices.Contains(c.componentExts, ext)
}

// EntryExts lists the extensions a module entry may carry, scripts first.
func (c *Classifier) EntryExts() []string {
	return append(slices.Clone(c.scriptExts), c.componentExts...)
}

// matchExt returns the length of the longest ext name ends with, 0 when none does.
func matchExt(name string, exts []string) int {
	longest := 0
	for _, ext := range exts {
		if len(ext) > longest && len(name) > len(ext) && strings.HasSuffix(name, ext) {
			longest = len(ext)
		}
	}
	return longest
}
