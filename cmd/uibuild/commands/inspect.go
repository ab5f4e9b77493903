package commands

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/uibuild/internal/classify"
	"git.home.luguber.info/inful/uibuild/internal/config"
	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
	"git.home.luguber.info/inful/uibuild/internal/styles"
)

// InspectCmd implements the 'inspect' command.
type InspectCmd struct{}

func (i *InspectCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	return RunInspect(os.Stdout, cfg)
}

// RunInspect prints the category of every source entry, the component list and the style
// sequence. Excluded directories are listed but not descended into.
func RunInspect(w io.Writer, cfg *config.Config) error {
	src := cfg.SourcePath()
	classifier := classify.New(cfg.Conventions)

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.FileSystemError(walkErr, "walk", path).Build()
		}
		if path == src {
			return nil
		}
		cat, err := classifier.ClassifyEntry(filepath.Dir(path), d)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(src, path)
		_, _ = fmt.Fprintf(w, "%-10s %s\n", cat, filepath.ToSlash(rel))
		if d.IsDir() && cat.Excluded() {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return err
	}

	components, err := classifier.Components(src)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\ncomponents: %s\n", strings.Join(components, ", "))

	gen := styles.NewGenerator(cfg)
	deps, err := styles.AnalyzeDeps(src, classifier, components, gen.HasStyle)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "style sequence: %s\n", strings.Join(deps.Sequence, ", "))
	return nil
}
