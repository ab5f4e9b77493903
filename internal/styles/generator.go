package styles

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/uibuild/internal/classify"
	"git.home.luguber.info/inful/uibuild/internal/config"
	"git.home.luguber.info/inful/uibuild/internal/fsutil"
)

// Tree is an output tree receiving style entries, with the statement template of its
// module format.
type Tree struct {
	Dir    string
	Import func(path string) string
}

// ESTree and CommonJSTree are the two compiled trees style entries are written into.
func ESTree(dir string) Tree {
	return Tree{Dir: dir, Import: func(path string) string { return fmt.Sprintf("import '%s';", path) }}
}

func CommonJSTree(dir string) Tree {
	return Tree{Dir: dir, Import: func(path string) string { return fmt.Sprintf("require('%s');", path) }}
}

// Generator writes the style entry files for a component library.
type Generator struct {
	SourceDir string
	DistDir   string
	Lang      string // style language without the dot
	Base      string // base style relative to SourceDir; empty when unused
	Trees     []Tree
}

// NewGenerator lays out a Generator for the configured project.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		SourceDir: cfg.SourcePath(),
		DistDir:   cfg.DistPath(),
		Lang:      cfg.Style.Lang,
		Base:      cfg.Style.Base,
		Trees:     []Tree{ESTree(cfg.ESPath()), CommonJSTree(cfg.LibPath())},
	}
}

// HasStyle reports whether component has `index.<lang>` in the source tree.
func (g *Generator) HasStyle(component string) bool {
	return fsutil.Exists(g.stylePath(g.SourceDir, component, "."+g.Lang))
}

func (g *Generator) stylePath(root, component, ext string) string {
	return filepath.Join(root, component, "index"+ext)
}

func (g *Generator) baseFile() string {
	if g.Base == "" {
		return ""
	}
	p := filepath.Join(g.SourceDir, g.Base)
	if !fsutil.Exists(p) {
		return ""
	}
	return p
}

// GenerateDepsMap analyzes the source tree and writes the style dependency map to path.
func (g *Generator) GenerateDepsMap(classifier *classify.Classifier, components []string, path string) (*Deps, error) {
	deps, err := AnalyzeDeps(g.SourceDir, classifier, components, g.HasStyle)
	if err != nil {
		return nil, err
	}
	if err := WriteDeps(path, deps); err != nil {
		return nil, err
	}
	return deps, nil
}

// GenerateComponentStyles writes `<component>/style/index.js` importing compiled CSS and,
// unless the language is plain css, `<component>/style/<lang>.js` importing the sources.
func (g *Generator) GenerateComponentStyles(components []string, deps *Deps) error {
	for _, component := range components {
		if err := g.writeEntry(component, deps, ".css", "index.js"); err != nil {
			return err
		}
		if g.Lang != "css" {
			if err := g.writeEntry(component, deps, "."+g.Lang, g.Lang+".js"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) writeEntry(component string, deps *Deps, ext, filename string) error {
	styles := deps.Of(component, g.HasStyle(component))
	base := g.baseFile()

	for _, tree := range g.Trees {
		outputDir := filepath.Join(tree.Dir, component, "style")
		var lines []string
		if base != "" {
			rel, _ := filepath.Rel(g.SourceDir, base)
			compiled := fsutil.ReplaceExt(filepath.Join(tree.Dir, rel), ext)
			lines = append(lines, tree.Import(relSlash(outputDir, compiled)))
		}
		for _, dep := range styles {
			lines = append(lines, tree.Import(relSlash(outputDir, g.stylePath(tree.Dir, dep, ext))))
		}
		if err := fsutil.WriteFile(filepath.Join(outputDir, filename), joinLines(lines)); err != nil {
			return err
		}
	}
	return nil
}

// GeneratePackageStyle writes `<dist>/index.<lang>` importing the base style and every
// component style in sequence order.
func (g *Generator) GeneratePackageStyle(deps *Deps) (string, error) {
	out := filepath.Join(g.DistDir, "index."+g.Lang)
	var lines []string
	if base := g.baseFile(); base != "" {
		lines = append(lines, fmt.Sprintf("@import %q;", relSlash(g.DistDir, base)))
	}
	for _, component := range deps.Sequence {
		if !g.HasStyle(component) {
			continue
		}
		lines = append(lines, fmt.Sprintf("@import %q;", relSlash(g.DistDir, g.stylePath(g.SourceDir, component, "."+g.Lang))))
	}
	if err := fsutil.WriteFile(out, joinLines(lines)); err != nil {
		return "", err
	}
	return out, nil
}

func joinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

func relSlash(from, to string) string {
	rel, err := filepath.Rel(from, to)
	if err != nil {
		rel = to
	}
	return filepath.ToSlash(rel)
}
