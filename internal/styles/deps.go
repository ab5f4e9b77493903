package styles

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/uibuild/internal/classify"
	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
	"git.home.luguber.info/inful/uibuild/internal/fsutil"
)

// Deps is the style dependency map written to style-deps.json.
type Deps struct {
	Map      map[string][]string `json:"map"`
	Sequence []string            `json:"sequence"`
}

// Of returns the style imports of component in order: its dependencies, then itself when
// it has a style of its own.
func (d *Deps) Of(component string, hasStyle bool) []string {
	deps := slices.Clone(d.Map[component])
	if hasStyle {
		deps = append(deps, component)
	}
	return deps
}

var (
	importRe  = regexp.MustCompile(`\bimport\s+(type\s+)?(?:[\w*\s{},$]+?\s*from\s*)?['"]([^'"\n]+)['"]`)
	exportRe  = regexp.MustCompile(`\bexport\s+(type\s+)?[\w*\s{},$]+?\s*from\s*['"]([^'"\n]+)['"]`)
	requireRe = regexp.MustCompile(`\b(?:require|import)\s*\(\s*['"]([^'"\n]+)['"]\s*\)`)
)

// importSpecifiers lists relative module specifiers in code. Type-only imports are skipped.
func importSpecifiers(code string) []string {
	var specs []string
	for _, re := range []*regexp.Regexp{importRe, exportRe} {
		for _, m := range re.FindAllStringSubmatch(code, -1) {
			if m[1] != "" {
				continue
			}
			specs = append(specs, m[2])
		}
	}
	for _, m := range requireRe.FindAllStringSubmatch(code, -1) {
		specs = append(specs, m[1])
	}
	return slices.DeleteFunc(specs, func(s string) bool { return !strings.HasPrefix(s, ".") })
}

// analyzer walks the relative import graph of source files, caching each file's imports.
type analyzer struct {
	srcDir     string
	classifier *classify.Classifier
	cache      map[string][]string
}

func newAnalyzer(srcDir string, classifier *classify.Classifier) *analyzer {
	return &analyzer{srcDir: srcDir, classifier: classifier, cache: map[string][]string{}}
}

// imports resolves the relative imports of file to existing script or component files.
func (a *analyzer) imports(file string) ([]string, error) {
	if deps, ok := a.cache[file]; ok {
		return deps, nil
	}
	code, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.FileSystemError(err, "read", file).Build()
	}
	var deps []string
	for _, specifier := range importSpecifiers(string(code)) {
		if resolved := a.resolve(filepath.Join(filepath.Dir(file), specifier)); resolved != "" {
			deps = append(deps, resolved)
		}
	}
	a.cache[file] = deps
	return deps, nil
}

func (a *analyzer) resolve(path string) string {
	ext := filepath.Ext(path)
	if ext != "" && a.classifier.IsEntryExt(ext) && fsutil.Exists(path) {
		return path
	}
	return a.classifier.ResolveEntry(path)
}

// componentOf returns the component directory file lives in, if any.
func (a *analyzer) componentOf(file string) string {
	rel, err := filepath.Rel(a.srcDir, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	return first
}

// touched lists the other components the import graph of component reaches, in
// discovery order.
func (a *analyzer) touched(components []string, component string) ([]string, error) {
	entry := a.classifier.ResolveEntry(filepath.Join(a.srcDir, component, "index"))
	if entry == "" {
		return nil, nil
	}

	var found []string
	visited := map[string]bool{}
	var search func(file string) error
	search = func(file string) error {
		visited[file] = true
		deps, err := a.imports(file)
		if err != nil {
			return err
		}
		for _, dep := range deps {
			if visited[dep] {
				continue
			}
			if err := search(dep); err != nil {
				return err
			}
			if name := a.componentOf(dep); name != component && slices.Contains(components, name) && !slices.Contains(found, name) {
				found = append(found, name)
			}
		}
		return nil
	}
	if err := search(entry); err != nil {
		return nil, err
	}
	return found, nil
}

// sequence orders components so every component follows its dependencies. Cycles are
// broken at the first component revisited.
func sequence(components []string, depsMap map[string][]string) []string {
	seq := []string{}
	record := map[string]bool{}

	var add func(item string)
	add = func(item string) {
		deps, ok := depsMap[item]
		if !ok || slices.Contains(seq, item) {
			return
		}
		if record[item] {
			seq = append(seq, item)
			return
		}
		record[item] = true
		if len(deps) == 0 {
			seq = append(seq, item)
			return
		}
		for _, dep := range deps {
			add(dep)
		}
		if slices.Contains(seq, item) {
			return
		}
		maxIndex := -1
		for _, dep := range deps {
			maxIndex = max(maxIndex, slices.Index(seq, dep))
		}
		seq = slices.Insert(seq, maxIndex+1, item)
	}

	for _, c := range components {
		add(c)
	}
	return seq
}

// AnalyzeDeps computes the style dependency map for components. hasStyle reports whether
// a component has a style entry of its own; only such components appear as dependencies.
func AnalyzeDeps(srcDir string, classifier *classify.Classifier, components []string, hasStyle func(string) bool) (*Deps, error) {
	a := newAnalyzer(srcDir, classifier)
	deps := &Deps{Map: make(map[string][]string, len(components))}

	for _, component := range components {
		touched, err := a.touched(components, component)
		if err != nil {
			return nil, err
		}
		withStyle := slices.DeleteFunc(touched, func(name string) bool { return !hasStyle(name) })
		if withStyle == nil {
			withStyle = []string{}
		}
		deps.Map[component] = withStyle
	}

	deps.Sequence = sequence(components, deps.Map)
	for component, list := range deps.Map {
		slices.SortStableFunc(list, func(x, y string) int {
			return slices.Index(deps.Sequence, x) - slices.Index(deps.Sequence, y)
		})
		deps.Map[component] = list
	}
	return deps, nil
}

// WriteDeps writes deps as indented JSON to path.
func WriteDeps(path string, deps *Deps) error {
	data, err := json.MarshalIndent(deps, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "encode style deps").Build()
	}
	return fsutil.WriteFile(path, append(data, '\n'))
}

// ReadDeps loads a style dependency map written by WriteDeps.
func ReadDeps(path string) (*Deps, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileSystemError(err, "read", path).Build()
	}
	var deps Deps
	if err := json.Unmarshal(data, &deps); err != nil {
		return nil, errors.WrapError(err, errors.CategoryBuild, "decode style deps").WithContext("path", path).Build()
	}
	return &deps, nil
}
