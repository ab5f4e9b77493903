package classify

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
)

// Components lists the component directories directly below srcDir: every subdirectory
// holding an index entry with a script or component extension. Names are sorted.
func (c *Classifier) Components(srcDir string) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, errors.FileSystemError(err, "read dir", srcDir).Build()
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || c.ClassifyName(entry.Name(), true) != Directory {
			continue
		}
		if c.ResolveEntry(filepath.Join(srcDir, entry.Name(), "index")) != "" {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// ResolveEntry completes an extensionless module path: first `<path><ext>`, then
// `<path>/index<ext>` for every entry extension. It returns "" when nothing exists.
func (c *Classifier) ResolveEntry(path string) string {
	exts := c.EntryExts()
	for _, ext := range exts {
		if isFile(path + ext) {
			return path + ext
		}
	}
	for _, ext := range exts {
		candidate := filepath.Join(path, "index"+ext)
		if isFile(candidate) {
			return candidate
		}
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
