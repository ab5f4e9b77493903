package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// PackageInfo is the subset of package.json the build reads.
type PackageInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// UnscopedName strips an npm scope ("@org/pkg" -> "pkg").
func (p PackageInfo) UnscopedName() string {
	if i := strings.LastIndex(p.Name, "/"); i >= 0 {
		return p.Name[i+1:]
	}
	return p.Name
}

// ReadPackageJSON reads <root>/package.json.
func ReadPackageJSON(root string) (PackageInfo, error) {
	var pkg PackageInfo
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return pkg, err
	}
	err = json.Unmarshal(data, &pkg)
	return pkg, err
}
