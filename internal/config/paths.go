package config

import "path/filepath"

// StyleDepsFile is the style dependency map file name inside the dist directory.
const StyleDepsFile = "style-deps.json"

func (c *Config) abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.root, p)
}

// SourcePath returns the absolute source tree root.
func (c *Config) SourcePath() string { return c.abs(c.SourceDir) }

// ESPath returns the absolute ES-module output root.
func (c *Config) ESPath() string { return c.abs(c.Output.ESDir) }

// LibPath returns the absolute CommonJS output root.
func (c *Config) LibPath() string { return c.abs(c.Output.LibDir) }

// DistPath returns the absolute packed output root.
func (c *Config) DistPath() string { return c.abs(c.Output.DistDir) }

// StyleDepsPath returns the location of the generated style dependency map.
func (c *Config) StyleDepsPath() string { return filepath.Join(c.DistPath(), StyleDepsFile) }

// OutputPaths lists every generated root removed by a clean.
func (c *Config) OutputPaths() []string {
	return []string{c.ESPath(), c.LibPath(), c.DistPath()}
}
