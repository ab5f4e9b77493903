package config

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
)

var validTargets = map[string]bool{
	"es5": true, "es2015": true, "es2016": true, "es2017": true, "es2018": true,
	"es2019": true, "es2020": true, "es2021": true, "es2022": true, "es2023": true, "es2024": true,
	"esnext": true,
}

// Targets lists the accepted build.target values in sorted order.
func Targets() []string {
	return slices.Sorted(maps.Keys(validTargets))
}

var validStyleLangs = map[string]bool{"css": true, "less": true, "scss": true, "sass": true}

// Validate checks the finalized configuration.
func Validate(cfg *Config) error {
	if NormalizeBuildMode(string(cfg.Build.Mode)) == "" {
		return invalid("build.mode", fmt.Sprintf("unknown mode %q (want production|development)", cfg.Build.Mode))
	}
	if !validTargets[strings.ToLower(cfg.Build.Target)] {
		return invalid("build.target", fmt.Sprintf("unsupported target %q", cfg.Build.Target))
	}
	if !validStyleLangs[cfg.Style.Lang] {
		return invalid("style.lang", fmt.Sprintf("unsupported style language %q", cfg.Style.Lang))
	}
	if err := validateOutputs(cfg); err != nil {
		return err
	}
	return validateConventions(&cfg.Conventions)
}

func validateOutputs(cfg *Config) error {
	src := cfg.SourcePath()
	seen := map[string]string{}
	for field, p := range map[string]string{
		"output.es_dir":   cfg.ESPath(),
		"output.lib_dir":  cfg.LibPath(),
		"output.dist_dir": cfg.DistPath(),
	} {
		if p == src || isWithin(p, src) || isWithin(src, p) {
			return invalid(field, "output directory must not overlap the source directory")
		}
		if other, dup := seen[p]; dup {
			return invalid(field, "output directory duplicates "+other)
		}
		seen[p] = field
	}
	return nil
}

func validateConventions(conv *ConventionsConfig) error {
	owner := map[string]string{}
	for field, exts := range map[string][]string{
		"conventions.component_exts": conv.ComponentExts,
		"conventions.script_exts":    conv.ScriptExts,
		"conventions.style_exts":     conv.StyleExts,
	} {
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
				return invalid(field, fmt.Sprintf("extension %q must start with a dot", ext))
			}
			if prev, dup := owner[ext]; dup {
				return invalid(field, fmt.Sprintf("extension %q already claimed by %s", ext, prev))
			}
			owner[ext] = field
		}
	}
	for _, name := range append(append([]string{}, conv.DemoDirs...), conv.TestDirs...) {
		if name == "" || strings.ContainsRune(name, filepath.Separator) {
			return invalid("conventions", fmt.Sprintf("directory name %q must be a plain base name", name))
		}
	}
	return nil
}

// isWithin reports whether child is strictly inside parent.
func isWithin(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func invalid(field, reason string) error {
	return errors.ValidationError("invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason).
		Build()
}
