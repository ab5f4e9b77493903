package config

import "strings"

// BuildConfig holds compile and packaging knobs.
type BuildConfig struct {
	Mode        BuildMode `yaml:"mode"`        // production|development
	Concurrency int       `yaml:"concurrency"` // max in-flight file operations; 0 = 4*GOMAXPROCS
	FailFast    bool      `yaml:"fail_fast"`   // abort remaining phases after the first failure
	Target      string    `yaml:"target"`      // esbuild language target (es2015, es2020, esnext, ...)
	JSXFactory  string    `yaml:"jsx_factory"`
	JSXFragment string    `yaml:"jsx_fragment"`
	NamedExport bool      `yaml:"named_export"` // components export { Name } instead of default
	SkipInstall []string  `yaml:"skip_install,omitempty"`
	GlobalName  string    `yaml:"global_name,omitempty"` // UMD/IIFE global; defaults to PascalCase name
	Externals   []string  `yaml:"externals"`
}

// BuildMode is the node-environment marker handed to compilers.
type BuildMode string

const (
	ModeProduction  BuildMode = "production"
	ModeDevelopment BuildMode = "development"
)

// NormalizeBuildMode canonicalizes user input returning empty string if unknown.
func NormalizeBuildMode(raw string) BuildMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return ModeProduction
	case "development", "dev":
		return ModeDevelopment
	default:
		return ""
	}
}

// ModuleFormat is the module system a compile pass emits.
type ModuleFormat string

const (
	FormatESModule ModuleFormat = "esmodule"
	FormatCommonJS ModuleFormat = "commonjs"
)

// NormalizeModuleFormat canonicalizes user input returning empty string if unknown.
func NormalizeModuleFormat(raw string) ModuleFormat {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "esmodule", "esm", "es":
		return FormatESModule
	case "commonjs", "cjs":
		return FormatCommonJS
	default:
		return ""
	}
}

// StyleConfig configures style compilation and style entry generation.
type StyleConfig struct {
	Lang        string   `yaml:"lang"`           // css|less|scss
	Base        string   `yaml:"base,omitempty"` // base style relative to source dir
	LessCommand []string `yaml:"less_command"`
	SassCommand []string `yaml:"sass_command"`
}
