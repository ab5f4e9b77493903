// Package config loads and validates the uibuild project configuration (uibuild.yaml).
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
)

// DefaultConfigFile is the configuration file name looked up when no path is given.
const DefaultConfigFile = "uibuild.yaml"

// Config represents the project build configuration.
type Config struct {
	Name        string            `yaml:"name,omitempty"`    // package / global name, defaults from package.json
	Version     string            `yaml:"version,omitempty"` // overrides package.json version
	SourceDir   string            `yaml:"source_dir"`
	Output      OutputConfig      `yaml:"output"`
	Conventions ConventionsConfig `yaml:"conventions"`
	Build       BuildConfig       `yaml:"build"`
	Style       StyleConfig       `yaml:"style"`
	SFC         SFCConfig         `yaml:"sfc"`
	Logging     LoggingConfig     `yaml:"logging"`

	root string // directory all relative paths resolve against
}

// OutputConfig names the output roots, relative to the project root.
type OutputConfig struct {
	ESDir   string `yaml:"es_dir"`
	LibDir  string `yaml:"lib_dir"`
	DistDir string `yaml:"dist_dir"`
}

// ConventionsConfig drives path classification.
type ConventionsConfig struct {
	DemoDirs      []string `yaml:"demo_dirs"`
	TestDirs      []string `yaml:"test_dirs"`
	ComponentExts []string `yaml:"component_exts"`
	ScriptExts    []string `yaml:"script_exts"`
	StyleExts     []string `yaml:"style_exts"`
}

// SFCConfig configures single-file component compilation.
type SFCConfig struct {
	// TemplateCommand compiles a <template> block read from stdin into JavaScript defining
	// `render` and `staticRenderFns`. Empty embeds the template as a string option.
	TemplateCommand []string `yaml:"template_command,omitempty"`
}

// Load reads the configuration file at configPath, expanding environment variables and
// applying defaults. Relative paths inside the file resolve against the file's directory.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "resolve config path").WithContext("path", configPath).Build()
	}
	root := filepath.Dir(absPath)

	loadEnvFiles(root)

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").WithContext("path", absPath).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "read config file").WithContext("path", absPath).Build()
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").WithContext("path", absPath).Fatal().Build()
	}
	cfg.root = root

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the zero-config configuration rooted at root.
func Default(root string) (*Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "resolve project root").WithContext("path", root).Build()
	}
	loadEnvFiles(absRoot)
	cfg := &Config{root: absRoot}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configPath, falling back to defaults rooted in the file's directory
// when the file does not exist and allowMissing is set.
func LoadOrDefault(configPath string, allowMissing bool) (*Config, error) {
	cfg, err := Load(configPath)
	if err != nil && allowMissing && errors.HasCategory(err, errors.CategoryNotFound) {
		absPath, absErr := filepath.Abs(configPath)
		if absErr != nil {
			return nil, err
		}
		return Default(filepath.Dir(absPath))
	}
	return cfg, err
}

func (c *Config) finalize() error {
	applyDefaults(c)
	if c.Name == "" || c.Version == "" {
		if pkg, err := ReadPackageJSON(c.root); err == nil {
			if c.Name == "" {
				c.Name = pkg.UnscopedName()
			}
			if c.Version == "" {
				c.Version = pkg.Version
			}
		}
	}
	if c.Name == "" {
		c.Name = filepath.Base(c.root)
	}
	if v := os.Getenv("PACKAGE_VERSION"); v != "" {
		c.Version = v
	}
	return Validate(c)
}

// Root returns the absolute project root.
func (c *Config) Root() string { return c.root }

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").WithContext("path", configPath).Build()
	}

	example := &Config{}
	applyDefaults(example)
	example.Name = "my-components"
	example.Style.Base = "style/base.less"
	example.Build.SkipInstall = []string{}

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.FileSystemError(err, "write config", configPath).Build()
	}
	return nil
}
