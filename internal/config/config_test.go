package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	writeFile(t, path, "name: my-ui\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "my-ui", cfg.Name)
	assert.Equal(t, dir, cfg.Root())
	assert.Equal(t, filepath.Join(dir, "src"), cfg.SourcePath())
	assert.Equal(t, filepath.Join(dir, "es"), cfg.ESPath())
	assert.Equal(t, filepath.Join(dir, "lib"), cfg.LibPath())
	assert.Equal(t, filepath.Join(dir, "dist", StyleDepsFile), cfg.StyleDepsPath())
	assert.Equal(t, ModeProduction, cfg.Build.Mode)
	assert.Equal(t, []string{"demo"}, cfg.Conventions.DemoDirs)
	assert.Equal(t, []string{"test"}, cfg.Conventions.TestDirs)
	assert.Equal(t, []string{".vue"}, cfg.Conventions.ComponentExts)
	assert.Equal(t, "less", cfg.Style.Lang)
	assert.Equal(t, []string{"vue"}, cfg.Build.Externals)
}

func TestLoad_ExpandsEnvAndReadsPackageJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UIBUILD_TEST_SRC", "components")
	t.Setenv("PACKAGE_VERSION", "")
	writeFile(t, filepath.Join(dir, "package.json"), `{"name":"@acme/widgets","version":"1.2.3"}`)
	path := filepath.Join(dir, DefaultConfigFile)
	writeFile(t, path, "source_dir: ${UIBUILD_TEST_SRC}\nbuild:\n  mode: dev\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "components"), cfg.SourcePath())
	assert.Equal(t, "widgets", cfg.Name)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, ModeDevelopment, cfg.Build.Mode)
}

func TestLoad_PackageVersionEnvWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PACKAGE_VERSION", "9.9.9")
	writeFile(t, filepath.Join(dir, "package.json"), `{"name":"widgets","version":"1.0.0"}`)

	cfg, err := Default(dir)
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", cfg.Version)
}

func TestLoad_DotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UIBUILD_TEST_DIST", "from-process")
	writeFile(t, filepath.Join(dir, ".env"), "UIBUILD_TEST_DIST=from-dotenv\n")
	path := filepath.Join(dir, DefaultConfigFile)
	writeFile(t, path, "output:\n  dist_dir: ${UIBUILD_TEST_DIST}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "from-process"), cfg.DistPath())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	})

	t.Run("unknown field", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		writeFile(t, path, "sourcedir: src\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	})

	t.Run("output overlapping source", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		writeFile(t, path, "output:\n  es_dir: src/es\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	})

	t.Run("duplicate extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		writeFile(t, path, "conventions:\n  script_exts: [.js, .vue]\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	})

	t.Run("bad mode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		writeFile(t, path, "build:\n  mode: staging\n")
		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOrDefault(filepath.Join(dir, DefaultConfigFile), true)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Root())
	assert.Equal(t, filepath.Base(dir), cfg.Name)

	_, err = LoadOrDefault(filepath.Join(dir, DefaultConfigFile), false)
	require.Error(t, err)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "my-components", cfg.Name)
	assert.Equal(t, "style/base.less", cfg.Style.Base)

	err = Init(path, false)
	require.Error(t, err)
	require.NoError(t, Init(path, true))
}

func TestNormalizers(t *testing.T) {
	assert.Equal(t, FormatCommonJS, NormalizeModuleFormat(" CJS "))
	assert.Equal(t, FormatESModule, NormalizeModuleFormat("esm"))
	assert.Equal(t, ModuleFormat(""), NormalizeModuleFormat("amd"))
	assert.Equal(t, ModeProduction, NormalizeBuildMode("prod"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat("pretty"))
}

func TestEffectiveLogLevel(t *testing.T) {
	t.Setenv("UIBUILD_LOG_LEVEL", "warn")
	assert.Equal(t, "DEBUG", EffectiveLogLevel(true, "error").String())
	assert.Equal(t, "WARN", EffectiveLogLevel(false, "error").String())
	t.Setenv("UIBUILD_LOG_LEVEL", "")
	assert.Equal(t, "ERROR", EffectiveLogLevel(false, "error").String())
}
