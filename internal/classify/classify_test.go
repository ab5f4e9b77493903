package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/uibuild/internal/config"
)

func defaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	cfg, err := config.Default(t.TempDir())
	require.NoError(t, err)
	return New(cfg.Conventions)
}

func TestClassifyName(t *testing.T) {
	c := defaultClassifier(t)

	tests := []struct {
		name  string
		isDir bool
		want  Category
	}{
		{"button", true, Directory},
		{"demo", true, DemoDir},
		{"test", true, TestDir},
		{"demos", true, Directory},
		{"Index.vue", false, Component},
		{"index.js", false, Script},
		{"index.jsx", false, Script},
		{"utils.ts", false, Script},
		{"App.tsx", false, Script},
		{"index.less", false, Style},
		{"var.scss", false, Style},
		{"reset.css", false, Style},
		{"README.md", false, Other},
		{".DS_Store", false, Other},
		{".js", false, Other},
		{"demo", false, Other},
		{"index.vue", true, Directory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ClassifyName(tt.name, tt.isDir))
		})
	}
}

func TestClassify_UsesFilesystemKind(t *testing.T) {
	c := defaultClassifier(t)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "foo", "demo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "foo", "index.js"), nil, 0o644))

	got, err := c.Classify(filepath.Join(root, "foo"))
	require.NoError(t, err)
	assert.Equal(t, Directory, got)

	got, err = c.Classify(filepath.Join(root, "foo", "demo"))
	require.NoError(t, err)
	assert.Equal(t, DemoDir, got)

	got, err = c.Classify(filepath.Join(root, "foo", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, Script, got)

	_, err = c.Classify(filepath.Join(root, "missing"))
	require.Error(t, err)
}

func TestClassifyEntry(t *testing.T) {
	c := defaultClassifier(t)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "test"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.less"), nil, 0o644))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	got := map[string]Category{}
	for _, e := range entries {
		cat, err := c.ClassifyEntry(root, e)
		require.NoError(t, err)
		got[e.Name()] = cat
	}
	assert.Equal(t, map[string]Category{"test": TestDir, "a.less": Style}, got)
}

func TestCustomConventions(t *testing.T) {
	c := New(config.ConventionsConfig{
		DemoDirs:      []string{"examples"},
		TestDirs:      []string{"__tests__"},
		ComponentExts: []string{".svelte"},
		ScriptExts:    []string{".mjs"},
		StyleExts:     []string{".styl"},
	})
	assert.Equal(t, DemoDir, c.ClassifyName("examples", true))
	assert.Equal(t, TestDir, c.ClassifyName("__tests__", true))
	assert.Equal(t, Directory, c.ClassifyName("demo", true))
	assert.Equal(t, Component, c.ClassifyName("Card.svelte", false))
	assert.Equal(t, Script, c.ClassifyName("x.mjs", false))
	assert.Equal(t, Other, c.ClassifyName("x.js", false))
	assert.Equal(t, Style, c.ClassifyName("x.styl", false))
}

func TestClassifyName_LongestExtensionWins(t *testing.T) {
	c := New(config.ConventionsConfig{
		ComponentExts: []string{".vue"},
		ScriptExts:    []string{".js", ".ts"},
		StyleExts:     []string{".css", ".module.css", ".d.ts"},
	})
	assert.Equal(t, Style, c.ClassifyName("types.d.ts", false))
	assert.Equal(t, Script, c.ClassifyName("index.ts", false))
	assert.Equal(t, Style, c.ClassifyName("button.module.css", false))
}

func TestIsEntryExt(t *testing.T) {
	c := defaultClassifier(t)
	assert.True(t, c.IsEntryExt(".ts"))
	assert.True(t, c.IsEntryExt(".vue"))
	assert.False(t, c.IsEntryExt(".less"))
	assert.False(t, c.IsEntryExt(""))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "component", Component.String())
	assert.Equal(t, "demo", DemoDir.String())
	assert.True(t, TestDir.Excluded())
	assert.True(t, Other.Excluded())
	assert.False(t, Script.Excluded())
}

func TestComponents(t *testing.T) {
	c := defaultClassifier(t)
	src := t.TempDir()
	for _, f := range []string{
		"button/index.vue",
		"cell/index.ts",
		"utils/format.js",
		"style/base.less",
		"demo/index.js",
	} {
		p := filepath.Join(src, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.js"), nil, 0o644))

	got, err := c.Components(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"button", "cell"}, got)
}

func TestResolveEntry(t *testing.T) {
	c := defaultClassifier(t)
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "icon"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "icon", "index.tsx"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "utils.ts"), nil, 0o644))

	assert.Equal(t, filepath.Join(src, "icon", "index.tsx"), c.ResolveEntry(filepath.Join(src, "icon")))
	assert.Equal(t, filepath.Join(src, "utils.ts"), c.ResolveEntry(filepath.Join(src, "utils")))
	assert.Equal(t, "", c.ResolveEntry(filepath.Join(src, "missing")))
}
