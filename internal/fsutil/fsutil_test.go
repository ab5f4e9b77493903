package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
)

func TestCopyDir_CopiesNestedTreeAndOverwrites(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(src, "button", "demo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "button", "index.js"), []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "button", "demo", "App.vue"), []byte("<template/>"), 0o644))

	require.NoError(t, os.MkdirAll(filepath.Join(dst, "button"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "button", "index.js"), []byte("old content"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "stale.js"), []byte("stale"), 0o644))

	require.NoError(t, CopyDir(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "button", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.FileExists(t, filepath.Join(dst, "button", "demo", "App.vue"))
	assert.FileExists(t, filepath.Join(dst, "stale.js"), "copy never deletes destination extras")
}

func TestCopyDir_MissingSource(t *testing.T) {
	err := CopyDir(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestWriteFileAndRemoveAll(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "a", "b", "c.txt")

	require.NoError(t, WriteFile(target, []byte("x")))
	assert.True(t, Exists(target))

	require.NoError(t, RemoveAll(filepath.Join(root, "a")))
	assert.False(t, Exists(target))
	require.NoError(t, RemoveAll(filepath.Join(root, "a")), "removing twice is fine")
}

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "/x/index.js", ReplaceExt("/x/index.ts", ".js"))
	assert.Equal(t, "/x/index.css", ReplaceExt("/x/index.less", ".css"))
	assert.Equal(t, "/x/Makefile.js", ReplaceExt("/x/Makefile", ".js"))
}
