package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "swap.rs"), []byte("pub struct Swap {}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mod.rs"), []byte("pub mod swap;"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0644))

	files, exists := New(nil).ModuleFiles(dir)

	assert.True(t, exists)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "swap.rs"), files[0].Path)
	assert.Equal(t, "pub struct Swap {}", files[0].Content)
}

func TestModuleFilesMissingDirectory(t *testing.T) {
	files, exists := New(nil).ModuleFiles(filepath.Join(t.TempDir(), "absent"))

	assert.False(t, exists)
	assert.Empty(t, files)
}

func TestModuleFilesSortedByName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.rs"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.rs"), []byte("a"), 0644))

	files, _ := New(nil).ModuleFiles(dir)

	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.rs"), files[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.rs"), files[1].Path)
}

func TestReadFileDegrades(t *testing.T) {
	content, ok := New(nil).ReadFile(filepath.Join(t.TempDir(), "absent.rs"))

	assert.False(t, ok)
	assert.Empty(t, content)
}

func TestProjectDirs(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"beta_interface", "alpha_interface"} {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]"), 0644))
	}
	// No manifest: not a project.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "scratch"), 0755))
	// Ignored directory with a manifest.
	target := filepath.Join(root, "target")
	require.NoError(t, os.MkdirAll(target, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "Cargo.toml"), []byte("[package]"), 0644))

	dirs, err := New(nil).ProjectDirs(root, "Cargo.toml")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "alpha_interface"),
		filepath.Join(root, "beta_interface"),
	}, dirs)
}
