package fileutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.go")

	require.NoError(t, WriteFile(path, []byte("package x\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package x\n", string(got))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should not remain")
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.go")
	require.NoError(t, WriteFile(path, []byte("one")))
	require.NoError(t, WriteFile(path, []byte("two")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestWriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build_info.go")

	written, err := WriteIfChanged(path, []byte("v1"))
	require.NoError(t, err)
	assert.True(t, written, "missing file must be written")

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	written, err = WriteIfChanged(path, []byte("v1"))
	require.NoError(t, err)
	assert.False(t, written, "identical content must not be written")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "mtime changed on skipped write")

	written, err = WriteIfChanged(path, []byte("v2"))
	require.NoError(t, err)
	assert.True(t, written)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}

func TestWriteIfChanged_UnreadableTarget(t *testing.T) {
	dir := t.TempDir()
	// A directory at the target path cannot be read as a file.
	target := filepath.Join(dir, "build_info.go")
	require.NoError(t, os.Mkdir(target, 0o755))

	written, err := WriteIfChanged(target, []byte("x"))
	require.Error(t, err)
	assert.False(t, written)
}
