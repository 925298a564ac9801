package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_EphemeralMode(t *testing.T) {
	mgr := NewManager(t.TempDir())
	require.NoError(t, mgr.Create())

	wsPath := mgr.GetPath()
	require.NotEmpty(t, wsPath)
	assert.True(t, strings.HasPrefix(filepath.Base(wsPath), "resumebuilder-"), wsPath)
	assert.DirExists(t, wsPath)

	markup, err := mgr.File("resume.typ")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wsPath, "resume.typ"), markup)

	require.NoError(t, mgr.Cleanup())
	assert.NoDirExists(t, wsPath)
	assert.Empty(t, mgr.GetPath())
}

func TestManager_EphemeralDistinct(t *testing.T) {
	base := t.TempDir()
	a, b := NewManager(base), NewManager(base)
	require.NoError(t, a.Create())
	require.NoError(t, b.Create())
	assert.NotEqual(t, a.GetPath(), b.GetPath())
}

func TestManager_PersistentMode(t *testing.T) {
	base := t.TempDir()
	mgr := NewPersistentManager(base, "")
	require.NoError(t, mgr.Create())

	wsPath := mgr.GetPath()
	assert.Equal(t, filepath.Join(base, "work"), wsPath)

	marker := filepath.Join(wsPath, "resume.typ")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0o644))

	require.NoError(t, mgr.Cleanup())
	assert.FileExists(t, marker)

	// A second manager reuses the same directory.
	again := NewPersistentManager(base, "work")
	require.NoError(t, again.Create())
	assert.Equal(t, wsPath, again.GetPath())
}

func TestManager_FileBeforeCreate(t *testing.T) {
	_, err := NewManager(t.TempDir()).File("resume.typ")
	assert.Error(t, err)
}
