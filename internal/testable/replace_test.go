package testable

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "data.json")

	require.NoError(t, ReplaceFile(DefaultFS, path, []byte("new"), 0o600, 0o750))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file is renamed away")
}

func TestReplaceFile_RenameFailureCleansUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	fsys := &MockFileSystem{
		RenameFn: func(_, _ string) error { return errors.New("cross-device link") },
	}
	err := ReplaceFile(fsys, path, []byte("new"), 0o600, 0o750)
	require.ErrorContains(t, err, "replace data.json: cross-device link")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestReplaceFile_WriteFailure(t *testing.T) {
	fsys := &MockFileSystem{
		MkdirAllFn:  func(string, os.FileMode) error { return nil },
		WriteFileFn: func(string, []byte, os.FileMode) error { return errors.New("disk full") },
	}
	err := ReplaceFile(fsys, "/x/data.json", nil, 0o600, 0o750)
	assert.ErrorContains(t, err, "disk full")
}

func TestMockFileSystem_FallsThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	m := &MockFileSystem{}
	require.NoError(t, m.WriteFile(path, []byte("x"), 0o600))
	data, err := m.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
	info, err := m.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}
