package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFilesystem(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	require.NoError(t, fs.WriteFile(testFile, testContent, 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	require.NoError(t, fs.Chmod(testFile, 0755))
	info, err = fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	testDir := filepath.Join(tmpDir, "subdir", "nested")
	require.NoError(t, fs.MkdirAll(testDir, 0755))

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	renamed := filepath.Join(tmpDir, "renamed.txt")
	require.NoError(t, fs.Rename(testFile, renamed))

	link := filepath.Join(tmpDir, "link")
	require.NoError(t, fs.Symlink(renamed, link))
	target, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, renamed, target)

	linfo, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, linfo.Mode()&os.ModeSymlink)

	require.NoError(t, fs.Remove(renamed))
	_, err = fs.Stat(renamed)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fs.RemoveAll(filepath.Join(tmpDir, "subdir")))
	_, err = fs.Stat(testDir)
	assert.True(t, os.IsNotExist(err))
}

func TestAferoFilesystem(t *testing.T) {
	fs := NewMemFS()

	require.NoError(t, fs.MkdirAll("/work/a", 0755))
	require.NoError(t, fs.WriteFile("/work/a/file.txt", []byte("data"), 0644))

	content, err := fs.ReadFile("/work/a/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	_, err = fs.ReadFile("/work/a")
	assert.Error(t, err)

	entries, err := fs.ReadDir("/work")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())

	require.NoError(t, fs.Symlink("/Applications", "/work/Applications"))
	target, err := fs.Readlink("/work/Applications")
	require.NoError(t, err)
	assert.Equal(t, "/Applications", target)

	_, err = fs.Lstat("/work/missing")
	assert.True(t, os.IsNotExist(err))
}

func TestIsOS(t *testing.T) {
	assert.True(t, IsOS(NewOS()))
	assert.False(t, IsOS(NewMemFS()))
}
