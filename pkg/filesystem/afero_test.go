package filesystem_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/akeeba/buildfiles/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReadDirSorted(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/repo/plugins/system/b", 0755))
	require.NoError(t, fsys.MkdirAll("/repo/plugins/system/a", 0755))
	require.NoError(t, fsys.WriteFile("/repo/plugins/system/c.txt", []byte("x"), 0644))

	entries, err := fsys.ReadDir("/repo/plugins/system")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a", "b", "c.txt"}, names)
	assert.True(t, entries[0].IsDir())
	assert.False(t, entries[2].IsDir())
}

func TestReadFileOnDirectory(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/repo", 0755))

	_, err := fsys.ReadFile("/repo")
	assert.Error(t, err)
}

func TestCopyFileOverwrites(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.WriteFile("/src/en-GB.plg_system_foo.ini", []byte("NEW=1"), 0644))
	require.NoError(t, fsys.WriteFile("/dst/deep/en-GB.plg_system_foo.ini", []byte("OLD=1\nLONGER=2"), 0644))

	require.NoError(t, fsys.CopyFile("/src/en-GB.plg_system_foo.ini", "/dst/deep/en-GB.plg_system_foo.ini"))

	data, err := fsys.ReadFile("/dst/deep/en-GB.plg_system_foo.ini")
	require.NoError(t, err)
	assert.Equal(t, "NEW=1", string(data))
}

func TestCopyFileCreatesParents(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.WriteFile("/src/a.ini", []byte("A=1"), 0644))

	require.NoError(t, fsys.CopyFile("/src/a.ini", "/dst/x/y/a.ini"))
	assert.True(t, filesystem.IsDir(fsys, "/dst/x/y"))
	assert.True(t, filesystem.Exists(fsys, "/dst/x/y/a.ini"))
}

func TestCopyFileMissingSource(t *testing.T) {
	fsys := filesystem.NewMemory()
	assert.Error(t, fsys.CopyFile("/nope.ini", "/dst/nope.ini"))
	assert.False(t, filesystem.Exists(fsys, "/dst/nope.ini"))
}

func TestOSLstatSeesLinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Mkdir(target, 0755))
	require.NoError(t, os.Symlink(target, link))

	fsys := filesystem.NewOS()

	info, err := fsys.Lstat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0)

	info, err = fsys.Stat(link)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
