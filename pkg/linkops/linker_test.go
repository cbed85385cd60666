package linkops

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/akeeba/buildfiles/pkg/platform"
	"github.com/akeeba/buildfiles/pkg/testutil"
	"github.com/akeeba/buildfiles/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingOps lets tests break one native call
type failingOps struct {
	nativeOps
	failSymlink  bool
	failHardlink bool
	failRemove   map[string]bool
}

func (f failingOps) symlink(value, link string, dir bool) error {
	if f.failSymlink {
		return &os.LinkError{Op: "symlink", Old: value, New: link, Err: os.ErrPermission}
	}
	return f.nativeOps.symlink(value, link, dir)
}

func (f failingOps) hardlink(existing, link string) error {
	if f.failHardlink {
		return &os.LinkError{Op: "link", Old: existing, New: link, Err: stderrors.New("cross-device link")}
	}
	return f.nativeOps.hardlink(existing, link)
}

func (f failingOps) unlink(path string) error {
	if f.failRemove[path] {
		return &os.PathError{Op: "unlink", Path: path, Err: os.ErrPermission}
	}
	return f.nativeOps.unlink(path)
}

func (f failingOps) rmdir(path string) error {
	if f.failRemove[path] {
		return &os.PathError{Op: "rmdir", Path: path, Err: os.ErrPermission}
	}
	return f.nativeOps.rmdir(path)
}

func newTestLinker(t *testing.T) *Linker {
	t.Helper()
	testutil.SkipOnWindows(t)
	return New(platform.Detect())
}

func TestCreateLinkStoresRelativeValue(t *testing.T) {
	l := newTestLinker(t)
	root := t.TempDir()
	source := testutil.CreateDir(t, root, "repo/libraries/fof")
	testutil.CreateFile(t, source, "include.php", "<?php")
	target := filepath.Join(root, "site", "libraries", "fof")

	require.NoError(t, l.CreateLink(source, target, types.LinkSymbolic))

	testutil.AssertSymlink(t, target, filepath.Join("..", "..", "repo", "libraries", "fof"))
	testutil.AssertLinksTo(t, target, source)
	testutil.AssertFileContent(t, filepath.Join(target, "include.php"), "<?php")
}

func TestCreateLinkSiblingValue(t *testing.T) {
	l := newTestLinker(t)
	root := t.TempDir()
	source := testutil.CreateFile(t, root, "a/original.txt", "x")
	target := filepath.Join(root, "a", "copy.txt")

	require.NoError(t, l.CreateLink(source, target, types.LinkSymbolic))
	testutil.AssertSymlink(t, target, "./original.txt")
	testutil.AssertFileContent(t, target, "x")
}

func TestCreateLinkResolvesDotSegments(t *testing.T) {
	l := newTestLinker(t)
	root := t.TempDir()
	source := testutil.CreateDir(t, root, "repo/plugins/system/foo")

	target := filepath.Join(root, "site", "tmp", "..", "plugins", ".", "system", "foo")
	require.NoError(t, l.CreateLink(source+string(filepath.Separator)+".", target, types.LinkSymbolic))

	testutil.AssertLinksTo(t, filepath.Join(root, "site", "plugins", "system", "foo"), source)
	testutil.AssertNoFile(t, filepath.Join(root, "site", "tmp"))
}

func TestCreateLinkIsIdempotent(t *testing.T) {
	l := newTestLinker(t)
	root := t.TempDir()
	source := testutil.CreateDir(t, root, "repo/component/com_foo")
	target := filepath.Join(root, "site", "components", "com_foo")

	require.NoError(t, l.CreateLink(source, target, types.LinkSymbolic))
	first := testutil.ReadSymlink(t, target)

	require.NoError(t, l.CreateLink(source, target, types.LinkSymbolic))
	assert.Equal(t, first, testutil.ReadSymlink(t, target))
	testutil.AssertLinksTo(t, target, source)

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCreateLinkReplacesExisting(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, target, root string)
	}{
		{
			name: "stale real directory",
			setup: func(t *testing.T, target, root string) {
				testutil.CreateFile(t, target, "stale.php", "old")
				testutil.CreateFile(t, target, "deep/nested/stale.txt", "old")
			},
		},
		{
			name: "regular file",
			setup: func(t *testing.T, target, root string) {
				testutil.CreateFile(t, filepath.Dir(target), filepath.Base(target), "file")
			},
		},
		{
			name: "dangling link",
			setup: func(t *testing.T, target, root string) {
				testutil.CreateSymlink(t, filepath.Join(root, "gone"), target)
			},
		},
		{
			name: "link to another directory",
			setup: func(t *testing.T, target, root string) {
				other := testutil.CreateDir(t, root, "other")
				testutil.CreateFile(t, other, "keep.txt", "keep")
				testutil.CreateSymlink(t, other, target)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLinker(t)
			root := t.TempDir()
			source := testutil.CreateDir(t, root, "repo/libraries/fof")
			testutil.CreateFile(t, source, "fresh.php", "new")
			target := filepath.Join(root, "site", "libraries", "fof")
			tt.setup(t, target, root)

			require.NoError(t, l.CreateLink(source, target, types.LinkSymbolic))

			testutil.AssertLinksTo(t, target, source)
			testutil.AssertNoFile(t, filepath.Join(target, "stale.php"))
			testutil.AssertFileContent(t, filepath.Join(target, "fresh.php"), "new")
		})
	}

	t.Run("previous link destination survives", func(t *testing.T) {
		l := newTestLinker(t)
		root := t.TempDir()
		source := testutil.CreateDir(t, root, "repo/x")
		other := testutil.CreateDir(t, root, "other")
		testutil.CreateFile(t, other, "keep.txt", "keep")
		target := filepath.Join(root, "site", "x")
		testutil.CreateSymlink(t, other, target)

		require.NoError(t, l.CreateLink(source, target, types.LinkSymbolic))
		testutil.AssertFileContent(t, filepath.Join(other, "keep.txt"), "keep")
	})
}

func TestCreateLinkHardLink(t *testing.T) {
	l := newTestLinker(t)
	root := t.TempDir()
	source := testutil.CreateFile(t, root, "repo/language/en-GB/en-GB.lib_fof.ini", "A=1")
	target := filepath.Join(root, "site", "language", "en-GB", "en-GB.lib_fof.ini")

	require.NoError(t, l.CreateLink(source, target, types.LinkHard))

	assert.False(t, testutil.SymlinkExists(t, target))
	testutil.AssertSameFile(t, source, target)
}

func TestCreateLinkHardLinkToDirectoryDowngrades(t *testing.T) {
	l := newTestLinker(t)
	var buf bytes.Buffer
	l.logger = zerolog.New(&buf)

	root := t.TempDir()
	source := testutil.CreateDir(t, root, "repo/media/com_foo")
	target := filepath.Join(root, "site", "media", "com_foo")

	require.NoError(t, l.CreateLink(source, target, types.LinkHard))

	testutil.AssertLinksTo(t, target, source)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "making a symbolic link instead")
}

func TestCreateLinkErrors(t *testing.T) {
	t.Run("link syscall fails", func(t *testing.T) {
		l := newTestLinker(t)
		l.sys = failingOps{failSymlink: true}
		root := t.TempDir()
		source := testutil.CreateDir(t, root, "repo/x")
		target := filepath.Join(root, "site", "x")

		err := l.CreateLink(source, target, types.LinkSymbolic)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrLinkCreate))
		assert.Equal(t, target, errors.GetErrorDetails(err)["target"])
		testutil.AssertNoFile(t, target)
	})

	t.Run("hard link fails", func(t *testing.T) {
		l := newTestLinker(t)
		l.sys = failingOps{failHardlink: true}
		root := t.TempDir()
		source := testutil.CreateFile(t, root, "repo/a.ini", "A=1")

		err := l.CreateLink(source, filepath.Join(root, "site", "a.ini"), types.LinkHard)
		assert.True(t, errors.IsErrorCode(err, errors.ErrLinkCreate))
	})

	t.Run("existing target cannot be removed", func(t *testing.T) {
		l := newTestLinker(t)
		root := t.TempDir()
		source := testutil.CreateDir(t, root, "repo/x")
		target := testutil.CreateFile(t, root, "site/x", "occupied")
		l.sys = failingOps{failRemove: map[string]bool{target: true}}

		err := l.CreateLink(source, target, types.LinkSymbolic)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrLinkConflict))
		testutil.AssertFileContent(t, target, "occupied")
	})

	t.Run("parent cannot be created", func(t *testing.T) {
		l := newTestLinker(t)
		root := t.TempDir()
		source := testutil.CreateDir(t, root, "repo/x")
		blocker := testutil.CreateFile(t, root, "site", "not a directory")

		err := l.CreateLink(source, filepath.Join(blocker, "libraries", "x"), types.LinkSymbolic)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDirCreate))
	})
}

func TestCreateLinkRefusesOwnSource(t *testing.T) {
	t.Run("same file", func(t *testing.T) {
		l := newTestLinker(t)
		root := t.TempDir()
		file := testutil.CreateFile(t, root, "repo/a.ini", "A=1")

		err := l.CreateLink(file, file, types.LinkSymbolic)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrLinkConflict))
		assert.False(t, testutil.SymlinkExists(t, file))
		testutil.AssertFileContent(t, file, "A=1")
	})

	t.Run("same directory", func(t *testing.T) {
		l := newTestLinker(t)
		root := t.TempDir()
		dir := testutil.CreateDir(t, root, "libraries/fof")
		testutil.CreateFile(t, dir, "fof.php", "<?php")

		err := l.CreateLink(dir, filepath.Join(root, "libraries", ".", "fof"), types.LinkHard)
		assert.True(t, errors.IsErrorCode(err, errors.ErrLinkConflict))
		testutil.AssertFileContent(t, filepath.Join(dir, "fof.php"), "<?php")
	})

	t.Run("target holds the source", func(t *testing.T) {
		l := newTestLinker(t)
		root := t.TempDir()
		source := testutil.CreateFile(t, root, "repo/libraries/fof/fof.php", "<?php")

		err := l.CreateLink(source, filepath.Join(root, "repo", "libraries"), types.LinkSymbolic)
		assert.True(t, errors.IsErrorCode(err, errors.ErrLinkConflict))
		testutil.AssertFileContent(t, source, "<?php")
	})

	t.Run("target reaches the source through a linked parent", func(t *testing.T) {
		l := newTestLinker(t)
		root := t.TempDir()
		source := testutil.CreateDir(t, root, "repo/libraries/fof")
		testutil.CreateFile(t, source, "fof.php", "<?php")
		testutil.CreateDir(t, root, "site")
		testutil.CreateSymlink(t, filepath.Join(root, "repo", "libraries"), filepath.Join(root, "site", "libraries"))

		err := l.CreateLink(source, filepath.Join(root, "site", "libraries", "fof"), types.LinkSymbolic)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrLinkConflict))
		assert.Equal(t, source, errors.GetErrorDetails(err)["source"])
		testutil.AssertFileContent(t, filepath.Join(source, "fof.php"), "<?php")
		assert.False(t, testutil.SymlinkExists(t, source))
	})

	t.Run("existing link to the source is replaced", func(t *testing.T) {
		l := newTestLinker(t)
		root := t.TempDir()
		source := testutil.CreateFile(t, root, "repo/a.ini", "A=1")
		target := filepath.Join(root, "site", "a.ini")

		require.NoError(t, l.CreateLink(source, target, types.LinkHard))
		require.NoError(t, l.CreateLink(source, target, types.LinkHard))
		testutil.AssertSameFile(t, target, source)
	})
}

func TestLinkContents(t *testing.T) {
	l := newTestLinker(t)
	root := t.TempDir()
	source := testutil.CreateDir(t, root, "repo/build/assets")
	testutil.CreateFile(t, source, "a.css", "a")
	testutil.CreateFile(t, source, "b.js", "b")
	testutil.CreateDir(t, source, "img")
	target := filepath.Join(root, "site", "media", "assets")
	testutil.CreateFile(t, target, "a.css", "stale")
	testutil.CreateFile(t, target, "unrelated.txt", "keep")

	results, err := l.LinkContents(source, target, types.LinkSymbolic)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results {
		assert.NoError(t, r.Error)
		testutil.AssertLinksTo(t, r.Target, r.Source)
	}
	testutil.AssertFileContent(t, filepath.Join(target, "a.css"), "a")
	testutil.AssertFileContent(t, filepath.Join(target, "unrelated.txt"), "keep")
	assert.True(t, testutil.DirExists(t, filepath.Join(target, "img")))
}

func TestLinkContentsPartialFailure(t *testing.T) {
	l := newTestLinker(t)
	root := t.TempDir()
	source := testutil.CreateDir(t, root, "repo/assets")
	testutil.CreateFile(t, source, "a.css", "a")
	testutil.CreateFile(t, source, "b.css", "b")
	target := filepath.Join(root, "site", "assets")
	blocked := testutil.CreateFile(t, target, "a.css", "occupied")
	l.sys = failingOps{failRemove: map[string]bool{blocked: true}}

	results, err := l.LinkContents(source, target, types.LinkSymbolic)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, errors.IsErrorCode(results[0].Error, errors.ErrLinkConflict))
	assert.NoError(t, results[1].Error)
	testutil.AssertLinksTo(t, results[1].Target, results[1].Source)
}

func TestLinkContentsMissingSource(t *testing.T) {
	l := newTestLinker(t)
	root := t.TempDir()

	_, err := l.LinkContents(filepath.Join(root, "nope"), filepath.Join(root, "site"), types.LinkSymbolic)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
