package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateFile creates a file with the given content below dir, creating parent
// directories as needed.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "create parent of %s", path)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "create file %s", path)

	return path
}

// CreateDir creates a directory (and its parents) below parent.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(path, 0755), "create directory %s", path)

	return path
}

// CreateSymlink creates a symbolic link at link whose value is target.
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755), "create parent of %s", link)
	require.NoError(t, os.Symlink(target, link), "symlink %s -> %s", link, target)
}

// FileExists reports whether path exists and is not a directory.
func FileExists(t *testing.T, path string) bool {
	t.Helper()

	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists reports whether path is a directory, following links.
func DirExists(t *testing.T, path string) bool {
	t.Helper()

	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// SymlinkExists reports whether path itself is a symbolic link.
func SymlinkExists(t *testing.T, path string) bool {
	t.Helper()

	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// ReadFile returns the content of a file.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "read file %s", path)

	return string(content)
}

// ReadSymlink returns the raw value of a symbolic link.
func ReadSymlink(t *testing.T, path string) string {
	t.Helper()

	target, err := os.Readlink(path)
	require.NoError(t, err, "read symlink %s", path)

	return target
}

// AssertFileContent checks that path is a file with the expected content.
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()

	require.True(t, FileExists(t, path), "file %s does not exist", path)
	require.Equal(t, expected, ReadFile(t, path), "content of %s", path)
}

// AssertSymlink checks that link is a symbolic link whose raw value is expectedValue.
func AssertSymlink(t *testing.T, link, expectedValue string) {
	t.Helper()

	require.True(t, SymlinkExists(t, link), "symlink %s does not exist", link)
	require.Equal(t, expectedValue, ReadSymlink(t, link), "value of symlink %s", link)
}

// AssertLinksTo checks that link is a symbolic link which, resolved against its
// own directory, names target.
func AssertLinksTo(t *testing.T, link, target string) {
	t.Helper()

	require.True(t, SymlinkExists(t, link), "symlink %s does not exist", link)

	value := ReadSymlink(t, link)
	if !filepath.IsAbs(value) {
		value = filepath.Join(filepath.Dir(link), value)
	}
	require.Equal(t, filepath.Clean(target), filepath.Clean(value), "target of symlink %s", link)
}

// AssertSameFile checks that a and b are the same file on disk (hard links).
func AssertSameFile(t *testing.T, a, b string) {
	t.Helper()

	infoA, err := os.Stat(a)
	require.NoError(t, err)
	infoB, err := os.Stat(b)
	require.NoError(t, err)
	require.True(t, os.SameFile(infoA, infoB), "%s and %s are different files", a, b)
}

// AssertNoFile checks that nothing exists at path, not even a dangling link.
func AssertNoFile(t *testing.T, path string) {
	t.Helper()

	_, err := os.Lstat(path)
	require.True(t, os.IsNotExist(err), "%s exists but should not", path)
}

// Chmod changes the permissions of a file or directory and restores 0755 when
// the test ends so t.TempDir can clean up.
func Chmod(t *testing.T, path string, mode os.FileMode) {
	t.Helper()

	require.NoError(t, os.Chmod(path, mode))
	t.Cleanup(func() { _ = os.Chmod(path, 0755) })
}

// SkipOnWindows skips the test if running on Windows.
func SkipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("Test not supported on Windows")
	}
}

// SkipAsRoot skips tests that rely on permission errors.
func SkipAsRoot(t *testing.T) {
	t.Helper()

	if runtime.GOOS != "windows" && os.Geteuid() == 0 {
		t.Skip("Permission checks do not apply to root")
	}
}
