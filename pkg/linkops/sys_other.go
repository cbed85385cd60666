//go:build !unix && !windows

package linkops

import (
	"io/fs"
	"os"
)

type nativeOps struct{}

func (nativeOps) symlink(value, link string, _ bool) error {
	return os.Symlink(value, link)
}

func (nativeOps) hardlink(existing, link string) error {
	return os.Link(existing, link)
}

func (nativeOps) unlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &os.PathError{Op: "unlink", Path: path, Err: fs.ErrInvalid}
	}
	return os.Remove(path)
}

func (nativeOps) rmdir(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "rmdir", Path: path, Err: fs.ErrInvalid}
	}
	return os.Remove(path)
}
