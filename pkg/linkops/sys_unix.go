//go:build unix

package linkops

import (
	"os"

	"golang.org/x/sys/unix"
)

type nativeOps struct{}

func (nativeOps) symlink(value, link string, _ bool) error {
	if err := unix.Symlink(value, link); err != nil {
		return &os.LinkError{Op: "symlink", Old: value, New: link, Err: err}
	}
	return nil
}

func (nativeOps) hardlink(existing, link string) error {
	if err := unix.Link(existing, link); err != nil {
		return &os.LinkError{Op: "link", Old: existing, New: link, Err: err}
	}
	return nil
}

func (nativeOps) unlink(path string) error {
	if err := unix.Unlink(path); err != nil {
		return &os.PathError{Op: "unlink", Path: path, Err: err}
	}
	return nil
}

func (nativeOps) rmdir(path string) error {
	if err := unix.Rmdir(path); err != nil {
		return &os.PathError{Op: "rmdir", Path: path, Err: err}
	}
	return nil
}
