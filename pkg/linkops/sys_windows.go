//go:build windows

package linkops

import (
	"os"

	"golang.org/x/sys/windows"
)

// Lets non-elevated processes create links when Developer Mode is on.
const symbolicLinkFlagAllowUnprivilegedCreate = 0x2

type nativeOps struct{}

func (nativeOps) symlink(value, link string, dir bool) error {
	linkp, err := windows.UTF16PtrFromString(link)
	if err != nil {
		return &os.LinkError{Op: "symlink", Old: value, New: link, Err: err}
	}
	valuep, err := windows.UTF16PtrFromString(value)
	if err != nil {
		return &os.LinkError{Op: "symlink", Old: value, New: link, Err: err}
	}

	var flags uint32 = symbolicLinkFlagAllowUnprivilegedCreate
	if dir {
		flags |= windows.SYMBOLIC_LINK_FLAG_DIRECTORY
	}

	err = windows.CreateSymbolicLink(linkp, valuep, flags)
	if err != nil {
		// Older builds reject the unprivileged flag outright.
		err = windows.CreateSymbolicLink(linkp, valuep, flags&^symbolicLinkFlagAllowUnprivilegedCreate)
	}
	if err != nil {
		return &os.LinkError{Op: "symlink", Old: value, New: link, Err: err}
	}
	return nil
}

func (nativeOps) hardlink(existing, link string) error {
	linkp, err := windows.UTF16PtrFromString(link)
	if err != nil {
		return &os.LinkError{Op: "link", Old: existing, New: link, Err: err}
	}
	existingp, err := windows.UTF16PtrFromString(existing)
	if err != nil {
		return &os.LinkError{Op: "link", Old: existing, New: link, Err: err}
	}
	if err := windows.CreateHardLink(linkp, existingp, 0); err != nil {
		return &os.LinkError{Op: "link", Old: existing, New: link, Err: err}
	}
	return nil
}

func (nativeOps) unlink(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err == nil {
		err = windows.DeleteFile(p)
	}
	if err != nil {
		return &os.PathError{Op: "unlink", Path: path, Err: err}
	}
	return nil
}

func (nativeOps) rmdir(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err == nil {
		err = windows.RemoveDirectory(p)
	}
	if err != nil {
		return &os.PathError{Op: "rmdir", Path: path, Err: err}
	}
	return nil
}
