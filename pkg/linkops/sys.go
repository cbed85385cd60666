package linkops

// sysOps are the native calls the linker is built on
type sysOps interface {
	// symlink creates link holding value; dir marks a link to a directory
	symlink(value, link string, dir bool) error
	// hardlink creates link as another name for existing
	hardlink(existing, link string) error
	unlink(path string) error
	rmdir(path string) error
}
