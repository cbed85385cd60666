package linkops

import (
	"os"
	"path/filepath"
)

// RemoveAny deletes whatever is at target: a file, a link to a file or to a
// directory (the link's destination is left alone), a dangling link or a real
// directory with all its contents. A missing target counts as removed.
func (l *Linker) RemoveAny(target string) bool {
	path := l.Canonical(target)

	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return true
	}

	// Windows directory links only go away with rmdir.
	if l.platform.Windows && isDir(path) {
		if l.sys.rmdir(path) == nil {
			return true
		}
	}

	if l.sys.unlink(path) == nil {
		return true
	}

	info, err := os.Lstat(path)
	if err != nil {
		return os.IsNotExist(err)
	}
	if info.IsDir() {
		return l.RecursiveDelete(path)
	}

	l.logger.Debug().Str("path", path).Msg("cannot remove")
	return false
}

// RecursiveDelete removes dir and everything below it, depth first. Entries
// that cannot be removed are skipped and make the result false; their
// siblings are still attempted.
func (l *Linker) RecursiveDelete(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Debug().Err(err).Str("path", dir).Msg("cannot read directory")
		return false
	}

	ok := true
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			// An empty directory or a directory link goes with a plain rmdir.
			if l.sys.rmdir(path) != nil && !l.RecursiveDelete(path) {
				ok = false
			}
			continue
		}

		if l.sys.rmdir(path) == nil {
			continue
		}
		if err := l.sys.unlink(path); err != nil {
			l.logger.Debug().Err(err).Str("path", path).Msg("cannot delete file")
			ok = false
		}
	}

	if err := l.sys.rmdir(dir); err != nil {
		l.logger.Debug().Err(err).Str("path", dir).Msg("cannot delete directory")
		return false
	}
	return ok
}
