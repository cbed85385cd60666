package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/akeeba/buildfiles/pkg/filesystem"
	"github.com/akeeba/buildfiles/pkg/types"
)

// languageExt is the extension of language pack files
const languageExt = ".ini"

// listDirs returns the visible subdirectories of dir, sorted. Links to
// directories count. An unreadable dir is logged and reads as empty.
func (s *Scanner) listDirs(dir string) []string {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		s.noteIncomplete(dir, err)
		return nil
	}

	var dirs []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() || (e.Type()&fs.ModeSymlink != 0 && filesystem.IsDir(s.fs, filepath.Join(dir, name))) {
			dirs = append(dirs, name)
		}
	}
	sort.Strings(dirs)
	return dirs
}

// listFiles returns the regular files of dir with the given extension, sorted
func (s *Scanner) listFiles(dir, ext string) []string {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		s.noteIncomplete(dir, err)
		return nil
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !filesystem.Exists(s.fs, path) {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// languageFiles collects <src>/<language_dir>/<tag>/*.ini; tags without files
// are left out and an extension without any returns nil
func (s *Scanner) languageFiles(src string) types.LanguageFiles {
	langDir := joinRel(src, s.layout.LanguageDir)
	if !filesystem.IsDir(s.fs, langDir) {
		return nil
	}

	var result types.LanguageFiles
	for _, tag := range s.listDirs(langDir) {
		files := s.listFiles(filepath.Join(langDir, tag), languageExt)
		if len(files) == 0 {
			continue
		}
		if result == nil {
			result = make(types.LanguageFiles)
		}
		result[tag] = files
	}
	return result
}

// noteIncomplete records a candidate that could not be read. Absence is
// normal and silent; anything else is kept at debug level.
func (s *Scanner) noteIncomplete(dir string, err error) {
	if os.IsNotExist(err) {
		return
	}
	e := errors.Wrapf(err, errors.ErrScanIncomplete, "cannot read %s", dir)
	s.logger.Debug().Err(e).Str("path", dir).Msg("treating unreadable candidate as absent")
}
