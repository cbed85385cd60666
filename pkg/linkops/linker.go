package linkops

import (
	"os"
	"path/filepath"

	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/akeeba/buildfiles/pkg/logging"
	"github.com/akeeba/buildfiles/pkg/paths"
	"github.com/akeeba/buildfiles/pkg/platform"
	"github.com/akeeba/buildfiles/pkg/types"
	"github.com/rs/zerolog"
)

// Linker creates and removes links with the semantics of one platform
type Linker struct {
	platform platform.Platform
	sys      sysOps
	logger   zerolog.Logger
}

// New returns a linker using the native system calls of the host
func New(p platform.Platform) *Linker {
	return &Linker{
		platform: p,
		sys:      nativeOps{},
		logger:   logging.GetLogger("linkops"),
	}
}

// Platform returns the platform the linker was built for
func (l *Linker) Platform() platform.Platform {
	return l.platform
}

// Canonical returns the absolute, lexically resolved form of path
func (l *Linker) Canonical(path string) string {
	if l.platform.Windows {
		path = paths.Normalize(path, true)
	}
	return paths.Canonicalize(path)
}

// CreateLink makes target a link to source, replacing anything already at
// target. Hard links to directories become symbolic links with a warning.
// A target that is, or holds, the source itself is a conflict and nothing is
// removed.
func (l *Linker) CreateLink(source, target string, kind types.LinkKind) error {
	src := l.Canonical(source)
	dst := l.Canonical(target)
	if err := guardSource(src, dst); err != nil {
		return err
	}
	srcIsDir := isDir(src)

	if kind == types.LinkHard && srcIsDir {
		l.logger.Warn().
			Str("source", src).
			Str("target", dst).
			Msg("Cannot create hard link to a directory; making a symbolic link instead")
		kind = types.LinkSymbolic
	}

	parent := filepath.Dir(dst)
	if !isDir(parent) {
		if err := os.MkdirAll(parent, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", parent).
				WithDetail("target", dst)
		}
	}

	if _, err := os.Lstat(dst); err == nil {
		if !l.RemoveAny(dst) {
			return errors.Newf(errors.ErrLinkConflict, "cannot delete link target %s", dst).
				WithDetail("source", src).
				WithDetail("target", dst)
		}
	}

	var err error
	switch kind {
	case types.LinkHard:
		err = l.sys.hardlink(src, dst)
	default:
		value := paths.Relativize(src, parent)
		err = l.sys.symlink(value, dst, srcIsDir)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "cannot create %s %s", kindLabel(kind), dst).
			WithDetail("source", src).
			WithDetail("target", dst).
			WithDetail("kind", string(kind))
	}

	l.logger.Debug().
		Str("source", src).
		Str("target", dst).
		Str("kind", string(kind)).
		Msg("link created")
	return nil
}

// LinkResult is the outcome of one link made by LinkContents
type LinkResult struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Error  error  `json:"-" yaml:"-"`
}

// LinkContents links every entry of sourceDir into targetDir, one link per
// entry. A failed entry does not stop the others. The error is only set when
// sourceDir cannot be read.
func (l *Linker) LinkContents(sourceDir, targetDir string, kind types.LinkKind) ([]LinkResult, error) {
	src := l.Canonical(sourceDir)
	dst := l.Canonical(targetDir)

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot read directory %s", src)
	}

	results := make([]LinkResult, 0, len(entries))
	for _, entry := range entries {
		r := LinkResult{
			Source: filepath.Join(src, entry.Name()),
			Target: filepath.Join(dst, entry.Name()),
		}
		r.Error = l.CreateLink(r.Source, r.Target, kind)
		results = append(results, r)
	}
	return results, nil
}

// guardSource refuses a target whose removal would take the source with it:
// the same path, a directory above the source, or the same directory reached
// through a link.
func guardSource(src, dst string) error {
	realSrc := realPath(src)
	realDst := filepath.Join(realPath(filepath.Dir(dst)), filepath.Base(dst))

	conflict := paths.Contains(dst, src) || paths.Contains(realDst, realSrc)
	if !conflict {
		// a real directory (not a link) at target that is the source under another name
		if dstInfo, err := os.Lstat(dst); err == nil && dstInfo.IsDir() {
			if srcInfo, err := os.Stat(src); err == nil && os.SameFile(srcInfo, dstInfo) {
				conflict = true
			}
		}
	}
	if !conflict {
		return nil
	}

	return errors.Newf(errors.ErrLinkConflict, "link target %s would replace its own source %s", dst, src).
		WithDetail("source", src).
		WithDetail("target", dst)
}

// realPath resolves the links along path. Trailing segments that do not exist
// are kept as given.
func realPath(path string) string {
	var rest []string
	p := path
	for {
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...)
		}
		parent := filepath.Dir(p)
		if parent == p {
			return path
		}
		rest = append([]string{filepath.Base(p)}, rest...)
		p = parent
	}
}

func kindLabel(kind types.LinkKind) string {
	if kind == types.LinkHard {
		return "hard link"
	}
	return "symbolic link"
}

// isDir follows links
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
