package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Normalize converts directory separators to '/' and collapses repeated
// separators. When windows is set, backslashes are separators too and a leading
// double separator (a network share) is preserved.
func Normalize(path string, windows bool) string {
	unc := false

	if windows {
		unc = strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//")
		path = strings.ReplaceAll(path, `\`, "/")
	}

	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	if unc {
		path = "//" + strings.TrimLeft(path, "/")
	}

	return path
}

// Canonicalize resolves '.' and '..' segments and redundant separators without
// consulting the filesystem. '..' above the root is dropped. The result uses the
// host separator and carries no trailing separator.
func Canonicalize(path string) string {
	if !filepath.IsAbs(path) {
		if wd, err := os.Getwd(); err == nil {
			path = wd + string(filepath.Separator) + path
		}
	}

	volume := filepath.VolumeName(path)
	parts := resolve(filepath.ToSlash(path[len(volume):]))

	return filepath.FromSlash(filepath.ToSlash(volume) + "/" + strings.Join(parts, "/"))
}

// Relativize returns the shortest relative path leading from the directory
// toAbsoluteDir to fromAbsolutePath: one '..' per segment of the base left after
// the common prefix, then the remaining segments of the target. A result that
// needs no '..' is prefixed with "./". Paths on different volumes cannot be
// related; the canonical target is returned instead.
func Relativize(fromAbsolutePath, toAbsoluteDir string) string {
	from := Canonicalize(fromAbsolutePath)
	base := Canonicalize(toAbsoluteDir)

	fromVolume := filepath.VolumeName(from)
	baseVolume := filepath.VolumeName(base)
	if !sameSegment(fromVolume, baseVolume) {
		return from
	}

	fromParts := resolve(filepath.ToSlash(from[len(fromVolume):]))
	baseParts := resolve(filepath.ToSlash(base[len(baseVolume):]))

	common := 0
	for common < len(fromParts) && common < len(baseParts) && sameSegment(fromParts[common], baseParts[common]) {
		common++
	}

	ups := len(baseParts) - common
	rest := fromParts[common:]
	sep := string(filepath.Separator)

	if ups == 0 {
		if len(rest) == 0 {
			return "."
		}
		return "." + sep + strings.Join(rest, sep)
	}

	rel := make([]string, 0, ups+len(rest))
	for i := 0; i < ups; i++ {
		rel = append(rel, "..")
	}
	rel = append(rel, rest...)

	return strings.Join(rel, sep)
}

// Segments splits a path into its canonical segments, volume excluded.
func Segments(path string) []string {
	canonical := Canonicalize(path)
	return resolve(filepath.ToSlash(canonical[len(filepath.VolumeName(canonical)):]))
}

// Contains reports whether path is dir or lies below it, compared segment by
// segment after canonicalization.
func Contains(dir, path string) bool {
	d := Canonicalize(dir)
	p := Canonicalize(path)
	if !sameSegment(filepath.VolumeName(d), filepath.VolumeName(p)) {
		return false
	}

	dirParts := Segments(d)
	pathParts := Segments(p)
	if len(pathParts) < len(dirParts) {
		return false
	}
	for i := range dirParts {
		if !sameSegment(dirParts[i], pathParts[i]) {
			return false
		}
	}
	return true
}

// resolve walks a '/'-separated path left to right.
func resolve(slashed string) []string {
	var parts []string

	for _, part := range strings.Split(slashed, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, part)
		}
	}

	return parts
}

// sameSegment compares path segments the way the host filesystem does.
func sameSegment(a, b string) bool {
	if filepath.Separator == '\\' {
		return strings.EqualFold(a, b)
	}
	return a == b
}
