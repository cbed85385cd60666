// Package languages copies the language files of a repository's extensions
// into its translations tree.
package languages

import (
	"path/filepath"

	"github.com/akeeba/buildfiles/pkg/config"
	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/akeeba/buildfiles/pkg/filesystem"
	"github.com/akeeba/buildfiles/pkg/logging"
	"github.com/akeeba/buildfiles/pkg/paths"
	"github.com/akeeba/buildfiles/pkg/scanner"
	"github.com/akeeba/buildfiles/pkg/types"
)

// Options contains options for MoveLanguageFiles
type Options struct {
	// RepoRoot is the repository to work on
	RepoRoot string

	// Config defaults to the embedded configuration
	Config *config.Config

	// FS defaults to the real filesystem
	FS filesystem.FS
}

// CopyResult is the outcome of one copied file
type CopyResult struct {
	Source    string `json:"source" yaml:"source"`
	Target    string `json:"target" yaml:"target"`
	Extension string `json:"extension" yaml:"extension"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`

	Err error `json:"-" yaml:"-"`
}

// Result contains the result of MoveLanguageFiles
type Result struct {
	RepoRoot         string       `json:"repoRoot" yaml:"repoRoot"`
	TranslationsRoot string       `json:"translationsRoot" yaml:"translationsRoot"`
	Tag              string       `json:"tag" yaml:"tag"`
	Extensions       int          `json:"extensions" yaml:"extensions"`
	Copies           []CopyResult `json:"copies" yaml:"copies"`
	Copied           int          `json:"copied" yaml:"copied"`
	Failed           int          `json:"failed" yaml:"failed"`
}

// MoveLanguageFiles copies every file of the configured tag from each
// extension into the translations tree, overwriting what is there. Stale
// destination files are left alone. A failed copy is recorded and the rest
// continue.
func MoveLanguageFiles(opts Options) (*Result, error) {
	logger := logging.GetLogger("languages")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Default(); err != nil {
			return nil, err
		}
	}

	root := paths.Canonicalize(opts.RepoRoot)
	result := &Result{RepoRoot: root, Tag: cfg.Languages.Tag}

	if opts.RepoRoot == "" || !filesystem.IsDir(fsys, root) {
		return result, errors.Newf(errors.ErrInvalidRoot, "repository root is not a directory: %s", root).
			WithDetail("path", root)
	}

	result.TranslationsRoot = TranslationsRoot(fsys, root, cfg.Languages.Translations)
	logger.Info().
		Str("repoRoot", root).
		Str("translations", result.TranslationsRoot).
		Str("tag", result.Tag).
		Msg("Moving language files back")

	descriptors := scanner.New(fsys, cfg.Layout).DetectAll(root)
	result.Extensions = len(descriptors)

	for _, d := range descriptors {
		for _, side := range []types.Side{types.SideSite, types.SideAdmin} {
			for _, file := range d.LangFiles(side)[result.Tag] {
				c := CopyResult{
					Source:    file,
					Target:    Destination(d, side, result.TranslationsRoot, result.Tag, filepath.Base(file)),
					Extension: d.JoomlaName,
				}
				if err := fsys.CopyFile(c.Source, c.Target); err != nil {
					c.Err = errors.Wrapf(err, errors.ErrFileCopy, "cannot copy %s", c.Source).
						WithDetail("target", c.Target)
					c.Error = c.Err.Error()
					result.Failed++
					logger.Error().Err(err).Str("source", c.Source).Str("target", c.Target).Msg("Copy failed")
				} else {
					result.Copied++
					logger.Info().Str("source", c.Source).Str("target", c.Target).Msg("Copied")
				}
				result.Copies = append(result.Copies, c)
			}
		}
	}

	return result, nil
}

// TranslationsRoot returns the first candidate directory that exists below
// repoRoot, or the first candidate when none does
func TranslationsRoot(fsys filesystem.FS, repoRoot string, candidates []string) string {
	for _, c := range candidates {
		path := filepath.Join(repoRoot, filepath.FromSlash(c))
		if filesystem.IsDir(fsys, path) {
			return path
		}
	}
	if len(candidates) == 0 {
		return filepath.Join(repoRoot, "translations")
	}
	return filepath.Join(repoRoot, filepath.FromSlash(candidates[0]))
}

// Destination is where a language file of d goes in the translations tree:
// plugins use plugin/<side>/<group>/<name>/<tag>, everything else
// <type>/<side>/<name>/<tag>
func Destination(d types.ExtensionDescriptor, side types.Side, translationsRoot, tag, file string) string {
	if d.Type == types.ExtensionPlugin {
		return filepath.Join(translationsRoot, string(d.Type), side.TranslationFolder(), d.Group, d.Name, tag, file)
	}
	return filepath.Join(translationsRoot, string(d.Type), side.TranslationFolder(), d.Name, tag, file)
}
