// Package gitroot finds the repository a command runs in, so the repository
// root argument can be left out when working inside a checkout.
package gitroot

import (
	"os"
	"path/filepath"

	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/akeeba/buildfiles/pkg/logging"
	"github.com/go-git/go-git/v5"
)

// Find returns the top-level directory of the git work tree containing dir
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidRoot, "cannot resolve %s", dir)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidRoot, "no git repository at or above %s", abs).
			WithDetail("path", abs)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidRoot, "repository at %s has no work tree", abs).
			WithDetail("path", abs)
	}
	return wt.Filesystem.Root(), nil
}

// Resolve returns arg when it is set. Otherwise it returns the work tree
// holding the current directory, or the current directory itself outside a
// checkout.
func Resolve(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidRoot, "cannot determine the working directory")
	}

	root, err := Find(cwd)
	if err != nil {
		logger := logging.GetLogger("gitroot")
		logger.Debug().Err(err).Str("cwd", cwd).Msg("Not in a git work tree, using the working directory")
		return cwd, nil
	}
	return root, nil
}
