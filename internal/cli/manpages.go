package cli

import (
	"os"
	"strings"

	"github.com/akeeba/buildfiles/internal/version"
	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// Roots returns the root commands of every program
func Roots() []*cobra.Command {
	return []*cobra.Command{NewRelinkCmd(), NewMoveBackLanguagesCmd(), NewLinktoolCmd()}
}

// GenerateManPages writes section 1 man pages of every program and its
// subcommands into dir
func GenerateManPages(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
	}

	for _, root := range Roots() {
		header := &doc.GenManHeader{
			Title:   strings.ToUpper(root.Name()),
			Section: "1",
			Source:  "buildfiles " + version.Version,
			Manual:  "Akeeba Build Tools",
		}
		if err := doc.GenManTree(root, header, dir); err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "cannot write man pages of %s", root.Name())
		}
	}
	return nil
}
