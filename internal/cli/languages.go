package cli

import (
	"github.com/akeeba/buildfiles/pkg/config"
	"github.com/akeeba/buildfiles/pkg/languages"
	"github.com/spf13/cobra"
)

// NewMoveBackLanguagesCmd returns the root command of the move-back-languages program
func NewMoveBackLanguagesCmd() *cobra.Command {
	var (
		verbosity int
		silent    bool
		format    string
	)

	cmd := newRoot("move-back-languages <repoRoot>", MsgMoveBackShort, MsgMoveBackLong, &verbosity, &silent)
	cmd.Args = usageArgs(cobra.ExactArgs(1))
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		printer, err := newPrinter(cmd, format)
		if err != nil {
			return err
		}
		banner(printer, MsgMoveBackTitle, MsgMoveBackSub)

		cfg, err := config.Load(args[0])
		if err != nil {
			return err
		}

		res, err := languages.MoveLanguageFiles(languages.Options{RepoRoot: args[0], Config: cfg})
		if err != nil {
			return err
		}
		return printer.Languages(res, !silent)
	}

	cmd.Flags().BoolVar(&silent, "silent", false, MsgFlagSilent)
	addFormatFlag(cmd, &format)

	return cmd
}
