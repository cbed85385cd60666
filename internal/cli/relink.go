package cli

import (
	"github.com/akeeba/buildfiles/pkg/config"
	"github.com/akeeba/buildfiles/pkg/relink"
	"github.com/spf13/cobra"
)

type relinkFlags struct {
	verbosity int
	dryRun    bool
	silent    bool
	failFast  bool
	format    string
}

// NewRelinkCmd returns the root command of the relink program
func NewRelinkCmd() *cobra.Command {
	var f relinkFlags

	cmd := newRoot("relink <siteRoot> <repoRoot>", MsgRelinkShort, MsgRelinkLong, &f.verbosity, &f.silent)
	cmd.Example = MsgRelinkExample
	cmd.Args = usageArgs(cobra.ExactArgs(2))
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runRelink(cmd, args[0], args[1], f)
	}

	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&f.silent, "silent", false, MsgFlagSilent)
	cmd.Flags().BoolVar(&f.failFast, "fail-fast", false, MsgFlagFailFast)
	addFormatFlag(cmd, &f.format)

	return cmd
}

func runRelink(cmd *cobra.Command, siteRoot, repoRoot string, f relinkFlags) error {
	printer, err := newPrinter(cmd, f.format)
	if err != nil {
		return err
	}
	banner(printer, MsgRelinkTitle, MsgRelinkSubtitle)

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return err
	}

	res, runErr := relink.Run(relink.Options{
		SiteRoot: siteRoot,
		RepoRoot: repoRoot,
		DryRun:   f.dryRun,
		FailFast: f.failFast,
		Config:   cfg,
	})

	// a run rejected before scanning has nothing to report
	if res.State != relink.StateFailed || len(res.Mappings) > 0 {
		if err := printer.Relink(res, !f.silent); err != nil {
			return err
		}
	}
	return runErr
}
