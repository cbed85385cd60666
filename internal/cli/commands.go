package cli

import (
	"fmt"
	"time"

	"github.com/akeeba/buildfiles/internal/version"
	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/akeeba/buildfiles/pkg/logging"
	"github.com/akeeba/buildfiles/pkg/output"
	"github.com/spf13/cobra"
)

// newRoot builds the parts every root command shares: logging set up from
// -v (or --silent when silent is not nil) and the styled usage template
func newRoot(use, short, long string, verbosity *int, silent *bool) *cobra.Command {
	initTemplateFormatting()

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Long:    long,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := *verbosity
			if silent != nil && *silent {
				level = logging.Silent
			}
			logging.SetupLoggerWithOutput(level, cmd.ErrOrStderr())
			logger := logging.GetLogger("cli")
			logger.Debug().Str("command", cmd.CommandPath()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	cmd.PersistentFlags().CountVarP(verbosity, "verbose", "v", MsgFlagVerbose)
	cmd.SetUsageTemplate(MsgUsageTemplate)
	cmd.SetFlagErrorFunc(flagError)
	cmd.SetVersionTemplate(fmt.Sprintf(MsgVersionFormat, "{{.Name}}", "{{.Version}}"))
	return cmd
}

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVar(format, "format", "auto", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return output.Names, cobra.ShellCompDirectiveNoFileComp
	})
}

func newPrinter(cmd *cobra.Command, format string) (*output.Printer, error) {
	f, err := output.ParseFormat(format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}
	return output.NewPrinter(cmd.OutOrStdout(), f), nil
}

func banner(p *output.Printer, title, subtitle string) {
	p.Banner(
		fmt.Sprintf(title, version.Version),
		subtitle,
		"",
		fmt.Sprintf(MsgCopyright, time.Now().UTC().Year()),
		MsgLicense,
	)
}
