package cli

import (
	"embed"
	"fmt"

	"github.com/akeeba/buildfiles/internal/version"
	"github.com/akeeba/buildfiles/pkg/cobrax/topics"
	"github.com/akeeba/buildfiles/pkg/config"
	"github.com/akeeba/buildfiles/pkg/errors"
	"github.com/akeeba/buildfiles/pkg/filesystem"
	"github.com/akeeba/buildfiles/pkg/gitroot"
	"github.com/akeeba/buildfiles/pkg/linkops"
	"github.com/akeeba/buildfiles/pkg/logging"
	"github.com/akeeba/buildfiles/pkg/output"
	"github.com/akeeba/buildfiles/pkg/platform"
	"github.com/akeeba/buildfiles/pkg/scanner"
	"github.com/akeeba/buildfiles/pkg/types"
	"github.com/spf13/cobra"
)

//go:embed help/*.md
var helpFS embed.FS

const (
	groupLinks   = "links"
	groupInspect = "inspect"
)

// NewLinktoolCmd returns the root command of the linktool program
func NewLinktoolCmd() *cobra.Command {
	var verbosity int

	cmd := newRoot("linktool", MsgLinktoolShort, MsgLinktoolLong, &verbosity, nil)
	cmd.AddGroup(
		&cobra.Group{ID: groupLinks, Title: MsgGroupLinks},
		&cobra.Group{ID: groupInspect, Title: MsgGroupInspect},
	)

	cmd.AddCommand(newLinkCmd())
	cmd.AddCommand(newUnlinkCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCompletionCmd())

	if _, err := topics.InitializeWithOptions(cmd, helpFS, "help", topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		logger := logging.GetLogger("cli")
		logger.Warn().Err(err).Msg("Help topics unavailable")
	}

	return cmd
}

func newLinkCmd() *cobra.Command {
	var (
		kind     string
		contents bool
		format   string
	)

	cmd := &cobra.Command{
		Use:     "link <source> <target>",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		GroupID: groupLinks,
		Args:    usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := types.ParseLinkKind(kind)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --type")
			}
			printer, err := newPrinter(cmd, format)
			if err != nil {
				return err
			}

			linker := linkops.New(platform.Detect())
			var outcomes []output.Outcome

			if contents {
				results, err := linker.LinkContents(args[0], args[1], k)
				if err != nil {
					return err
				}
				for _, r := range results {
					outcomes = append(outcomes, linkOutcome(r.Source, r.Target, r.Error))
				}
			} else {
				err := linker.CreateLink(args[0], args[1], k)
				outcomes = append(outcomes, linkOutcome(linker.Canonical(args[0]), linker.Canonical(args[1]), err))
			}

			return printer.Outcomes(outcomes)
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", string(types.LinkSymbolic), MsgFlagLinkType)
	cmd.Flags().BoolVar(&contents, "contents", false, MsgFlagContents)
	addFormatFlag(cmd, &format)
	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(types.LinkSymbolic), string(types.LinkHard)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func linkOutcome(source, target string, err error) output.Outcome {
	o := output.Outcome{Action: "linked", Source: source, Target: target}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}

func newUnlinkCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "unlink <target>...",
		Short:   MsgUnlinkShort,
		Long:    MsgUnlinkLong,
		GroupID: groupLinks,
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := newPrinter(cmd, format)
			if err != nil {
				return err
			}

			linker := linkops.New(platform.Detect())
			outcomes := make([]output.Outcome, 0, len(args))
			for _, target := range args {
				o := output.Outcome{Action: "removed", Target: linker.Canonical(target)}
				if !linker.RemoveAny(target) {
					o.Error = fmt.Sprintf("cannot remove %s", o.Target)
				}
				outcomes = append(outcomes, o)
			}
			return printer.Outcomes(outcomes)
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newScanCmd() *cobra.Command {
	var (
		extType string
		format  string
	)

	cmd := &cobra.Command{
		Use:     "scan [repoRoot]",
		Short:   MsgScanShort,
		Long:    MsgScanLong,
		GroupID: groupInspect,
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := newPrinter(cmd, format)
			if err != nil {
				return err
			}
			root, cfg, err := repoConfig(args)
			if err != nil {
				return err
			}

			fsys := filesystem.NewOS()
			if !filesystem.IsDir(fsys, root) {
				return errors.Newf(errors.ErrInvalidRoot, "repository root is not a directory: %s", root).
					WithDetail("path", root)
			}

			s := scanner.New(fsys, cfg.Layout)
			if extType == "" {
				return printer.Extensions(s.DetectAll(root))
			}

			t, err := types.ParseExtensionType(extType)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --type")
			}
			found, err := s.Detect(t, root)
			if err != nil {
				return err
			}
			return printer.Extensions(found)
		},
	}

	cmd.Flags().StringVarP(&extType, "type", "t", "", MsgFlagExtType)
	addFormatFlag(cmd, &format)
	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(types.ExtensionTypes))
		for _, t := range types.ExtensionTypes {
			names = append(names, string(t))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config [repoRoot]",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: groupInspect,
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := repoConfig(args)
			if err != nil {
				return err
			}
			for _, f := range cfg.Files {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", f)
			}
			data, err := cfg.ToTOML()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "cannot encode configuration")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// repoConfig resolves the optional repository argument and loads its configuration
func repoConfig(args []string) (string, *config.Config, error) {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	root, err := gitroot.Resolve(arg)
	if err != nil {
		return "", nil, err
	}
	root = linkops.New(platform.Detect()).Canonical(root)

	cfg, err := config.Load(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, cmd.Root().Name(), version.Version)
			fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			fmt.Fprintf(out, MsgBuiltFormat, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
