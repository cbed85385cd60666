package cli

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRelinkShort     = "Link the extensions of a repository into a site"
	MsgMoveBackShort   = "Copy extension language files back to the translations folder"
	MsgLinktoolShort   = "Create and remove links for build scripts"
	MsgLinkShort       = "Make a link, or link the contents of a folder"
	MsgUnlinkShort     = "Remove links, files or folders"
	MsgScanShort       = "Show the extensions found in a repository"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Banners
	MsgRelinkTitle    = "Akeeba Build Tools - Relinker %s"
	MsgRelinkSubtitle = "No-configuration extension linker"
	MsgMoveBackTitle  = "Akeeba Build Tools - MoveBackLanguages %s"
	MsgMoveBackSub    = "Populate the translations folder of a repository"
	MsgCopyright      = "Copyright ©2010-%d Akeeba Ltd"
	MsgLicense        = "Distributed under the GNU General Public License v3 or later"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Work out every link without touching the site"
	MsgFlagSilent   = "Only print the summary and log errors"
	MsgFlagFailFast = "Stop at the first link that fails"
	MsgFlagFormat   = "Output format: auto, term, text, json or yaml"
	MsgFlagLinkType = "Link type: symlink or hardlink"
	MsgFlagContents = "Link each entry of <source> into the <target> folder"
	MsgFlagExtType  = "Only scan this extension type (component, library, module, plugin, template)"

	// Groups
	MsgGroupLinks   = "Link Commands:"
	MsgGroupInspect = "Inspection Commands:"

	// Version output
	MsgVersionFormat = "%s version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Fatal report
	MsgFatalTitle = "ERROR"
)

//go:embed msgs/*.txt
var msgFS embed.FS

func msg(name string) string {
	raw, err := msgFS.ReadFile("msgs/" + name + ".txt")
	if err != nil {
		panic("missing message " + name)
	}
	return strings.TrimSpace(string(raw))
}

// Long messages from embedded files
var (
	MsgUsageTemplate  = msg("usage-template")
	MsgRelinkLong     = msg("relink-long")
	MsgRelinkExample  = msg("relink-example")
	MsgMoveBackLong   = msg("move-back-languages-long")
	MsgLinktoolLong   = msg("linktool-long")
	MsgLinkLong       = msg("link-long")
	MsgLinkExample    = msg("link-example")
	MsgUnlinkLong     = msg("unlink-long")
	MsgScanLong       = msg("scan-long")
	MsgConfigLong     = msg("config-long")
	MsgCompletionLong = msg("completion-long")
)
