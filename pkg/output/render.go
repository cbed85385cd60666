package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/akeeba/buildfiles/pkg/languages"
	"github.com/akeeba/buildfiles/pkg/relink"
	"github.com/akeeba/buildfiles/pkg/types"
	"gopkg.in/yaml.v3"
)

// Outcome is the result of one link or unlink request made by hand
type Outcome struct {
	Action string `json:"action" yaml:"action"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	Target string `json:"target" yaml:"target"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Printer writes command results in one format
type Printer struct {
	w      io.Writer
	format Format
	theme  theme
}

// NewPrinter returns a printer for w. FormatAuto is resolved against w.
func NewPrinter(w io.Writer, f Format) *Printer {
	f = Resolve(f, w)
	return &Printer{
		w:      w,
		format: f,
		theme:  newTheme(w, f != FormatTerminal),
	}
}

// Format returns the resolved format
func (p *Printer) Format() Format {
	return p.format
}

// Structured reports whether the printer emits JSON or YAML
func (p *Printer) Structured() bool {
	return p.format == FormatJSON || p.format == FormatYAML
}

// Data encodes v as JSON or YAML. It is an error to call it for other formats.
func (p *Printer) Data(v interface{}) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %s is not structured", p.format)
	}
}

// Banner prints the tool banner. Structured formats get none.
func (p *Printer) Banner(lines ...string) {
	if p.Structured() || len(lines) == 0 {
		return
	}
	rule := strings.Repeat("-", 79)
	fmt.Fprintln(p.w, p.theme.render(p.theme.title, lines[0]))
	for _, l := range lines[1:] {
		if l == "" {
			fmt.Fprintln(p.w, rule)
			continue
		}
		fmt.Fprintln(p.w, l)
	}
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w)
}

// Relink prints the result of a relink run. Each mapping is listed when
// verbose is set; the summary line is always printed.
func (p *Printer) Relink(res *relink.Result, verbose bool) error {
	if p.Structured() {
		return p.Data(res)
	}

	if verbose {
		current := ""
		for _, m := range res.Mappings {
			if m.Extension != current {
				current = m.Extension
				fmt.Fprintln(p.w, p.theme.render(p.theme.name, current))
			}
			fmt.Fprintf(p.w, "  %s %s\n", p.decision(m.Decision), p.mapping(m.LinkMapping))
			if m.Error != "" {
				fmt.Fprintf(p.w, "    %s\n", p.theme.render(p.theme.failure, m.Error))
			}
		}
		if len(res.Mappings) > 0 {
			fmt.Fprintln(p.w)
		}
	}

	var summary string
	if res.DryRun {
		summary = fmt.Sprintf("Dry run: %d extensions, %d would be linked, %d skipped",
			len(res.Extensions), res.WouldLink, res.Skipped)
	} else {
		summary = fmt.Sprintf("%d extensions, %d linked, %d skipped, %d failed",
			len(res.Extensions), res.Linked, res.Skipped, res.Failed)
	}
	style := p.theme.success
	if res.Failed > 0 || res.State == relink.StateFailed {
		style = p.theme.warning
	}
	fmt.Fprintln(p.w, p.theme.render(style, summary))
	return nil
}

// Languages prints the result of moving language files back
func (p *Printer) Languages(res *languages.Result, verbose bool) error {
	if p.Structured() {
		return p.Data(res)
	}

	if verbose {
		for _, c := range res.Copies {
			status := p.theme.render(p.theme.success, "copied")
			if c.Error != "" {
				status = p.theme.render(p.theme.failure, "failed")
			}
			fmt.Fprintf(p.w, "  %s %s %s %s\n", status,
				p.theme.render(p.theme.path, c.Source), p.theme.render(p.theme.muted, "->"), c.Target)
			if c.Error != "" {
				fmt.Fprintf(p.w, "    %s\n", p.theme.render(p.theme.failure, c.Error))
			}
		}
		if len(res.Copies) > 0 {
			fmt.Fprintln(p.w)
		}
	}

	summary := fmt.Sprintf("%d extensions, %d %s files copied to %s, %d failed",
		res.Extensions, res.Copied, res.Tag, res.TranslationsRoot, res.Failed)
	style := p.theme.success
	if res.Failed > 0 {
		style = p.theme.warning
	}
	fmt.Fprintln(p.w, p.theme.render(style, summary))
	return nil
}

// Extensions prints scanned extension descriptors
func (p *Printer) Extensions(ds []types.ExtensionDescriptor) error {
	if p.Structured() {
		if ds == nil {
			ds = []types.ExtensionDescriptor{}
		}
		return p.Data(ds)
	}

	if len(ds) == 0 {
		fmt.Fprintln(p.w, p.theme.render(p.theme.muted, "No extensions found"))
		return nil
	}

	for _, d := range ds {
		fmt.Fprintf(p.w, "%s %s\n", p.theme.render(p.theme.name, d.JoomlaName),
			p.theme.render(p.theme.muted, "("+string(d.Type)+")"))
		p.part("site", d.SiteSource, d.SiteTarget)
		p.part("admin", d.AdminSource, d.AdminTarget)
		p.part("media", d.MediaSource, d.MediaTarget)
		for _, side := range []types.Side{types.SideSite, types.SideAdmin} {
			files := d.LangFiles(side)
			for _, tag := range sortedKeys(files) {
				fmt.Fprintf(p.w, "  %-8s %s %d files\n", string(side)+"-lang", tag, len(files[tag]))
			}
		}
	}
	fmt.Fprintf(p.w, "\n%s\n", p.theme.render(p.theme.title, fmt.Sprintf("%d extensions", len(ds))))
	return nil
}

// Outcomes prints the results of link and unlink requests
func (p *Printer) Outcomes(outcomes []Outcome) error {
	if p.Structured() {
		if outcomes == nil {
			outcomes = []Outcome{}
		}
		return p.Data(outcomes)
	}

	failed := 0
	for _, o := range outcomes {
		status := p.theme.render(p.theme.success, o.Action)
		if o.Error != "" {
			status = p.theme.render(p.theme.failure, "failed")
			failed++
		}
		if o.Source != "" {
			fmt.Fprintf(p.w, "%s %s %s %s\n", status, o.Target, p.theme.render(p.theme.muted, "->"),
				p.theme.render(p.theme.path, o.Source))
		} else {
			fmt.Fprintf(p.w, "%s %s\n", status, o.Target)
		}
		if o.Error != "" {
			fmt.Fprintf(p.w, "  %s\n", p.theme.render(p.theme.failure, o.Error))
		}
	}
	if failed > 0 {
		fmt.Fprintln(p.w, p.theme.render(p.theme.warning, fmt.Sprintf("%d of %d failed", failed, len(outcomes))))
	}
	return nil
}

func (p *Printer) decision(d relink.Decision) string {
	label := fmt.Sprintf("%-10s", labels[d])
	switch d {
	case relink.DecisionLinked:
		return p.theme.render(p.theme.success, label)
	case relink.DecisionWouldLink:
		return p.theme.render(p.theme.info, label)
	case relink.DecisionFailed:
		return p.theme.render(p.theme.failure, label)
	default:
		return p.theme.render(p.theme.muted, label)
	}
}

var labels = map[relink.Decision]string{
	relink.DecisionLinked:        "linked",
	relink.DecisionWouldLink:     "would link",
	relink.DecisionSkippedSource: "skipped",
	relink.DecisionFailed:        "failed",
}

func (p *Printer) mapping(m types.LinkMapping) string {
	return fmt.Sprintf("%s %s %s %s", m.Target, p.theme.render(p.theme.muted, "->"),
		p.theme.render(p.theme.path, m.Source), p.theme.render(p.theme.muted, "("+string(m.Kind)+")"))
}

func (p *Printer) part(label, source, target string) {
	if source == "" {
		return
	}
	fmt.Fprintf(p.w, "  %-8s %s %s %s\n", label, p.theme.render(p.theme.path, source),
		p.theme.render(p.theme.muted, "->"), target)
}

func sortedKeys(files types.LanguageFiles) []string {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
