package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Colors switch automatically between light and dark terminals
var (
	PrimaryColor = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	HeadingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#17A2B8", Dark: "#4DD0E1"}
)

// theme holds the styles used for one output stream
type theme struct {
	plain bool

	title   lipgloss.Style
	name    lipgloss.Style
	muted   lipgloss.Style
	path    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
}

func newTheme(w io.Writer, plain bool) theme {
	r := lipgloss.NewRenderer(w)
	return theme{
		plain:   plain,
		title:   r.NewStyle().Foreground(HeadingColor).Bold(true),
		name:    r.NewStyle().Foreground(PrimaryColor).Bold(true),
		muted:   r.NewStyle().Foreground(MutedColor),
		path:    r.NewStyle().Foreground(MutedColor).Italic(true),
		success: r.NewStyle().Foreground(SuccessColor).Bold(true),
		warning: r.NewStyle().Foreground(WarningColor).Bold(true),
		failure: r.NewStyle().Foreground(ErrorColor).Bold(true),
		info:    r.NewStyle().Foreground(InfoColor),
	}
}

func (t theme) render(s lipgloss.Style, text string) string {
	if t.plain {
		return text
	}
	return s.Render(text)
}
