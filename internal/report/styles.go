package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	PrimaryColor   = lipgloss.Color("#FF6B6B") // coral
	SecondaryColor = lipgloss.Color("#4ECDC4") // teal
	MutedColor     = lipgloss.Color("#94A3B8")
	WarnColor      = lipgloss.Color("#FFE66D")
	ErrorColor     = lipgloss.Color("#EF4444")
	SuccessColor   = lipgloss.Color("#10B981")
)

type styles struct {
	source  lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
	err     lipgloss.Style
	parse   lipgloss.Style
	finding lipgloss.Style
	muted   lipgloss.Style
}

// newStyles binds the palette to w so color is dropped automatically when
// w is not a terminal. With color off every style renders text unchanged.
func newStyles(w io.Writer, color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}

	r := lipgloss.NewRenderer(w)
	return styles{
		source:  r.NewStyle().Foreground(SecondaryColor).Bold(true),
		pass:    r.NewStyle().Foreground(SuccessColor).Bold(true),
		fail:    r.NewStyle().Foreground(ErrorColor).Bold(true),
		err:     r.NewStyle().Foreground(ErrorColor),
		parse:   r.NewStyle().Foreground(PrimaryColor),
		finding: r.NewStyle().Foreground(WarnColor),
		muted:   r.NewStyle().Foreground(MutedColor).Faint(true),
	}
}
