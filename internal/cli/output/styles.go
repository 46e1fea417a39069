package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles returns styles that render for w. Colors are used only when
// styled is set; otherwise every style renders plain text.
func NewStyles(w io.Writer, styled bool) Styles {
	lr := lipgloss.NewRenderer(w)
	if styled {
		if lr.ColorProfile() == termenv.Ascii {
			lr.SetColorProfile(termenv.ANSI)
		}
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		Header1: lr.NewStyle().Bold(styled).Foreground(lipgloss.Color("12")),
		Header2: lr.NewStyle().Bold(styled),
		Bold:    lr.NewStyle().Bold(styled),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lr.NewStyle().Bold(styled).Foreground(lipgloss.Color("9")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("11")),
		Info:    lr.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Severity returns the style for a severity.
func (s Styles) Severity(sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return s.Error
	case core.SeverityWarning:
		return s.Warning
	default:
		return s.Info
	}
}
