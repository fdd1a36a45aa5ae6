package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

type styles struct {
	enabled bool

	Size    lipgloss.Style
	Total   lipgloss.Style
	Faint   lipgloss.Style
	Warning lipgloss.Style
}

// newStyles enables colors only when w is a terminal, so piped output stays
// plain text.
func newStyles(w io.Writer) styles {
	base := lipgloss.NewStyle()
	f, ok := w.(*os.File)
	return styles{
		enabled: ok && term.IsTerminal(int(f.Fd())),
		Size:    base.Foreground(lipgloss.Color("#22D3EE")),
		Total:   base.Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Faint:   base.Faint(true),
		Warning: base.Foreground(lipgloss.Color("#F59E0B")),
	}
}

func (s styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}
