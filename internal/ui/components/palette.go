// Package components renders the individual panels of the TUI.
package components

import "github.com/charmbracelet/lipgloss"

// Palette carries the styles components render with. The ui package
// builds it from the active theme.
type Palette struct {
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Active   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Progress lipgloss.Style
	Box      lipgloss.Style
}

// PlainPalette renders without any styling
func PlainPalette() Palette {
	s := lipgloss.NewStyle()
	return Palette{
		Title:    s,
		Body:     s,
		Muted:    s,
		Active:   s,
		Success:  s,
		Warning:  s,
		Error:    s,
		Info:     s,
		Progress: s,
		Box:      s,
	}
}
