package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DetailViewer is a scrollable page made of a header and titled sections
type DetailViewer struct {
	Width   int
	Height  int
	Offset  int
	Palette Palette

	header   []DetailLine
	sections []DetailSection
	lines    []string
	starts   []int // first line of each section
}

// DetailSection represents a section in the detail view
type DetailSection struct {
	Icon    string
	Title   string
	Content []DetailLine
	Style   string // "info", "warning", "error", "success"
}

// DetailLine is a body line; continuation lines are indented by Indent
type DetailLine struct {
	Text   string
	Indent int
}

// Line builds a DetailLine
func Line(text string, indent int) DetailLine {
	return DetailLine{Text: text, Indent: indent}
}

// SetContent replaces the page and lays it out for the current width
func (d *DetailViewer) SetContent(header []DetailLine, sections []DetailSection) {
	d.header = header
	d.sections = sections
	d.layout()
	d.clamp()
}

// SetSize updates the viewport and rewraps the content
func (d *DetailViewer) SetSize(width, height int) {
	d.Width = width
	d.Height = height
	d.layout()
	d.clamp()
}

// ScrollDown moves the viewport by n lines
func (d *DetailViewer) ScrollDown(n int) {
	d.Offset += n
	d.clamp()
}

// ScrollUp moves the viewport by n lines
func (d *DetailViewer) ScrollUp(n int) {
	d.Offset -= n
	d.clamp()
}

// NextSection scrolls to the title of the following section
func (d *DetailViewer) NextSection() bool {
	for _, start := range d.starts {
		if target := min(start, d.MaxOffset()); target > d.Offset {
			d.Offset = target
			return true
		}
	}
	return false
}

// PreviousSection scrolls back to the nearest section title above the view
func (d *DetailViewer) PreviousSection() bool {
	for i := len(d.starts) - 1; i >= 0; i-- {
		if d.starts[i] < d.Offset {
			d.Offset = d.starts[i]
			return true
		}
	}
	if d.Offset > 0 {
		d.Offset = 0
		return true
	}
	return false
}

// SectionCount returns the number of sections on the page
func (d *DetailViewer) SectionCount() int {
	return len(d.sections)
}

// LineCount returns the number of rendered lines
func (d *DetailViewer) LineCount() int {
	return len(d.lines)
}

// MaxOffset returns the furthest the view can scroll
func (d *DetailViewer) MaxOffset() int {
	if d.Height <= 0 || len(d.lines) <= d.Height {
		return 0
	}
	return len(d.lines) - d.Height
}

// Render returns the visible window of the page
func (d *DetailViewer) Render() string {
	if d.Height <= 0 || len(d.lines) <= d.Height {
		return strings.Join(d.lines, "\n")
	}
	end := min(d.Offset+d.Height, len(d.lines))
	return strings.Join(d.lines[d.Offset:end], "\n")
}

func (d *DetailViewer) clamp() {
	d.Offset = max(0, min(d.Offset, d.MaxOffset()))
}

func (d *DetailViewer) layout() {
	d.lines = d.lines[:0]
	d.starts = d.starts[:0]
	for _, line := range d.header {
		d.lines = append(d.lines, d.wrap(line)...)
	}
	for _, section := range d.sections {
		d.lines = append(d.lines, "")
		d.starts = append(d.starts, len(d.lines))
		d.lines = append(d.lines, d.renderSection(section)...)
	}
}

// renderSection renders a detail section
func (d *DetailViewer) renderSection(section DetailSection) []string {
	p := d.Palette

	var titleStyle lipgloss.Style
	switch section.Style {
	case "success":
		titleStyle = p.Success
	case "warning":
		titleStyle = p.Warning
	case "error":
		titleStyle = p.Error
	case "info":
		titleStyle = p.Info
	default:
		titleStyle = p.Title
	}

	title := section.Title
	if section.Icon != "" {
		title = section.Icon + " " + title
	}

	lines := make([]string, 0, len(section.Content)+2)
	lines = append(lines,
		titleStyle.Render(title),
		p.Muted.Render(strings.Repeat("─", min(lipgloss.Width(section.Title)+3, d.width()))),
	)
	for _, line := range section.Content {
		lines = append(lines, d.wrap(line)...)
	}
	return lines
}

// wrap breaks long lines to the view width, indenting continuation lines
func (d *DetailViewer) wrap(line DetailLine) []string {
	width := d.width()
	if lipgloss.Width(line.Text) <= width {
		return []string{line.Text}
	}
	wrapped := lipgloss.NewStyle().Width(width - line.Indent).Render(line.Text)
	parts := strings.Split(wrapped, "\n")
	for i, part := range parts {
		if i > 0 {
			part = strings.Repeat(" ", line.Indent) + part
		}
		parts[i] = strings.TrimRight(part, " ")
	}
	return parts
}

func (d *DetailViewer) width() int {
	if d.Width < 20 {
		return 80
	}
	return d.Width
}
