package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/PRDCheck/internal/emoji"
	"github.com/yildizm/PRDCheck/internal/progress"
	"github.com/yildizm/PRDCheck/internal/ui/components"
	"github.com/yildizm/PRDCheck/internal/upload"
	"github.com/yildizm/PRDCheck/internal/workflow"
)

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return m.renderGoodbyeScreen()
	}
	if !m.ready {
		return m.renderLoadingScreen()
	}

	var body string
	switch m.controller.State() {
	case workflow.StateAnalyzing:
		body = m.renderAnalyzingScreen()
	case workflow.StateResults:
		body = m.renderResultsScreen()
	default:
		body = m.renderUploadScreen()
	}

	sections := []string{
		m.renderHeader(),
		"",
		components.Stepper{Palette: m.styles.Palette()}.Render(m.controller.State()),
		"",
		body,
	}
	if toast := (components.Toast{Palette: m.styles.Palette()}).Render(m.notice); toast != "" {
		sections = append(sections, "", toast)
	}
	sections = append(sections, "", m.renderHelp())

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderLoadingScreen() string {
	return m.styles.Title.Render("Initializing PRDCheck...")
}

func (m *Model) renderGoodbyeScreen() string {
	return m.styles.Success.Render("Thanks for using PRDCheck!") + "\n"
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render(emoji.GetEmoji("shield") + " Compliance Analysis System")
	subtitle := m.styles.Subtitle.Render("Banking Regulation & PRD Compliance")
	date := m.styles.Muted.Render(time.Now().Format("Jan 2, 2006"))

	left := lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
	gap := m.contentWidth() - lipgloss.Width(left) - lipgloss.Width(date)
	if gap < 2 {
		gap = 2
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), date)
}

func (m *Model) renderUploadScreen() string {
	s := m.styles
	lines := []string{
		s.Title.Render("Upload PRD Document"),
		s.Subtitle.Render("Upload your Product Requirements Document (PRD) for comprehensive banking compliance analysis"),
		"",
	}

	if file, ok := m.controller.File(); ok {
		card := lipgloss.JoinVertical(lipgloss.Left,
			s.Success.Render(emoji.GetEmoji("document")+" "+file.Name),
			s.Muted.Render("Size: "+upload.FormatSize(file.Size)),
			"",
			s.Key.Render("enter")+" Start Analysis  "+s.Key.Render("x")+" Remove",
		)
		lines = append(lines, s.DropFile.Render(card))
		for _, note := range m.advisories {
			lines = append(lines, s.Muted.Render(emoji.GetEmoji("warning")+" "+note))
		}
	} else {
		zone := lipgloss.JoinVertical(lipgloss.Center,
			emoji.GetEmoji("upload"),
			s.Title.Render("Upload PRD Document"),
			s.Body.Render("Drag and drop your PRD file here, or press "+s.Key.Render("o")+" to browse"),
			s.Muted.Render(m.opts.Rules.Hint()),
		)
		lines = append(lines, s.DropZone.Width(min(m.contentWidth(), 72)).Render(zone))
	}

	if m.picking {
		lines = append(lines, "", s.Active.Render("File path: ")+m.pickerInput+"█")
	}
	if m.opts.DropDir != "" {
		lines = append(lines, s.Muted.Render(fmt.Sprintf("%s Watching %s for dropped files", emoji.GetEmoji("folder"), m.opts.DropDir)))
	}

	lines = append(lines, "",
		s.Success.Render("●")+" Secure Upload   "+s.Info.Render("●")+" Real-time Analysis   "+s.Active.Render("●")+" Comprehensive Report")

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderAnalyzingScreen() string {
	s := m.styles
	name := "Document"
	if file, ok := m.controller.File(); ok {
		name = file.Name
	}

	snap := progress.Snapshot{Current: 0}
	stages := m.opts.Stages
	if m.sim != nil {
		snap = m.sim.Snapshot()
		stages = m.sim.Stages()
	}

	bar := components.NewProgressBar(min(m.contentWidth()-4, 60), s.Palette())
	bar.SetPercent(snap.Percent)
	list := components.StageList{Stages: stages, Palette: s.Palette(), Frame: m.frame}

	details := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Analysis Details"),
		m.detail("Document Type", "Product Requirements Document"),
		m.detail("Regulatory Framework", m.opts.Framework),
		m.detail("Analysis Engine", m.opts.Engine),
		m.detail("Expected Duration", m.opts.Delay.String()),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Analyzing Document: "+name),
		"",
		bar.Render(),
		"",
		list.Render(snap),
		"",
		details,
	)
	return s.Box.Render(content)
}

func (m *Model) renderResultsScreen() string {
	s := m.styles
	title := s.Title.Render("Analysis Complete")
	if m.report == nil {
		return title
	}

	position := ""
	if maxOffset := m.report.MaxOffset(); maxOffset > 0 {
		position = s.Muted.Render(fmt.Sprintf("  (%d/%d)", m.report.Offset+1, maxOffset+1))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title+position, "", m.report.Render())
}

func (m *Model) detail(label, value string) string {
	if value == "" {
		value = "N/A"
	}
	return m.styles.Muted.Render(label+":") + " " + m.styles.Body.Render(value)
}

func (m *Model) renderHelp() string {
	var keys []string
	switch {
	case m.picking:
		keys = []string{"enter select", "esc cancel"}
	case m.controller.State() == workflow.StateUpload:
		keys = []string{"o open file", "paste/drop a path", "x remove", "enter start", "q quit"}
	case m.controller.State() == workflow.StateAnalyzing:
		keys = []string{"q quit"}
	default:
		keys = []string{"↑↓ scroll", "tab next section", "n new analysis", "d download", "S share", "q quit"}
	}
	return m.styles.Muted.Render(strings.Join(keys, " • "))
}
