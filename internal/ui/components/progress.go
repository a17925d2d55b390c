package components

import (
	"fmt"
	"strings"

	"github.com/yildizm/PRDCheck/internal/emoji"
	"github.com/yildizm/PRDCheck/internal/progress"
)

// ProgressBar renders a percent-complete bar
type ProgressBar struct {
	Width   int
	Percent int
	Palette Palette
}

// NewProgressBar creates a new progress bar
func NewProgressBar(width int, palette Palette) *ProgressBar {
	return &ProgressBar{Width: width, Palette: palette}
}

// SetPercent updates the progress, clamped to 0..100
func (p *ProgressBar) SetPercent(percent int) {
	switch {
	case percent < 0:
		percent = 0
	case percent > progress.MaxPercent:
		percent = progress.MaxPercent
	}
	p.Percent = percent
}

// Render renders the progress bar
func (p *ProgressBar) Render() string {
	width := p.Width
	if width < 1 {
		width = 1
	}

	filledWidth := width * p.Percent / progress.MaxPercent
	emptyWidth := width - filledWidth

	filled := strings.Repeat("█", filledWidth)
	empty := strings.Repeat("░", emptyWidth)

	bar := p.Palette.Progress.Render(filled) + p.Palette.Muted.Render(empty)
	status := p.Palette.Muted.Render(fmt.Sprintf("%d%% Complete", p.Percent))

	return bar + "\n" + status
}

// StageList renders the analysis stages with their status
type StageList struct {
	Stages  []progress.Stage
	Palette Palette
	// Frame animates the current stage marker
	Frame int
}

// spinnerChars animate the current stage
var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Render renders one block per stage from a snapshot
func (l *StageList) Render(snap progress.Snapshot) string {
	lines := make([]string, 0, len(l.Stages)*3)

	for i, stage := range l.Stages {
		status := progress.StagePending
		if i < len(snap.Statuses) {
			status = snap.Statuses[i]
		}

		icon := emoji.GetEmoji(stage.Icon)
		var marker, name, desc string
		switch status {
		case progress.StageCompleted:
			marker = l.Palette.Success.Render(emoji.GetEmoji("success"))
			name = l.Palette.Success.Render(stage.Name)
			desc = l.Palette.Success.Render(stage.Description)
		case progress.StageCurrent:
			marker = l.Palette.Active.Render(spinnerChars[l.Frame%len(spinnerChars)])
			name = l.Palette.Active.Render(stage.Name)
			desc = l.Palette.Active.Render(stage.Description)
		default:
			marker = l.Palette.Muted.Render(emoji.GetEmoji("pending"))
			name = l.Palette.Muted.Render(stage.Name)
			desc = l.Palette.Muted.Render(stage.Description)
		}

		lines = append(lines, fmt.Sprintf("%s %s %s", marker, icon, name))
		lines = append(lines, "     "+desc)
		if i < len(l.Stages)-1 {
			lines = append(lines, "")
		}
	}

	return strings.Join(lines, "\n")
}
