package components

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/PRDCheck/internal/compliance"
	"github.com/yildizm/PRDCheck/internal/emoji"
	"github.com/yildizm/PRDCheck/internal/formatter"
	"github.com/yildizm/PRDCheck/internal/progress"
	"github.com/yildizm/PRDCheck/internal/workflow"
)

func mockResult(t *testing.T) *compliance.AnalysisResult {
	t.Helper()
	provider := compliance.NewMockProvider(compliance.FixedClock(time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)))
	result, err := provider.Analyze(context.Background(), compliance.UploadedFile{Name: "wallet.pdf", Size: 1})
	require.NoError(t, err)
	return result
}

func TestProgressBar(t *testing.T) {
	bar := NewProgressBar(10, PlainPalette())

	bar.SetPercent(40)
	assert.Equal(t, "████░░░░░░\n40% Complete", bar.Render())

	bar.SetPercent(150)
	assert.Equal(t, progress.MaxPercent, bar.Percent)
	bar.SetPercent(-5)
	assert.Equal(t, 0, bar.Percent)
}

func TestStageListMarksStages(t *testing.T) {
	emoji.SetEmojiDisabled(true)
	defer emoji.SetEmojiDisabled(false)

	sim := progress.New(nil, 10)
	for i := 0; i < 3; i++ {
		sim.Advance()
	}
	list := StageList{Stages: sim.Stages(), Palette: PlainPalette()}
	out := list.Render(sim.Snapshot())

	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], emoji.GetEmoji("success")), "first stage should be completed at 30%%: %q", lines[0])
	assert.Contains(t, out, spinnerChars[0]+" "+emoji.GetEmoji("search")+" Regulation Mapping")
	assert.Contains(t, out, emoji.GetEmoji("pending")+" "+emoji.GetEmoji("shield")+" Compliance Assessment")
	assert.Contains(t, out, "Generating comprehensive analysis report")
}

func TestStepper(t *testing.T) {
	emoji.SetEmojiDisabled(true)
	defer emoji.SetEmojiDisabled(false)

	out := Stepper{Palette: PlainPalette()}.Render(workflow.StateAnalyzing)
	assert.Equal(t, emoji.GetEmoji("success")+" Upload ── (2) Analyzing ── (3) Results", out)
}

func TestToast(t *testing.T) {
	toast := Toast{Palette: PlainPalette()}

	assert.Empty(t, toast.Render(nil))
	assert.Contains(t, toast.Render(&workflow.Notice{Level: workflow.NoticeError, Message: workflow.MsgNoDocument}), workflow.MsgNoDocument)
}

func TestReportViewContent(t *testing.T) {
	result := mockResult(t)
	view := NewReportView(result, 100, 0, PlainPalette())
	out := view.Render()

	for _, want := range []string{
		formatter.TitleReport,
		"78% Compliance Score",
		"Moderate Risk",
		"3 Areas Reviewed",
		"4 Recommendations",
		"Document Title: wallet",
		"Review Date: March 4, 2025",
		formatter.TitleReferences,
		formatter.TitleAssessment,
		formatter.TitleResidual,
		formatter.TitleActions,
		formatter.TitleSignOff,
	} {
		assert.Contains(t, out, want)
	}

	view.SetDateFormat("2006-01-02")
	assert.Contains(t, view.Render(), "Review Date: 2025-03-04")
}

func TestReportViewScrolling(t *testing.T) {
	view := NewReportView(mockResult(t), 80, 10, PlainPalette())
	require.Greater(t, view.LineCount(), 10)

	assert.Len(t, strings.Split(view.Render(), "\n"), 10)

	view.ScrollDown(1000)
	assert.Equal(t, view.MaxOffset(), view.Offset)
	assert.Equal(t, view.LineCount()-10, view.MaxOffset())

	view.ScrollUp(3)
	assert.Equal(t, view.MaxOffset()-3, view.Offset)

	view.ScrollUp(1000)
	assert.Equal(t, 0, view.Offset)

	// growing the viewport past the content clamps the offset
	view.ScrollDown(5)
	view.SetSize(80, 1000)
	assert.Equal(t, 0, view.Offset)
}

func TestReportViewWrapsLongLines(t *testing.T) {
	result := mockResult(t)
	wide := NewReportView(result, 200, 0, PlainPalette())
	narrow := NewReportView(result, 40, 0, PlainPalette())

	assert.Greater(t, narrow.LineCount(), wide.LineCount())
}

func TestDetailViewerSections(t *testing.T) {
	view := &DetailViewer{Width: 40, Height: 6, Palette: PlainPalette()}
	body := []DetailLine{Line("one", 0), Line("two", 0), Line("three", 0)}
	view.SetContent(
		[]DetailLine{Line("Header", 0)},
		[]DetailSection{
			{Title: "First", Content: body},
			{Title: "Second", Style: "warning", Content: body},
			{Title: "Third", Style: "success", Content: body},
		},
	)
	require.Equal(t, 3, view.SectionCount())
	require.Equal(t, 1+3*6, view.LineCount())

	assert.True(t, view.NextSection())
	assert.Equal(t, 2, view.Offset)
	assert.True(t, strings.HasPrefix(view.Render(), "First\n─"))

	assert.True(t, view.NextSection())
	assert.True(t, strings.HasPrefix(view.Render(), "Second"))

	// the last title sits below the furthest offset, so the jump clamps
	assert.True(t, view.NextSection())
	assert.Equal(t, view.MaxOffset(), view.Offset)
	assert.Contains(t, view.Render(), "Third")
	assert.False(t, view.NextSection())

	assert.True(t, view.PreviousSection())
	assert.True(t, strings.HasPrefix(view.Render(), "Second"))
	view.ScrollUp(100)
	assert.False(t, view.PreviousSection())
}

func TestDetailViewerWrapIndent(t *testing.T) {
	view := &DetailViewer{Width: 20, Palette: PlainPalette()}
	view.SetContent(nil, []DetailSection{{
		Title:   "Notes",
		Content: []DetailLine{Line("Finding: alpha beta gamma delta epsilon", 9)},
	}})

	lines := strings.Split(view.Render(), "\n")
	require.Greater(t, len(lines), 4)
	for _, line := range lines[4:] {
		assert.True(t, strings.HasPrefix(line, strings.Repeat(" ", 9)), "continuation %q", line)
	}
}

func TestReportViewWithoutResult(t *testing.T) {
	view := NewReportView(nil, 80, 10, PlainPalette())
	assert.Equal(t, "No analysis result", view.Render())
}
