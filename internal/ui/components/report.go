package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/PRDCheck/internal/compliance"
	"github.com/yildizm/PRDCheck/internal/emoji"
	"github.com/yildizm/PRDCheck/internal/formatter"
)

// ReportView renders an analysis result as a scrollable page
type ReportView struct {
	DetailViewer

	Result     *compliance.AnalysisResult
	DateFormat string
}

// NewReportView creates a report view for result
func NewReportView(result *compliance.AnalysisResult, width, height int, palette Palette) *ReportView {
	v := &ReportView{
		DetailViewer: DetailViewer{Width: width, Height: height, Palette: palette},
		Result:       result,
		DateFormat:   formatter.DefaultDateFormat,
	}
	v.build()
	return v
}

// SetDateFormat changes the date layout and rewraps the content
func (v *ReportView) SetDateFormat(layout string) {
	v.DateFormat = layout
	v.build()
}

func (v *ReportView) build() {
	r := v.Result
	if r == nil {
		v.SetContent([]DetailLine{Line(v.Palette.Muted.Render("No analysis result"), 0)}, nil)
		return
	}

	p := v.Palette
	date := "N/A"
	if !r.AnalysisDate.IsZero() {
		date = r.AnalysisDate.Format(v.DateFormat)
	}

	header := []DetailLine{
		Line(p.Title.Render(emoji.GetEmoji("report")+" "+formatter.TitleReport), 0),
		Line("", 0),
		Line(fmt.Sprintf("%s  %s  %s  %s",
			p.Info.Render(fmt.Sprintf("%d%% Compliance Score", r.ComplianceScore)),
			v.riskStyle(r.RiskLevel).Render(fmt.Sprintf("%s %s Risk", formatter.RiskSymbol(r.RiskLevel), r.RiskLevel)),
			p.Body.Render(fmt.Sprintf("%d Areas Reviewed", len(r.Findings))),
			p.Body.Render(fmt.Sprintf("%d Recommendations", len(r.Recommendations))),
		), 0),
		Line("", 0),
		v.field("Document Title", r.DocumentTitle),
		v.field("Review Date", date),
	}
	if s := r.SignOff; s != nil {
		header = append(header,
			v.field("Reviewed By", s.Reviewer),
			v.field("Department", s.Department),
			v.field("Version", s.Version),
			v.field("Submission Type", s.SubmissionType),
		)
	}

	var sections []DetailSection
	if len(r.References) > 0 {
		refs := DetailSection{Icon: emoji.GetEmoji("references"), Title: formatter.TitleReferences, Style: "info"}
		for _, ref := range r.References {
			refs.Content = append(refs.Content, Line("• "+p.Title.Render(ref.Title)+" "+ref.Detail, 2))
		}
		sections = append(sections, refs)
	}

	assessment := DetailSection{Icon: emoji.GetEmoji("shield"), Title: formatter.TitleAssessment}
	if len(r.Findings) == 0 {
		assessment.Content = append(assessment.Content, Line(p.Muted.Render("No findings"), 0))
	}
	for i, f := range r.Findings {
		assessment.Content = append(assessment.Content,
			Line(fmt.Sprintf("%s %s  %s",
				formatter.AdequacySymbol(f.Adequacy),
				p.Title.Render(f.Area),
				v.adequacyStyle(f.Adequacy).Render("["+string(f.Adequacy)+"]")), 0),
			Line("Finding:     "+f.Finding, 14),
			Line("Regulation:  "+p.Info.Render(f.Regulation), 14),
			Line("Remediation: "+f.Remediation, 14),
		)
		if i < len(r.Findings)-1 {
			assessment.Content = append(assessment.Content, Line("", 0))
		}
	}
	sections = append(sections, assessment)

	residual := DetailSection{
		Icon:    emoji.GetEmoji("risk"),
		Title:   formatter.TitleResidual,
		Style:   riskSectionStyle(r.RiskLevel),
		Content: []DetailLine{Line("Risk Level: "+v.riskStyle(r.RiskLevel).Render(string(r.RiskLevel)), 0)},
	}
	if len(r.RiskCommentary) > 0 {
		residual.Content = append(residual.Content, Line("Commentary:", 0))
		for _, line := range r.RiskCommentary {
			residual.Content = append(residual.Content, Line("  • "+line, 4))
		}
	}
	sections = append(sections, residual)

	actions := DetailSection{Icon: emoji.GetEmoji("recommendations"), Title: formatter.TitleActions, Style: "warning"}
	for i, rec := range r.Recommendations {
		actions.Content = append(actions.Content, Line(p.Warning.Render(fmt.Sprintf("%d.", i+1))+" "+rec, 3))
	}
	sections = append(sections, actions)

	if s := r.SignOff; s != nil {
		verdict := emoji.GetEmoji("success") + " " + s.Verdict
		if s.Conditions != "" {
			verdict += " (" + s.Conditions + ")"
		}
		sections = append(sections, DetailSection{
			Icon:  emoji.GetEmoji("signoff"),
			Title: formatter.TitleSignOff,
			Style: "success",
			Content: []DetailLine{
				v.field("Reviewed By", s.Reviewer),
				v.field("Date", date),
				v.field("Valid Until", s.ValidUntil),
				Line("", 0),
				Line(p.Success.Render(verdict), 0),
			},
		})
	}

	v.SetContent(header, sections)
}

func (v *ReportView) field(label, value string) DetailLine {
	return Line(v.Palette.Muted.Render(label+":")+" "+value, 0)
}

func riskSectionStyle(level compliance.RiskLevel) string {
	switch level {
	case compliance.RiskLow:
		return "success"
	case compliance.RiskHigh:
		return "error"
	default:
		return "warning"
	}
}

func (v *ReportView) riskStyle(level compliance.RiskLevel) lipgloss.Style {
	switch level {
	case compliance.RiskLow:
		return v.Palette.Success
	case compliance.RiskHigh:
		return v.Palette.Error
	default:
		return v.Palette.Warning
	}
}

func (v *ReportView) adequacyStyle(a compliance.Adequacy) lipgloss.Style {
	switch a {
	case compliance.AdequacyAdequate:
		return v.Palette.Success
	case compliance.AdequacyInadequate:
		return v.Palette.Error
	default:
		return v.Palette.Warning
	}
}
