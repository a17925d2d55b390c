package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/PRDCheck/internal/compliance"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	display Options
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown(opts Options) Formatter {
	return &markdownFormatter{display: opts}
}

func (f *markdownFormatter) Format(result *compliance.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no analysis result to format")
	}

	var b strings.Builder

	b.WriteString("# " + TitleReport + "\n\n")

	f.writeSummaryTable(&b, result)
	if len(result.References) > 0 {
		f.writeReferences(&b, result.References)
	}
	f.writeAssessmentTable(&b, result.Findings)
	f.writeResidualRisk(&b, result)
	f.writeActionItems(&b, result.Recommendations)
	if result.SignOff != nil {
		f.writeSignOff(&b, result)
	}

	return []byte(b.String()), nil
}

// writeSummaryTable writes the executive summary as a two-column table
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, result *compliance.AnalysisResult) {
	b.WriteString("## Executive Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Document Title | %s |\n", escapeCell(result.DocumentTitle))
	fmt.Fprintf(b, "| Review Date | %s |\n", formatDate(result.AnalysisDate, f.display.DateFormat))
	fmt.Fprintf(b, "| Compliance Score | %d%% |\n", result.ComplianceScore)
	fmt.Fprintf(b, "| Risk Level | %s Risk |\n", result.RiskLevel)
	fmt.Fprintf(b, "| Areas Reviewed | %d |\n", len(result.Findings))
	fmt.Fprintf(b, "| Recommendations | %d |\n", len(result.Recommendations))
	if f.display.Framework != "" {
		fmt.Fprintf(b, "| Regulatory Framework | %s |\n", escapeCell(f.display.Framework))
	}
	if f.display.Engine != "" {
		fmt.Fprintf(b, "| Analysis Engine | %s |\n", escapeCell(f.display.Engine))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeReferences(b *strings.Builder, refs []compliance.Reference) {
	b.WriteString("## " + TitleReferences + "\n\n")
	for _, ref := range refs {
		if ref.Detail == "" {
			fmt.Fprintf(b, "- **%s**\n", ref.Title)
			continue
		}
		fmt.Fprintf(b, "- **%s** %s\n", ref.Title, ref.Detail)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeAssessmentTable(b *strings.Builder, findings []compliance.Finding) {
	b.WriteString("## " + TitleAssessment + "\n\n")
	if len(findings) == 0 {
		b.WriteString("No findings.\n\n")
		return
	}

	b.WriteString("| Area | Finding | Regulation | Adequacy | Remediation |\n")
	b.WriteString("|------|---------|------------|----------|-------------|\n")
	for _, finding := range findings {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			escapeCell(finding.Area),
			escapeCell(finding.Finding),
			escapeCell(finding.Regulation),
			finding.Adequacy,
			escapeCell(finding.Remediation))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeResidualRisk(b *strings.Builder, result *compliance.AnalysisResult) {
	b.WriteString("## " + TitleResidual + "\n\n")
	fmt.Fprintf(b, "**Risk Level:** %s\n\n", result.RiskLevel)
	if len(result.RiskCommentary) == 0 {
		return
	}
	b.WriteString("**Commentary:**\n\n")
	for _, line := range result.RiskCommentary {
		b.WriteString("- " + line + "\n")
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeActionItems(b *strings.Builder, recommendations []string) {
	b.WriteString("## " + TitleActions + "\n\n")
	if len(recommendations) == 0 {
		b.WriteString("No action items.\n\n")
		return
	}
	for i, rec := range recommendations {
		fmt.Fprintf(b, "%d. %s\n", i+1, rec)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeSignOff(b *strings.Builder, result *compliance.AnalysisResult) {
	s := result.SignOff
	b.WriteString("## " + TitleSignOff + "\n\n")
	fmt.Fprintf(b, "- **Reviewed By:** %s\n", s.Reviewer)
	fmt.Fprintf(b, "- **Department:** %s\n", s.Department)
	fmt.Fprintf(b, "- **Version:** %s\n", s.Version)
	fmt.Fprintf(b, "- **Submission Type:** %s\n", s.SubmissionType)
	fmt.Fprintf(b, "- **Date:** %s\n", formatDate(result.AnalysisDate, f.display.DateFormat))
	fmt.Fprintf(b, "- **Valid Until:** %s\n\n", s.ValidUntil)

	verdict := "**" + s.Verdict + "**"
	if s.Conditions != "" {
		verdict += " (" + s.Conditions + ")"
	}
	b.WriteString(verdict + "\n")
}
