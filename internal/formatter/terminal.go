package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/PRDCheck/internal/compliance"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts    *termfmt.TerminalOptions
	display Options
}

// NewTerminal creates a new terminal formatter
func NewTerminal(opts Options) Formatter {
	tOpts := termfmt.DefaultOptions()
	tOpts.Color = opts.Color
	tOpts.Emoji = true
	return &terminalFormatter{opts: tOpts, display: opts}
}

func (f *terminalFormatter) Format(result *compliance.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no analysis result to format")
	}

	var b strings.Builder

	f.writeHeader(&b)
	f.writeSummary(&b, result)

	if len(result.References) > 0 {
		f.writeReferences(&b, result.References)
	}
	if len(result.Findings) > 0 {
		f.writeAssessment(&b, result.Findings)
	}
	f.writeResidualRisk(&b, result)
	f.writeActionItems(&b, result.Recommendations)
	if result.SignOff != nil {
		f.writeSignOff(&b, result)
	}

	return []byte(b.String()), nil
}

// writeHeader writes the report title in a box
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := TitleReport
	width := len([]rune(header))

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

// writeSummary writes the executive summary as a tree
func (f *terminalFormatter) writeSummary(b *strings.Builder, result *compliance.AnalysisResult) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Executive Summary\n")

	bar := termfmt.CreateConfidenceBar(scoreFraction(result.ComplianceScore), f.opts)
	items := []termfmt.TreeItem{
		{Label: "Document Title", Value: result.DocumentTitle},
		{Label: "Review Date", Value: formatDate(result.AnalysisDate, f.display.DateFormat)},
		{Label: "Compliance Score", Value: fmt.Sprintf("%s %d%%", bar, result.ComplianceScore)},
		{Label: "Risk Level", Value: fmt.Sprintf("%s %s Risk", RiskSymbol(result.RiskLevel), result.RiskLevel)},
		{Label: "Areas Reviewed", Value: fmt.Sprintf("%d", len(result.Findings))},
		{Label: "Recommendations", Value: fmt.Sprintf("%d", len(result.Recommendations))},
	}
	if f.display.Framework != "" {
		items = append(items, termfmt.TreeItem{Label: "Regulatory Framework", Value: f.display.Framework})
	}
	if f.display.Engine != "" {
		items = append(items, termfmt.TreeItem{Label: "Analysis Engine", Value: f.display.Engine})
	}
	items[len(items)-1].Last = true

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeReferences(b *strings.Builder, refs []compliance.Reference) {
	symbol := termfmt.GetEmoji("info", f.opts)
	b.WriteString(symbol + " " + TitleReferences + "\n")

	items := make([]termfmt.TreeItem, 0, len(refs))
	for i, ref := range refs {
		items = append(items, termfmt.TreeItem{
			Label: ref.Title,
			Value: ref.Detail,
			Last:  i == len(refs)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeAssessment writes one branch per finding
func (f *terminalFormatter) writeAssessment(b *strings.Builder, findings []compliance.Finding) {
	symbol := termfmt.GetEmoji("target", f.opts)
	b.WriteString(symbol + " " + TitleAssessment + "\n")

	items := make([]termfmt.TreeItem, 0, len(findings))
	for i, finding := range findings {
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%s %s", AdequacySymbol(finding.Adequacy), finding.Area),
			Value: fmt.Sprintf("(%s)", finding.Adequacy),
			Children: []termfmt.TreeItem{
				{Label: "Finding", Value: finding.Finding},
				{Label: "Regulation", Value: finding.Regulation},
				{Label: "Remediation", Value: finding.Remediation, Last: true},
			},
			Last: i == len(findings)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeResidualRisk(b *strings.Builder, result *compliance.AnalysisResult) {
	symbol := termfmt.GetEmoji("warning", f.opts)
	b.WriteString(symbol + " " + TitleResidual + "\n")
	fmt.Fprintf(b, "Risk Level: %s\n", result.RiskLevel)
	for _, line := range result.RiskCommentary {
		b.WriteString("• " + line + "\n")
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writeActionItems(b *strings.Builder, recommendations []string) {
	symbol := termfmt.GetEmoji("recommendations", f.opts)
	b.WriteString(symbol + " " + TitleActions + "\n")
	if len(recommendations) == 0 {
		b.WriteString("No action items\n\n")
		return
	}
	for i, rec := range recommendations {
		fmt.Fprintf(b, "%d. %s\n", i+1, rec)
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writeSignOff(b *strings.Builder, result *compliance.AnalysisResult) {
	s := result.SignOff
	symbol := termfmt.GetEmoji("help", f.opts)
	b.WriteString(symbol + " " + TitleSignOff + "\n")

	items := []termfmt.TreeItem{
		{Label: "Reviewed By", Value: s.Reviewer},
		{Label: "Department", Value: s.Department},
		{Label: "Version", Value: s.Version},
		{Label: "Submission Type", Value: s.SubmissionType},
		{Label: "Date", Value: formatDate(result.AnalysisDate, f.display.DateFormat)},
		{Label: "Valid Until", Value: s.ValidUntil, Last: true},
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")

	verdict := s.Verdict
	if s.Conditions != "" {
		verdict += " (" + s.Conditions + ")"
	}
	fmt.Fprintf(b, "%s %s\n", AdequacySymbol(compliance.AdequacyAdequate), verdict)
}
