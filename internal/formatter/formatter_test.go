package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/PRDCheck/internal/compliance"
)

var reviewDate = time.Date(2025, time.March, 4, 10, 30, 0, 0, time.UTC)

func sampleResult(t *testing.T) *compliance.AnalysisResult {
	t.Helper()
	provider := compliance.NewMockProvider(compliance.FixedClock(reviewDate))
	result, err := provider.Analyze(context.Background(), compliance.UploadedFile{Name: "spec.pdf", Size: 2 << 20})
	require.NoError(t, err)
	return result
}

func testOptions() Options {
	return Options{
		Color:      false,
		DateFormat: DefaultDateFormat,
		Framework:  "RBI Banking Regulations",
		Engine:     "AI-Powered Compliance Engine v2.1",
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"", false},
		{"terminal", false},
		{"json", false},
		{"JSON", false},
		{"markdown", false},
		{"md", false},
		{"csv", false},
		{"xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := New(tt.format, testOptions())
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestFormattersRejectNil(t *testing.T) {
	for _, f := range []Formatter{NewTerminal(testOptions()), NewJSON(testOptions()), NewMarkdown(testOptions()), NewCSV()} {
		_, err := f.Format(nil)
		assert.Error(t, err)
	}
}

func TestJSONFormatter(t *testing.T) {
	result := sampleResult(t)

	data, err := NewJSON(testOptions()).Format(result)
	require.NoError(t, err)

	var out ReportOutput
	require.NoError(t, json.Unmarshal(data, &out))

	require.NotNil(t, out.Summary)
	assert.Equal(t, result.ID, out.Summary.ID)
	assert.Equal(t, "spec", out.Summary.DocumentTitle)
	assert.Equal(t, "March 4, 2025", out.Summary.ReviewDate)
	assert.Equal(t, 78, out.Summary.ComplianceScore)
	assert.Equal(t, "Moderate", out.Summary.RiskLevel)
	assert.Equal(t, 3, out.Summary.AreasReviewed)
	assert.Equal(t, 4, out.Summary.RecommendationCount)
	assert.Equal(t, 1, out.Summary.Adequacy["Adequate"])
	assert.Equal(t, 2, out.Summary.Adequacy["Partial"])
	assert.True(t, reviewDate.Equal(out.Summary.AnalysisDate))

	assert.Len(t, out.Findings, 3)
	assert.Len(t, out.Recommendations, 4)
	assert.Len(t, out.References, 5)
	require.NotNil(t, out.SignOff)
	assert.Equal(t, "Approved for Pilot Launch", out.SignOff.Verdict)
}

func TestJSONFormatterEmptyLists(t *testing.T) {
	result := &compliance.AnalysisResult{DocumentTitle: "x", RiskLevel: compliance.RiskLow}

	data, err := NewJSON(testOptions()).Format(result)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"findings": []`)
	assert.Contains(t, s, `"recommendations": []`)
	assert.Contains(t, s, `"review_date": "N/A"`)
	assert.Nil(t, result.Findings, "input must not be modified")
}

func TestMarkdownFormatter(t *testing.T) {
	data, err := NewMarkdown(testOptions()).Format(sampleResult(t))
	require.NoError(t, err)
	out := string(data)

	for _, want := range []string{
		"# " + TitleReport,
		"| Document Title | spec |",
		"| Review Date | March 4, 2025 |",
		"| Compliance Score | 78% |",
		"| Risk Level | Moderate Risk |",
		"| Areas Reviewed | 3 |",
		"| Regulatory Framework | RBI Banking Regulations |",
		"## " + TitleReferences,
		"- **RBI KYC Master Direction**",
		"| Area | Finding | Regulation | Adequacy | Remediation |",
		"| AML / SAR Requirements | No SAR triggers defined |",
		"## " + TitleResidual,
		"- OTP and expiry controls reduce fraud risk",
		"1. Implement issuance caps per RBI MD",
		"4. Update PCOMP self-attestation",
		"**Approved for Pilot Launch** (subject to action items)",
	} {
		assert.Contains(t, out, want)
	}

	// sections appear in report order
	assert.Less(t, strings.Index(out, TitleReferences), strings.Index(out, TitleAssessment))
	assert.Less(t, strings.Index(out, TitleAssessment), strings.Index(out, TitleActions))
	assert.Less(t, strings.Index(out, TitleActions), strings.Index(out, TitleSignOff))
}

func TestMarkdownEscapesCells(t *testing.T) {
	result := &compliance.AnalysisResult{
		DocumentTitle: "a|b",
		RiskLevel:     compliance.RiskHigh,
		Findings: []compliance.Finding{
			{Area: "Line\nbreak", Finding: "x", Regulation: "y", Adequacy: compliance.AdequacyInadequate, Remediation: "z"},
		},
	}

	data, err := NewMarkdown(testOptions()).Format(result)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `| Document Title | a\|b |`)
	assert.Contains(t, out, "| Line break | x | y | Inadequate | z |")
	assert.Contains(t, out, "No action items.")
}

func TestCSVFormatter(t *testing.T) {
	data, err := NewCSV().Format(sampleResult(t))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"Document", "Review Date", "Area", "Adequacy", "Regulation", "Finding", "Remediation"}, records[0])
	first := records[1]
	assert.Equal(t, "spec", first[0])
	assert.Equal(t, "2025-03-04", first[1])
	assert.Equal(t, "KYC & Mobile Binding", first[2])
	for _, record := range records[1:] {
		assert.Len(t, record, 7)
		assert.NotEmpty(t, record[3])
	}
}

func TestCSVFormatterFlattensLines(t *testing.T) {
	result := &compliance.AnalysisResult{
		DocumentTitle: "wallet, v2",
		Findings: []compliance.Finding{
			{Area: "Line\nbreak", Finding: "a \"quoted\" gap", Regulation: "r", Adequacy: compliance.AdequacyPartial, Remediation: "fix\r\nsoon"},
		},
	}

	data, err := NewCSV().Format(result)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"wallet, v2", "", "Line break", string(compliance.AdequacyPartial), "r", `a "quoted" gap`, "fix soon"}, records[1])
}

func TestTerminalFormatter(t *testing.T) {
	data, err := NewTerminal(testOptions()).Format(sampleResult(t))
	require.NoError(t, err)
	out := string(data)

	for _, want := range []string{
		TitleReport,
		"Executive Summary",
		"78%",
		"Moderate Risk",
		"March 4, 2025",
		TitleReferences,
		"NPCI e-RUPI Circular",
		TitleAssessment,
		"KYC & Mobile Binding",
		"No explicit issuance cap set",
		TitleResidual,
		"• AML and threshold-setting need enhancement",
		"1. Implement issuance caps per RBI MD",
		TitleSignOff,
		"Approved for Pilot Launch (subject to action items)",
	} {
		assert.Contains(t, out, want)
	}
}

func TestScoreFraction(t *testing.T) {
	assert.Equal(t, 0.0, scoreFraction(-5))
	assert.Equal(t, 0.78, scoreFraction(78))
	assert.Equal(t, 1.0, scoreFraction(120))
}
