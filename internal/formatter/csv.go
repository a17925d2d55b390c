package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/PRDCheck/internal/compliance"
)

// csvFormatter writes one row per assessment finding
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(result *compliance.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no analysis result to format")
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Document",
		"Review Date",
		"Area",
		"Adequacy",
		"Regulation",
		"Finding",
		"Remediation",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, finding := range result.Findings {
		record := []string{
			escapeCSVString(result.DocumentTitle),
			formatCSVTime(result.AnalysisDate),
			escapeCSVString(finding.Area),
			string(finding.Adequacy),
			escapeCSVString(finding.Regulation),
			escapeCSVString(finding.Finding),
			escapeCSVString(finding.Remediation),
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// formatCSVTime uses ISO dates regardless of the display layout
func formatCSVTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// escapeCSVString keeps each record on a single line
func escapeCSVString(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
