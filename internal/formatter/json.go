package formatter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/yildizm/PRDCheck/internal/compliance"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct {
	display Options
}

// NewJSON creates a new JSON formatter
func NewJSON(opts Options) Formatter {
	return &jsonFormatter{display: opts}
}

func (f *jsonFormatter) Format(result *compliance.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no analysis result to format")
	}

	findings := result.Findings
	if findings == nil {
		findings = []compliance.Finding{}
	}
	recommendations := result.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}

	output := &ReportOutput{
		Summary:         createSummary(result, f.display),
		Findings:        findings,
		Recommendations: recommendations,
		References:      result.References,
		RiskCommentary:  result.RiskCommentary,
		SignOff:         result.SignOff,
	}

	return json.MarshalIndent(output, "", "  ")
}

// ReportOutput is the JSON document written for a result
type ReportOutput struct {
	Summary         *SummaryOutput         `json:"summary"`
	Findings        []compliance.Finding   `json:"findings"`
	Recommendations []string               `json:"recommendations"`
	References      []compliance.Reference `json:"references,omitempty"`
	RiskCommentary  []string               `json:"risk_commentary,omitempty"`
	SignOff         *compliance.SignOff    `json:"sign_off,omitempty"`
}

// SummaryOutput represents the executive summary section
type SummaryOutput struct {
	ID                  string         `json:"id"`
	DocumentTitle       string         `json:"document_title"`
	AnalysisDate        time.Time      `json:"analysis_date"`
	ReviewDate          string         `json:"review_date"`
	ComplianceScore     int            `json:"compliance_score"`
	RiskLevel           string         `json:"risk_level"`
	AreasReviewed       int            `json:"areas_reviewed"`
	RecommendationCount int            `json:"recommendation_count"`
	Adequacy            map[string]int `json:"adequacy"`
	Framework           string         `json:"framework,omitempty"`
	Engine              string         `json:"engine,omitempty"`
}

func createSummary(result *compliance.AnalysisResult, opts Options) *SummaryOutput {
	adequacy := make(map[string]int)
	for level, count := range result.CountByAdequacy() {
		adequacy[string(level)] = count
	}

	return &SummaryOutput{
		ID:                  result.ID,
		DocumentTitle:       result.DocumentTitle,
		AnalysisDate:        result.AnalysisDate,
		ReviewDate:          formatDate(result.AnalysisDate, opts.DateFormat),
		ComplianceScore:     result.ComplianceScore,
		RiskLevel:           string(result.RiskLevel),
		AreasReviewed:       len(result.Findings),
		RecommendationCount: len(result.Recommendations),
		Adequacy:            adequacy,
		Framework:           opts.Framework,
		Engine:              opts.Engine,
	}
}
