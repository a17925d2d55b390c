package compliance

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// RiskLevel is the overall residual risk of a reviewed document
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// Valid reports whether r is one of the known risk levels
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskModerate, RiskHigh:
		return true
	}
	return false
}

// Adequacy grades how well a document covers a regulatory area
type Adequacy string

const (
	AdequacyAdequate   Adequacy = "Adequate"
	AdequacyPartial    Adequacy = "Partial"
	AdequacyInadequate Adequacy = "Inadequate"
)

// Valid reports whether a is one of the known adequacy grades
func (a Adequacy) Valid() bool {
	switch a {
	case AdequacyAdequate, AdequacyPartial, AdequacyInadequate:
		return true
	}
	return false
}

// UploadedFile describes the attached document. Only its name and size
// are ever used; the content is never read.
type UploadedFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Path string `json:"path,omitempty"`
}

// Finding is one row of the compliance assessment table
type Finding struct {
	Area        string   `json:"area" yaml:"area"`
	Finding     string   `json:"finding" yaml:"finding"`
	Regulation  string   `json:"regulation" yaml:"regulation"`
	Adequacy    Adequacy `json:"adequacy" yaml:"adequacy"`
	Remediation string   `json:"remediation" yaml:"remediation"`
}

// Reference is a regulation the report was checked against
type Reference struct {
	Title  string `json:"title" yaml:"title"`
	Detail string `json:"detail" yaml:"detail"`
}

// SignOff holds the reviewer block printed at the end of a report
type SignOff struct {
	Reviewer       string `json:"reviewer" yaml:"reviewer"`
	Department     string `json:"department" yaml:"department"`
	Version        string `json:"version" yaml:"version"`
	SubmissionType string `json:"submission_type" yaml:"submission_type"`
	ValidUntil     string `json:"valid_until" yaml:"valid_until"`
	Verdict        string `json:"verdict" yaml:"verdict"`
	Conditions     string `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// AnalysisResult is the outcome of one analysis run
type AnalysisResult struct {
	ID              string      `json:"id"`
	DocumentTitle   string      `json:"document_title"`
	AnalysisDate    time.Time   `json:"analysis_date"`
	RiskLevel       RiskLevel   `json:"risk_level"`
	ComplianceScore int         `json:"compliance_score"`
	Findings        []Finding   `json:"findings"`
	Recommendations []string    `json:"recommendations"`
	References      []Reference `json:"references,omitempty"`
	RiskCommentary  []string    `json:"risk_commentary,omitempty"`
	SignOff         *SignOff    `json:"sign_off,omitempty"`
}

// Validate checks the invariants every provider must respect
func (r *AnalysisResult) Validate() error {
	if r.ComplianceScore < 0 || r.ComplianceScore > 100 {
		return fmt.Errorf("compliance score %d out of range 0-100", r.ComplianceScore)
	}
	if !r.RiskLevel.Valid() {
		return fmt.Errorf("unknown risk level %q", r.RiskLevel)
	}
	for i, f := range r.Findings {
		if !f.Adequacy.Valid() {
			return fmt.Errorf("finding %d (%s): unknown adequacy %q", i+1, f.Area, f.Adequacy)
		}
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate a finished result
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	c := *r
	c.Findings = append([]Finding(nil), r.Findings...)
	c.Recommendations = append([]string(nil), r.Recommendations...)
	c.References = append([]Reference(nil), r.References...)
	c.RiskCommentary = append([]string(nil), r.RiskCommentary...)
	if r.SignOff != nil {
		s := *r.SignOff
		c.SignOff = &s
	}
	return &c
}

// CountByAdequacy tallies findings per adequacy grade
func (r *AnalysisResult) CountByAdequacy() map[Adequacy]int {
	counts := make(map[Adequacy]int, 3)
	for _, f := range r.Findings {
		counts[f.Adequacy]++
	}
	return counts
}

// DocumentTitle derives a report title from a file name by dropping the
// final extension: "spec.pdf" becomes "spec".
func DocumentTitle(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == base {
		// dotfile such as ".draft"
		return base
	}
	return strings.TrimSuffix(base, ext)
}
