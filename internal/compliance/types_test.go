package compliance

import (
	"testing"
)

func TestDocumentTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "pdf extension", in: "spec.pdf", want: "spec"},
		{name: "docx extension", in: "Wallet PRD v2.docx", want: "Wallet PRD v2"},
		{name: "only last extension", in: "bundle.tar.gz", want: "bundle.tar"},
		{name: "no extension", in: "README", want: "README"},
		{name: "dotfile", in: ".draft", want: ".draft"},
		{name: "path prefix", in: "/tmp/docs/spec.pdf", want: "spec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DocumentTitle(tt.in); got != tt.want {
				t.Errorf("DocumentTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAnalysisResultValidate(t *testing.T) {
	tests := []struct {
		name    string
		result  AnalysisResult
		wantErr bool
	}{
		{
			name:   "valid",
			result: AnalysisResult{RiskLevel: RiskLow, ComplianceScore: 100},
		},
		{
			name:    "score above range",
			result:  AnalysisResult{RiskLevel: RiskLow, ComplianceScore: 101},
			wantErr: true,
		},
		{
			name:    "negative score",
			result:  AnalysisResult{RiskLevel: RiskHigh, ComplianceScore: -1},
			wantErr: true,
		},
		{
			name:    "unknown risk level",
			result:  AnalysisResult{RiskLevel: "Severe", ComplianceScore: 50},
			wantErr: true,
		},
		{
			name: "unknown adequacy",
			result: AnalysisResult{
				RiskLevel:       RiskModerate,
				ComplianceScore: 50,
				Findings:        []Finding{{Area: "KYC", Adequacy: "Mostly"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("Expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestAnalysisResultClone(t *testing.T) {
	original := mockResult()
	clone := original.Clone()

	clone.Findings[0].Area = "changed"
	clone.Recommendations[0] = "changed"
	clone.SignOff.Reviewer = "changed"

	if original.Findings[0].Area == "changed" {
		t.Error("Clone shares findings with the original")
	}
	if original.Recommendations[0] == "changed" {
		t.Error("Clone shares recommendations with the original")
	}
	if original.SignOff.Reviewer == "changed" {
		t.Error("Clone shares sign-off with the original")
	}

	var nilResult *AnalysisResult
	if nilResult.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestCountByAdequacy(t *testing.T) {
	counts := mockResult().CountByAdequacy()
	if counts[AdequacyAdequate] != 1 {
		t.Errorf("Expected 1 adequate finding, got %d", counts[AdequacyAdequate])
	}
	if counts[AdequacyPartial] != 2 {
		t.Errorf("Expected 2 partial findings, got %d", counts[AdequacyPartial])
	}
	if counts[AdequacyInadequate] != 0 {
		t.Errorf("Expected 0 inadequate findings, got %d", counts[AdequacyInadequate])
	}
}
