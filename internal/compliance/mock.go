package compliance

import (
	"context"
)

// MockProvider returns the same prepaid-instrument review for every
// document. Only the ID, title and date change between runs.
type MockProvider struct {
	clock Clock
}

// NewMockProvider creates a mock provider stamping results with clock
func NewMockProvider(clock Clock) *MockProvider {
	if clock == nil {
		clock = SystemClock{}
	}
	return &MockProvider{clock: clock}
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return ProviderMock
}

// Analyze never fails unless ctx is already done
func (p *MockProvider) Analyze(ctx context.Context, doc UploadedFile) (*AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewProviderError(p.Name(), "analysis cancelled", err)
	}

	result := mockResult()
	result.ID = newResultID()
	result.DocumentTitle = DocumentTitle(doc.Name)
	result.AnalysisDate = p.clock.Now()
	return result, nil
}

func mockResult() *AnalysisResult {
	return &AnalysisResult{
		RiskLevel:       RiskModerate,
		ComplianceScore: 78,
		Findings: []Finding{
			{
				Area:        "KYC & Mobile Binding",
				Finding:     "OTP-verified mobile and OVD collection at issuance",
				Regulation:  "RBI PPI MD para 9.1 & 9.2; KYC MD (Feb 2016)",
				Adequacy:    AdequacyAdequate,
				Remediation: "None",
			},
			{
				Area:        "Issuance & Value Limits",
				Finding:     "No explicit issuance cap set",
				Regulation:  "RBI MD: ₹10k/month, ₹120k/year, ₹10k outstanding",
				Adequacy:    AdequacyPartial,
				Remediation: "Flag >₹5k issuance and enforce caps",
			},
			{
				Area:        "AML / SAR Requirements",
				Finding:     "No SAR triggers defined",
				Regulation:  "RBI AML Circular DBR.AML.BC.No.18 para 4.1",
				Adequacy:    AdequacyPartial,
				Remediation: "Add abnormal issuance SAR logic",
			},
		},
		Recommendations: []string{
			"Implement issuance caps per RBI MD",
			"Integrate SAR trigger thresholds",
			"Enhance logging schema for flagged events",
			"Update PCOMP self-attestation",
		},
		References: []Reference{
			{Title: "NPCI e-RUPI Circular", Detail: "(e.g., NPCI/UPI/2021-22/002) - OTP & beneficiary binding"},
			{Title: "RBI Master Direction on Prepaid Payment Instruments", Detail: "(Sept 2021) Para 9.1 & 9.2 - Small-PPI and Full-KYC PPI limits & features"},
			{Title: "RBI KYC Master Direction", Detail: "OTP verified mobile/OVD binding"},
			{Title: "RBI Cybersecurity Framework", Detail: "Log retention >=5 years"},
			{Title: "RBI AML/CFT Master Circular", Detail: "DBR.AML.BC.No.18/2016-17 - SAR & monitoring obligations"},
		},
		RiskCommentary: []string{
			"OTP and expiry controls reduce fraud risk",
			"AML and threshold-setting need enhancement",
			"Logging and grievance procedures are robust",
		},
		SignOff: &SignOff{
			Reviewer:       "[Name], AVP - Compliance",
			Department:     "Compliance & Risk",
			Version:        "PRD v1.0",
			SubmissionType: "Internal Sign-Off / NPCI PCOMP Attestation",
			ValidUntil:     "FY25-26 Q1 PCOMP submission deadline",
			Verdict:        "Approved for Pilot Launch",
			Conditions:     "subject to action items",
		},
	}
}
