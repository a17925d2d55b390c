package compliance

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yildizm/go-promptfmt"
)

// FixtureProvider serves a result template loaded from a JSON file.
// The file may be raw JSON or a captured model reply with the JSON
// embedded in prose or a code fence.
type FixtureProvider struct {
	path     string
	clock    Clock
	template *AnalysisResult
}

// NewFixtureProvider loads and validates the fixture at path
func NewFixtureProvider(path string, clock Clock) (*FixtureProvider, error) {
	if strings.TrimSpace(path) == "" {
		return nil, NewProviderError(ProviderFixture, "fixture path is empty", nil)
	}
	if clock == nil {
		clock = SystemClock{}
	}

	// #nosec G304 - fixture path comes from the user's own config or flags
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, NewProviderError(ProviderFixture, "failed to read fixture", err)
	}

	template, err := parseFixture(data)
	if err != nil {
		return nil, NewProviderError(ProviderFixture, fmt.Sprintf("invalid fixture %s", path), err)
	}

	return &FixtureProvider{path: path, clock: clock, template: template}, nil
}

// Name returns the provider name
func (p *FixtureProvider) Name() string {
	return ProviderFixture
}

// Analyze stamps a copy of the template for doc
func (p *FixtureProvider) Analyze(ctx context.Context, doc UploadedFile) (*AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewProviderError(p.Name(), "analysis cancelled", err)
	}

	result := p.template.Clone()
	result.ID = newResultID()
	if result.DocumentTitle == "" {
		result.DocumentTitle = DocumentTitle(doc.Name)
	}
	result.AnalysisDate = p.clock.Now()
	return result, nil
}

// parseFixture extracts an AnalysisResult from raw fixture content
func parseFixture(data []byte) (*AnalysisResult, error) {
	response := promptfmt.NewResponse(string(data))

	var result AnalysisResult
	parseResult := response.TryParseJSON(&result)
	if !parseResult.Success {
		return nil, fmt.Errorf("no JSON analysis result found")
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}
	return &result, nil
}
