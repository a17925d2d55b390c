package compliance

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Provider produces an analysis result for an uploaded document.
// The workflow only depends on this interface, so a real compliance
// engine can replace the mock without touching workflow logic.
type Provider interface {
	// Name returns the provider name (e.g. "mock", "fixture")
	Name() string

	// Analyze returns a complete result for the document
	Analyze(ctx context.Context, doc UploadedFile) (*AnalysisResult, error)
}

// Provider names accepted by NewProvider
const (
	ProviderMock    = "mock"
	ProviderFixture = "fixture"
)

// ProviderOptions selects and configures a provider
type ProviderOptions struct {
	Name        string
	FixturePath string
	Clock       Clock
}

// NewProvider builds the provider named in opts
func NewProvider(opts ProviderOptions) (Provider, error) {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	switch strings.ToLower(opts.Name) {
	case "", ProviderMock:
		return NewMockProvider(clock), nil
	case ProviderFixture:
		return NewFixtureProvider(opts.FixturePath, clock)
	default:
		return nil, fmt.Errorf("%w: %s (must be one of: %s, %s)", ErrUnknownProvider, opts.Name, ProviderMock, ProviderFixture)
	}
}

// newResultID returns a fresh identifier for a result
func newResultID() string {
	return uuid.New().String()
}
