package compliance

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownProvider is returned when the configured provider name is not registered
var ErrUnknownProvider = errors.New("unknown analysis provider")

// ProviderError reports a failure inside an analysis provider
type ProviderError struct {
	// Provider names the provider that failed
	Provider string `json:"provider"`

	// Message is a human-readable description
	Message string `json:"message"`

	// Cause is the underlying error, if any
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	parts := []string{fmt.Sprintf("provider=%s", e.Provider), e.Message}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a provider error with an optional cause
func NewProviderError(provider, message string, cause error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  message,
		Cause:    cause,
	}
}

// IsProviderError checks whether err came from a provider
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
