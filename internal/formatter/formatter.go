package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/PRDCheck/internal/compliance"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(result *compliance.AnalysisResult) ([]byte, error)
}

// Format names accepted by New
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// Options carries display settings shared by all formatters
type Options struct {
	Color      bool
	DateFormat string
	Framework  string
	Engine     string
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		Color:      true,
		DateFormat: DefaultDateFormat,
	}
}

// New returns the formatter registered under format
func New(format string, opts Options) (Formatter, error) {
	if opts.DateFormat == "" {
		opts.DateFormat = DefaultDateFormat
	}
	switch strings.ToLower(format) {
	case FormatJSON:
		return NewJSON(opts), nil
	case FormatMarkdown, "md":
		return NewMarkdown(opts), nil
	case FormatCSV:
		return NewCSV(), nil
	case FormatText, "terminal", "":
		return NewTerminal(opts), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use text, json, markdown or csv)", format)
	}
}
