package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Workflow WorkflowConfig `yaml:"workflow" json:"workflow"`
	Progress ProgressConfig `yaml:"progress" json:"progress"`
	Upload   UploadConfig   `yaml:"upload" json:"upload"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	Output   OutputConfig   `yaml:"output" json:"output"`
}

// WorkflowConfig configures the upload → analyzing → results cycle
type WorkflowConfig struct {
	AnalysisDelay time.Duration `yaml:"analysis_delay" json:"analysis_delay"` // simulated analysis time
}

// ProgressConfig configures the progress animation
type ProgressConfig struct {
	Interval time.Duration `yaml:"interval" json:"interval"` // time between ticks
	Step     int           `yaml:"step" json:"step"`         // percent added per tick
}

// UploadConfig configures what the upload screen advertises
type UploadConfig struct {
	AcceptedExtensions []string `yaml:"accepted_extensions" json:"accepted_extensions"` // advisory only
	MaxSizeBytes       int64    `yaml:"max_size_bytes" json:"max_size_bytes"`           // advisory only
	DropDir            string   `yaml:"drop_dir" json:"drop_dir"`                       // watched drop directory
}

// AnalysisConfig configures where results come from
type AnalysisConfig struct {
	Provider    string `yaml:"provider" json:"provider"`         // mock|fixture
	FixturePath string `yaml:"fixture_path" json:"fixture_path"` // JSON result template
	Framework   string `yaml:"framework" json:"framework"`       // shown in the report header
	Engine      string `yaml:"engine" json:"engine"`             // shown in the report header
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	DateFormat    string `yaml:"date_format" json:"date_format"`       // report date layout
	Theme         string `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Workflow: WorkflowConfig{
			AnalysisDelay: 3 * time.Second,
		},
		Progress: ProgressConfig{
			Interval: 60 * time.Millisecond,
			Step:     2,
		},
		Upload: UploadConfig{
			AcceptedExtensions: []string{".pdf", ".doc", ".docx"},
			MaxSizeBytes:       10 * 1024 * 1024, // 10MB
			DropDir:            "",
		},
		Analysis: AnalysisConfig{
			Provider:    "mock",
			FixturePath: "",
			Framework:   "RBI Banking Regulations",
			Engine:      "AI-Powered Compliance Engine v2.1",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			DateFormat:    "January 2, 2006",
			Theme:         "default",
			Verbose:       false,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateWorkflowConfig(); err != nil {
		return err
	}
	if err := c.validateUploadConfig(); err != nil {
		return err
	}
	if err := c.validateAnalysisConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateWorkflowConfig validates timing configuration
func (c *Config) validateWorkflowConfig() error {
	if c.Workflow.AnalysisDelay < 0 {
		return fmt.Errorf("analysis_delay must be non-negative")
	}
	if c.Progress.Interval <= 0 {
		return fmt.Errorf("progress interval must be greater than 0")
	}
	if c.Progress.Step < 1 || c.Progress.Step > 100 {
		return fmt.Errorf("progress step must be between 1 and 100")
	}
	return nil
}

// validateUploadConfig validates upload advisories
func (c *Config) validateUploadConfig() error {
	if c.Upload.MaxSizeBytes < 0 {
		return fmt.Errorf("max_size_bytes must be non-negative")
	}
	for _, ext := range c.Upload.AcceptedExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid accepted extension: %q (must start with a dot)", ext)
		}
	}
	return nil
}

// validateAnalysisConfig validates provider selection
func (c *Config) validateAnalysisConfig() error {
	switch c.Analysis.Provider {
	case "", "mock":
	case "fixture":
		if strings.TrimSpace(c.Analysis.FixturePath) == "" {
			return fmt.Errorf("fixture provider requires fixture_path")
		}
	default:
		return fmt.Errorf("invalid analysis provider: %s (must be one of: mock, fixture)", c.Analysis.Provider)
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.Output.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Output.Theme)
		}
	}
	return nil
}
