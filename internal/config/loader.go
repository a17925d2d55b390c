package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PRDCHECK_"

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.prdcheck.yaml",               // Project-specific config (highest priority)
	"~/.config/prdcheck/config.yaml", // User config
	"/etc/prdcheck/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	getenv      func(string) string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		getenv:      os.Getenv,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.prdcheck.yaml
// 4. ~/.config/prdcheck/config.yaml
// 5. /etc/prdcheck/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	// If custom path is provided, use only that path
	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := ExpandPath(l.configPaths[i])
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					// Log warning but continue with other config files
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// A second decode into a generic map tells explicit booleans apart
	// from absent ones
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig, raw)

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Workflow and progress
		"WORKFLOW_ANALYSIS_DELAY": func(v string) error { return parseDuration(v, &config.Workflow.AnalysisDelay) },
		"PROGRESS_INTERVAL":       func(v string) error { return parseDuration(v, &config.Progress.Interval) },
		"PROGRESS_STEP":           func(v string) error { return parseInt(v, &config.Progress.Step) },

		// Upload
		"UPLOAD_MAX_SIZE_BYTES": func(v string) error { return parseInt64(v, &config.Upload.MaxSizeBytes) },
		"UPLOAD_DROP_DIR":       func(v string) error { config.Upload.DropDir = v; return nil },

		// Analysis
		"ANALYSIS_PROVIDER":     func(v string) error { config.Analysis.Provider = v; return nil },
		"ANALYSIS_FIXTURE_PATH": func(v string) error { config.Analysis.FixturePath = v; return nil },
		"ANALYSIS_FRAMEWORK":    func(v string) error { config.Analysis.Framework = v; return nil },
		"ANALYSIS_ENGINE":       func(v string) error { config.Analysis.Engine = v; return nil },

		// Output
		"OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"OUTPUT_DATE_FORMAT":    func(v string) error { config.Output.DateFormat = v; return nil },
		"OUTPUT_THEME":          func(v string) error { config.Output.Theme = v; return nil },
		"OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
	}

	for suffix, setter := range envMappings {
		envVar := EnvPrefix + suffix
		if value := l.getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// Comma-separated list
	if exts := l.getenv(EnvPrefix + "UPLOAD_ACCEPTED_EXTENSIONS"); exts != "" {
		config.Upload.AcceptedExtensions = splitList(exts)
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, ExpandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := ExpandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/etc/passwd") ||
		strings.HasPrefix(absPath, "/etc/shadow") ||
		strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// ExpandPath expands a leading ~/ to the home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeConfigs merges source config into destination config.
// Only non-zero values from source overwrite destination; booleans are
// merged when the key is present in raw.
func mergeConfigs(dst, src *Config, raw map[string]interface{}) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeWorkflowConfig(&dst.Workflow, &src.Workflow, section(raw, "workflow"))
	mergeProgressConfig(&dst.Progress, &src.Progress)
	mergeUploadConfig(&dst.Upload, &src.Upload, section(raw, "upload"))
	mergeAnalysisConfig(&dst.Analysis, &src.Analysis)
	mergeOutputConfig(&dst.Output, &src.Output, section(raw, "output"))
}

// zero is a valid delay, so presence decides
func mergeWorkflowConfig(dst, src *WorkflowConfig, raw map[string]interface{}) {
	if src.AnalysisDelay != 0 || isSet(raw, "analysis_delay") {
		dst.AnalysisDelay = src.AnalysisDelay
	}
}

func mergeProgressConfig(dst, src *ProgressConfig) {
	if src.Interval != 0 {
		dst.Interval = src.Interval
	}
	if src.Step != 0 {
		dst.Step = src.Step
	}
}

func mergeUploadConfig(dst, src *UploadConfig, raw map[string]interface{}) {
	if len(src.AcceptedExtensions) > 0 {
		dst.AcceptedExtensions = src.AcceptedExtensions
	}
	// max_size_bytes: 0 turns the size advisory off
	if src.MaxSizeBytes != 0 || isSet(raw, "max_size_bytes") {
		dst.MaxSizeBytes = src.MaxSizeBytes
	}
	if src.DropDir != "" {
		dst.DropDir = src.DropDir
	}
}

func mergeAnalysisConfig(dst, src *AnalysisConfig) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.FixturePath != "" {
		dst.FixturePath = src.FixturePath
	}
	if src.Framework != "" {
		dst.Framework = src.Framework
	}
	if src.Engine != "" {
		dst.Engine = src.Engine
	}
}

func mergeOutputConfig(dst, src *OutputConfig, raw map[string]interface{}) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	if src.DateFormat != "" {
		dst.DateFormat = src.DateFormat
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	mergeIfSet(&dst.Verbose, src.Verbose, raw, "verbose")
}

// mergeIfSet merges a boolean only when its key was present in the file
func mergeIfSet(dst *bool, src bool, raw map[string]interface{}, key string) {
	if isSet(raw, key) {
		*dst = src
	}
}

// isSet reports whether key was written in the file, even as a zero value
func isSet(raw map[string]interface{}, key string) bool {
	_, ok := raw[key]
	return ok
}

// section returns the nested mapping stored under key, if any
func section(raw map[string]interface{}, key string) map[string]interface{} {
	if m, ok := raw[key].(map[string]interface{}); ok {
		return m
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseInt64(s string, dst *int64) error {
	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
