package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// executeCommand runs a fresh root command and captures its output
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand("1.2.3", "abc123", "2025-01-01")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeFastConfig writes a config that completes an analysis in milliseconds
func writeFastConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `version: "1.0"
workflow:
  analysis_delay: 20ms
progress:
  interval: 1ms
  step: 50
output:
  color_mode: never
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func writeDocument(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, make([]byte, 2*1024*1024), 0o600); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(stdout, "PRDCheck 1.2.3 (abc123) built on 2025-01-01") {
		t.Errorf("unexpected version output: %q", stdout)
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		name                  string
		version, commit, date string
		expected              string
	}{
		{"release", "1.0.0", "deadbeef", "2025-03-04", "PRDCheck 1.0.0 (deadbeef) built on 2025-03-04"},
		{"dev build", "dev", "none", "unknown", "PRDCheck development (local-build) built on local-build"},
		{"empty", "", "", "", "PRDCheck development (local-build) built on local-build"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := versionString(tt.version, tt.commit, tt.date); got != tt.expected {
				t.Errorf("versionString() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestHeadlessJSONReport(t *testing.T) {
	cfg := writeFastConfig(t)
	doc := writeDocument(t, "wallet-prd.pdf")

	stdout, stderr, err := executeCommand(t, "--config", cfg, "--no-emoji", "analyze", "--no-tui", "-o", "json", doc)
	if err != nil {
		t.Fatalf("analyze failed: %v\nstderr: %s", err, stderr)
	}

	var report struct {
		Summary struct {
			DocumentTitle       string `json:"document_title"`
			ComplianceScore     int    `json:"compliance_score"`
			RiskLevel           string `json:"risk_level"`
			AreasReviewed       int    `json:"areas_reviewed"`
			RecommendationCount int    `json:"recommendation_count"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}

	if report.Summary.DocumentTitle != "wallet-prd" {
		t.Errorf("document title = %q, want wallet-prd", report.Summary.DocumentTitle)
	}
	if report.Summary.ComplianceScore != 78 {
		t.Errorf("compliance score = %d, want 78", report.Summary.ComplianceScore)
	}
	if report.Summary.RiskLevel != "Moderate" {
		t.Errorf("risk level = %q, want Moderate", report.Summary.RiskLevel)
	}
	if report.Summary.AreasReviewed != 3 {
		t.Errorf("areas reviewed = %d, want 3", report.Summary.AreasReviewed)
	}
	if report.Summary.RecommendationCount != 4 {
		t.Errorf("recommendation count = %d, want 4", report.Summary.RecommendationCount)
	}

	for _, want := range []string{"Analyzing Document: wallet-prd.pdf", "Document Processing", "Analysis complete"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestHeadlessCSVReport(t *testing.T) {
	cfg := writeFastConfig(t)
	doc := writeDocument(t, "wallet-prd.pdf")

	stdout, stderr, err := executeCommand(t, "--config", cfg, "analyze", "--no-tui", "-o", "csv", doc)
	if err != nil {
		t.Fatalf("analyze failed: %v\nstderr: %s", err, stderr)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 findings, got %d lines:\n%s", len(lines), stdout)
	}
	if !strings.HasPrefix(lines[0], "Document,Review Date,Area,Adequacy") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "wallet-prd,") {
		t.Errorf("first row should name the document: %q", lines[1])
	}
}

func TestHeadlessAdvisoryForUnlistedFormat(t *testing.T) {
	cfg := writeFastConfig(t)
	doc := writeDocument(t, "notes.txt")

	_, stderr, err := executeCommand(t, "--config", cfg, "--no-emoji", "--no-tui", "-o", "json", doc)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.Contains(stderr, ".txt is not a listed format") {
		t.Errorf("expected an advisory about .txt, got:\n%s", stderr)
	}
}

func TestHeadlessOutputFile(t *testing.T) {
	cfg := writeFastConfig(t)
	doc := writeDocument(t, "spec.docx")
	outFile := filepath.Join(t.TempDir(), "report.md")

	stdout, _, err := executeCommand(t, "--config", cfg, "analyze", "--no-tui", "-o", "markdown", "--output-file", outFile, doc)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected nothing on stdout, got %q", stdout)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	if !strings.Contains(string(data), "Compliance Official's Analysis Report") {
		t.Errorf("report file missing title:\n%s", data)
	}
}

func TestHeadlessErrors(t *testing.T) {
	cfg := writeFastConfig(t)
	missing := filepath.Join(t.TempDir(), "missing.pdf")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "no document",
			args:    []string{"--config", cfg, "analyze", "--no-tui"},
			wantErr: "requires a document path",
		},
		{
			name:    "missing document",
			args:    []string{"--config", cfg, "analyze", "--no-tui", missing},
			wantErr: "document not found",
		},
		{
			name:    "unknown output format",
			args:    []string{"--config", cfg, "analyze", "--no-tui", "-o", "xml", missing},
			wantErr: "output format",
		},
		{
			name:    "missing fixture",
			args:    []string{"--config", cfg, "analyze", "--no-tui", "--fixture", missing, missing},
			wantErr: "failed to create analysis provider",
		},
		{
			name:    "unknown theme",
			args:    []string{"--config", cfg, "analyze", "--no-tui", "--theme", "neon", missing},
			wantErr: "theme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	for _, minimal := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "nested", "prdcheck.yaml")

		args := []string{"config", "init", "--output", path}
		if minimal {
			args = append(args, "--minimal")
		}
		stdout, _, err := executeCommand(t, args...)
		if err != nil {
			t.Fatalf("config init failed: %v", err)
		}
		if !strings.Contains(stdout, path) {
			t.Errorf("init output should name the file: %q", stdout)
		}

		stdout, _, err = executeCommand(t, "--config", path, "config", "validate")
		if err != nil {
			t.Fatalf("generated config (minimal=%v) does not validate: %v", minimal, err)
		}
		if !strings.Contains(stdout, "Configuration is valid") {
			t.Errorf("unexpected validate output: %q", stdout)
		}

		_, _, err = executeCommand(t, "config", "init", "--output", path)
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("init over an existing file should fail, got %v", err)
		}
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("progress:\n  step: 500\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCommand(t, "--config", path, "config", "validate")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(stdout, "Configuration validation failed") {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestConfigShowJSON(t *testing.T) {
	cfg := writeFastConfig(t)

	stdout, _, err := executeCommand(t, "--config", cfg, "-o", "markdown", "config", "show", "--format", "json")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	var shown struct {
		Progress map[string]interface{} `json:"progress"`
		Output   map[string]interface{} `json:"output"`
	}
	if err := json.Unmarshal([]byte(stdout), &shown); err != nil {
		t.Fatalf("config show output is not JSON: %v", err)
	}
	if got := shown.Progress["step"]; got != float64(50) {
		t.Errorf("progress.step = %v, want 50", got)
	}
	if got := shown.Output["default_format"]; got != "markdown" {
		t.Errorf("--output should override default_format, got %v", got)
	}
}
