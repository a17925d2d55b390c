package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# PRDCheck configuration
# Search order: ./.prdcheck.yaml, ~/.config/prdcheck/config.yaml,
# /etc/prdcheck/config.yaml. PRDCHECK_* environment variables override
# file values (e.g. PRDCHECK_OUTPUT_DEFAULT_FORMAT=json).
version: "1.0"

workflow:
  # How long the simulated analysis runs before results are shown
  analysis_delay: 3s

progress:
  # Time between progress ticks and percent added per tick
  interval: 60ms
  step: 2

upload:
  # Advertised formats and size. Files outside these are still accepted.
  accepted_extensions: [".pdf", ".doc", ".docx"]
  max_size_bytes: 10485760
  # Directory watched for dropped files (empty disables the drop zone)
  drop_dir: ""

analysis:
  # mock: built-in sample report
  # fixture: report template read from fixture_path (JSON)
  provider: mock
  fixture_path: ""
  framework: "RBI Banking Regulations"
  engine: "AI-Powered Compliance Engine v2.1"

output:
  # text, json, markdown or csv (headless mode)
  default_format: text
  # auto, always or never
  color_mode: auto
  date_format: "January 2, 2006"
  # default, high-contrast or minimal
  theme: default
  verbose: false
`
}

// MinimalSampleConfig returns a configuration with only the common settings
func MinimalSampleConfig() string {
	return `version: "1.0"

workflow:
  analysis_delay: 3s

analysis:
  provider: mock

output:
  default_format: text
  theme: default
`
}
