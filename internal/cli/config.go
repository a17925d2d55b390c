package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yildizm/PRDCheck/internal/config"
	"github.com/yildizm/PRDCheck/internal/emoji"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage PRDCheck configuration",
		Long: `Manage PRDCheck configuration files and settings.

Configuration covers the analysis workflow (simulated delay), progress
ticking, upload advisories and the watched drop directory, the result
provider (mock or fixture) and report output.`,
	}

	// Add subcommands
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new PRDCheck configuration file with default values.
		
By default, creates a full configuration file with the workflow, progress,
upload, analysis and output sections documented. Use --minimal for a
compact file with only the analysis delay, provider and report format.`,
		Example: `  # Create full config in current directory
  prdcheck config init

  # Create minimal config
  prdcheck config init --minimal

  # Create config at specific path
  prdcheck config init --output ~/.config/prdcheck/config.yaml

  # Overwrite existing config
  prdcheck config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Determine output path
			if outputPath == "" {
				outputPath = ".prdcheck.yaml"
			}

			// Check if file exists and not forcing
			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			// Create directory if needed
			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			// Get config content
			var content string
			if minimal {
				content = config.MinimalSampleConfig()
			} else {
				content = config.SampleConfig()
			}

			// Write config file
			if err := os.WriteFile(outputPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Configuration file created at: %s\n", emoji.GetEmoji("success"), outputPath)
			if minimal {
				fmt.Fprintf(out, "%s Created minimal configuration with essential settings\n", emoji.GetEmoji("document"))
			} else {
				fmt.Fprintf(out, "%s Created full configuration with all options and documentation\n", emoji.GetEmoji("document"))
			}

			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path for config file (default: .prdcheck.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "create minimal configuration")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the current effective configuration after loading from all sources.
		
Shows the merged configuration from all sources including defaults,
config files, and PRDCHECK_* environment variable overrides.`,
		Example: `  # Show config in YAML format
  prdcheck config show

  # Show config in JSON format
  prdcheck config show --format json

  # Show config from specific file
  prdcheck config show --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config to YAML: %w", err)
				}
				fmt.Fprint(out, string(data))
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}

			return nil
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")

	return showCmd
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate a PRDCheck configuration file for syntax and semantic errors.
		
Checks the configuration file for:
- Valid YAML syntax
- Non-negative analysis delay and upload size limit
- A progress interval and step that can reach 100%
- A known analysis provider, and a fixture path when it is "fixture"
- Known report formats, color modes and themes`,
		Example: `  # Validate current config
  prdcheck config validate

  # Validate specific config file  
  prdcheck config validate --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration
			out := cmd.OutOrStdout()
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				fmt.Fprintf(out, "%s Configuration validation failed:\n", emoji.GetEmoji("error"))
				fmt.Fprintf(out, "   %v\n", err)
				return err
			}

			// If we get here, validation passed
			fmt.Fprintf(out, "%s Configuration is valid\n", emoji.GetEmoji("success"))

			// Show some basic info about the config
			fmt.Fprintf(out, "%s Configuration summary:\n", emoji.GetEmoji("statistics"))
			fmt.Fprintf(out, "   Version: %s\n", cfg.Version)
			fmt.Fprintf(out, "   Analysis Provider: %s\n", cfg.Analysis.Provider)
			fmt.Fprintf(out, "   Analysis Delay: %s\n", cfg.Workflow.AnalysisDelay)
			if cfg.Analysis.Provider == "fixture" {
				fmt.Fprintf(out, "   Fixture: %s\n", cfg.Analysis.FixturePath)
			}
			fmt.Fprintf(out, "   Report Format: %s\n", cfg.Output.DefaultFormat)
			fmt.Fprintf(out, "   Accepted Extensions: %d configured\n", len(cfg.Upload.AcceptedExtensions))
			if cfg.Upload.DropDir != "" {
				fmt.Fprintf(out, "   Drop Directory: %s\n", config.ExpandPath(cfg.Upload.DropDir))
			}

			return nil
		},
	}

	return validateCmd
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand() *cobra.Command {
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long: `Display the list of paths PRDCheck searches for configuration files.
		
Shows the search order and indicates which files exist.`,
		Example: `  # Show config search paths
  prdcheck config path`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Configuration file search paths (in priority order):\n", emoji.GetEmoji("folder"))
			fmt.Fprintln(out)

			paths := config.GetConfigPaths()
			for i, path := range paths {
				priority := []string{"Highest", "Medium", "Lowest"}
				exists := ""
				if fileExists(path) {
					exists = " " + emoji.GetEmoji("success") + " (exists)"
				} else {
					exists = " " + emoji.GetEmoji("error") + " (not found)"
				}

				fmt.Fprintf(out, "  %d. %s%s\n", i+1, path, exists)
				if i < len(priority) {
					fmt.Fprintf(out, "     Priority: %s\n", priority[i])
				}
				fmt.Fprintln(out)
			}

			// Show current config file being used
			if currentConfig, found := config.FindConfigFile(); found {
				fmt.Fprintf(out, "%s Current config file: %s\n", emoji.GetEmoji("target"), currentConfig)
			} else {
				fmt.Fprintf(out, "%s No config file found, using defaults\n", emoji.GetEmoji("document"))
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s Environment variables with %s prefix will override file settings (e.g. %sWORKFLOW_ANALYSIS_DELAY=1s)\n", emoji.GetEmoji("help"), config.EnvPrefix, config.EnvPrefix)
		},
	}

	return pathCmd
}

// Helper function to check if file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
