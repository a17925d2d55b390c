package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/yildizm/PRDCheck/internal/config"
	"github.com/yildizm/PRDCheck/internal/emoji"
	"github.com/yildizm/PRDCheck/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	themeName string
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prdcheck",
		Short: "PRD compliance analysis in the terminal",
		Long: `PRDCheck reviews a product requirements document against banking
regulations and presents a compliance official's report.

Drop or pick a PRD, start the analysis and watch it move through document
processing, regulation mapping, compliance assessment, risk evaluation and
report generation. Without arguments the interactive terminal UI starts.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
		},
		RunE:         runAnalyze,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "report format for headless runs (text, json, markdown, csv)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", fmt.Sprintf("UI theme (%s)", joinNames(ui.GetAvailableThemes())))

	// The bare command behaves like analyze
	addAnalyzeFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, versionString(version, commit, date))
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func versionString(version, commit, date string) string {
	displayVersion := version
	displayCommit := commit
	displayDate := date

	if version == "dev" || version == "" {
		displayVersion = "development"
	}
	if commit == "none" || commit == "" {
		displayCommit = "local-build"
	}
	if date == "unknown" || date == "" {
		displayDate = "local-build"
	}

	return fmt.Sprintf("PRDCheck %s (%s) built on %s", displayVersion, displayCommit, displayDate)
}

// loadConfig loads the layered configuration and applies global flags
// on top of it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.ColorMode = "never"
	}
	if flagChanged(cmd, "output") {
		cfg.Output.DefaultFormat = outputFmt
	}
	if flagChanged(cmd, "theme") {
		cfg.Output.Theme = themeName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDisplaySettings selects the theme and color profile for this run
func applyDisplaySettings(cfg *config.Config) error {
	if !ui.SetThemeByName(cfg.Output.Theme) {
		return fmt.Errorf("unknown theme: %s (available: %s)", cfg.Output.Theme, joinNames(ui.GetAvailableThemes()))
	}

	switch cfg.Output.ColorMode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		if lipgloss.ColorProfile() == termenv.Ascii {
			lipgloss.SetColorProfile(termenv.ANSI256)
		}
	default:
		if ui.IsColorDisabled() {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	}
	return nil
}

// colorEnabled reports whether rendered output may carry ANSI colors
func colorEnabled() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

// Global helpers
func isVerbose() bool {
	return verbose
}
