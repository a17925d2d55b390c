package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yildizm/PRDCheck/internal/compliance"
	"github.com/yildizm/PRDCheck/internal/config"
	"github.com/yildizm/PRDCheck/internal/emoji"
	"github.com/yildizm/PRDCheck/internal/formatter"
	"github.com/yildizm/PRDCheck/internal/logger"
	"github.com/yildizm/PRDCheck/internal/progress"
	"github.com/yildizm/PRDCheck/internal/ui"
	"github.com/yildizm/PRDCheck/internal/upload"
	"github.com/yildizm/PRDCheck/internal/workflow"
)

var (
	analyzeNoTUI      bool
	analyzeDropDir    string
	analyzeFixture    string
	analyzeLogFile    string
	analyzeOutputFile string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a PRD for regulatory compliance",
		Long: `Analyze a product requirements document for banking compliance.

The terminal UI walks through upload, analysis and results. A file given on
the command line is selected as if it had been picked. Files can also be
dropped onto the terminal or, with --drop-dir, copied into a watched directory.

With --no-tui the analysis runs headless: stage progress goes to stderr and
the report to stdout in the --output format.

Examples:
  prdcheck analyze
  prdcheck analyze ./wallet-prd.pdf
  prdcheck analyze --drop-dir ~/Downloads/prds
  prdcheck analyze --no-tui -o json ./wallet-prd.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	addAnalyzeFlags(cmd)
	return cmd
}

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&analyzeNoTUI, "no-tui", false, "disable terminal UI, print the report to stdout")
	cmd.Flags().StringVar(&analyzeDropDir, "drop-dir", "", "watch a directory for dropped documents")
	cmd.Flags().StringVar(&analyzeFixture, "fixture", "", "serve the analysis result from a JSON fixture")
	cmd.Flags().StringVar(&analyzeLogFile, "log-file", "", "write logs to a file while the terminal UI runs")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save the headless report to a file instead of stdout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyAnalyzeFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := applyDisplaySettings(cfg); err != nil {
		return err
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	log := logger.NewWithWriter("cli", verboseFlag(cfg), cmd.ErrOrStderr())

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	if analyzeNoTUI {
		return runHeadless(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, provider, log, path)
	}
	return runTUI(ctx, cfg, provider, log, path)
}

// applyAnalyzeFlags lets explicit analyze flags win over the config file
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) {
	if flagChanged(cmd, "drop-dir") {
		cfg.Upload.DropDir = analyzeDropDir
	}
	if flagChanged(cmd, "fixture") {
		cfg.Analysis.Provider = compliance.ProviderFixture
		cfg.Analysis.FixturePath = analyzeFixture
	}
}

func newProvider(cfg *config.Config) (compliance.Provider, error) {
	provider, err := compliance.NewProvider(compliance.ProviderOptions{
		Name:        cfg.Analysis.Provider,
		FixturePath: cfg.Analysis.FixturePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis provider: %w", err)
	}
	return provider, nil
}

func uploadRules(cfg *config.Config) upload.Rules {
	return upload.Rules{
		Extensions: cfg.Upload.AcceptedExtensions,
		MaxSize:    cfg.Upload.MaxSizeBytes,
	}
}

// runTUI starts the interactive workflow. Logs must stay off the
// alternate screen, so they go to --log-file or nowhere.
func runTUI(ctx context.Context, cfg *config.Config, provider compliance.Provider, log *logger.Logger, path string) error {
	logOut, closeLog, err := openLogOutput(analyzeLogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	log.SetOutput(logOut)

	opts := ui.Options{
		Context:     ctx,
		Provider:    provider,
		Logger:      log,
		Stages:      progress.DefaultStages,
		Step:        cfg.Progress.Step,
		Interval:    cfg.Progress.Interval,
		Delay:       cfg.Workflow.AnalysisDelay,
		Rules:       uploadRules(cfg),
		InitialPath: path,
		DateFormat:  cfg.Output.DateFormat,
		Framework:   cfg.Analysis.Framework,
		Engine:      cfg.Analysis.Engine,
	}

	if cfg.Upload.DropDir != "" {
		zone, err := upload.WatchDropZone(ctx, config.ExpandPath(cfg.Upload.DropDir), log)
		if err != nil {
			return fmt.Errorf("failed to watch drop directory: %w", err)
		}
		defer func() {
			if err := zone.Close(); err != nil {
				log.Warn("failed to stop drop zone: %v", err)
			}
		}()
		opts.DropEvents = zone.Events()
		opts.DropDir = zone.Dir()
	}

	model := ui.NewModel(opts)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// runHeadless drives the same workflow without a terminal UI. The
// progress simulator runs on a ticker until the analysis delay has
// passed, then the report is printed.
func runHeadless(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config, provider compliance.Provider, log *logger.Logger, path string) error {
	if path == "" {
		return fmt.Errorf("headless mode requires a document path")
	}

	notices := &workflow.NoticeRecorder{}
	controller := workflow.NewController(provider,
		workflow.WithNotifier(notices),
		workflow.WithLogger(log),
	)
	acceptor := upload.NewAcceptor(controller, log)

	file, ok, err := acceptor.AcceptPicker([]string{config.ExpandPath(path)})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("document not found: %s", path)
	}
	for _, note := range upload.Advisories(file, uploadRules(cfg)) {
		fmt.Fprintf(stderr, "%s %s\n", emoji.GetEmoji("warning"), note)
	}

	if err := controller.Start(); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "%s Analyzing Document: %s\n", emoji.GetEmoji("search"), file.Name)

	if err := simulate(ctx, stderr, cfg); err != nil {
		return err
	}

	if err := controller.Complete(ctx); err != nil {
		return err
	}
	if n, ok := notices.Last(); ok {
		fmt.Fprintf(stderr, "%s %s\n", emoji.GetEmoji(string(n.Level)), n.Message)
	}

	f, err := formatter.New(cfg.Output.DefaultFormat, formatter.Options{
		Color:      colorEnabled(),
		DateFormat: cfg.Output.DateFormat,
		Framework:  cfg.Analysis.Framework,
		Engine:     cfg.Analysis.Engine,
	})
	if err != nil {
		return err
	}
	output, err := f.Format(controller.Result())
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	return handleOutputDestination(stdout, output)
}

// simulate advances the progress simulator until the analysis delay has
// elapsed, reporting each stage change on w
func simulate(ctx context.Context, w io.Writer, cfg *config.Config) error {
	sim := progress.New(progress.DefaultStages, cfg.Progress.Step)
	stages := sim.Stages()
	delay := cfg.Workflow.AnalysisDelay
	start := time.Now()

	current := -1
	report := func(snap progress.Snapshot) {
		if snap.Current == current {
			return
		}
		current = snap.Current
		if current >= 0 {
			stage := stages[current]
			fmt.Fprintf(w, "[%3d%%] %s %s\n", snap.Percent, emoji.GetEmoji(stage.Icon), stage.Name)
		}
	}
	report(sim.Snapshot())

	deadline := time.NewTimer(delay)
	defer deadline.Stop()

	if err := progress.Drive(ctx, sim, cfg.Progress.Interval, deadline.C, report); err != nil {
		return err
	}

	// the counter can finish before the delay does
	if remaining := delay - time.Since(start); remaining > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(remaining):
		}
	}

	fmt.Fprintf(w, "[%3d%%] %s Analysis complete\n", sim.Percent(), emoji.GetEmoji("success"))
	return nil
}

// openLogOutput opens the TUI log destination. An empty path discards logs.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}

	cleanPath := filepath.Clean(config.ExpandPath(path))
	// #nosec G304 - user supplied log destination
	file, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

func handleOutputDestination(stdout io.Writer, output []byte) error {
	if analyzeOutputFile != "" {
		if err := validateOutputFilePath(analyzeOutputFile); err != nil {
			return fmt.Errorf("invalid output file path: %w", err)
		}

		if err := writeOutputBytesToFile(output, analyzeOutputFile); err != nil {
			return fmt.Errorf("failed to write output to file: %w", err)
		}

		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Output saved to: %s\n", analyzeOutputFile)
		}
		return nil
	}

	_, err := stdout.Write(output)
	return err
}

func validateOutputFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}
	info, err := os.Stat(filepath.Clean(path))
	if err == nil && info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	// #nosec G304 - path is validated by validateOutputFilePath
	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	// Sync to ensure data is written
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}

// verboseFlag adapts the loaded configuration to the logger's verbose check
func verboseFlag(cfg *config.Config) logger.VerboseChecker {
	return verboseConfig{cfg}
}

type verboseConfig struct {
	cfg *config.Config
}

func (v verboseConfig) IsVerbose() bool {
	return v.cfg.Output.Verbose
}
