package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/PRDCheck/internal/compliance"
	"github.com/yildizm/PRDCheck/internal/config"
	"github.com/yildizm/PRDCheck/internal/logger"
	"github.com/yildizm/PRDCheck/internal/progress"
	"github.com/yildizm/PRDCheck/internal/ui/components"
	"github.com/yildizm/PRDCheck/internal/upload"
	"github.com/yildizm/PRDCheck/internal/workflow"
)

// noticeTTL is how long a toast stays on screen
const noticeTTL = 3 * time.Second

// Options configures the TUI
type Options struct {
	Context  context.Context
	Provider compliance.Provider
	Logger   *logger.Logger

	Stages   []progress.Stage
	Step     int
	Interval time.Duration
	Delay    time.Duration

	Rules       upload.Rules
	DropEvents  <-chan string
	DropDir     string
	InitialPath string

	DateFormat string
	Framework  string
	Engine     string
}

// DefaultOptions returns options matching the default configuration
func DefaultOptions() Options {
	return Options{
		Context:  context.Background(),
		Stages:   progress.DefaultStages,
		Step:     progress.DefaultStep,
		Interval: 60 * time.Millisecond,
		Delay:    3 * time.Second,
		Rules:    upload.DefaultRules(),
	}
}

// Model is the Bubble Tea model driving the upload → analyzing → results flow
type Model struct {
	ctx        context.Context
	opts       Options
	controller *workflow.Controller
	acceptor   *upload.Acceptor
	sim        *progress.Simulator
	report     *components.ReportView
	styles     *Styles
	log        *logger.Logger

	width    int
	height   int
	ready    bool
	quitting bool

	picking     bool
	pickerInput string

	advisories  []string
	notice      *workflow.Notice
	noticeSeq   int
	noticeDirty bool

	frame int
}

// NewModel creates the TUI model. Zero-valued options fall back to defaults.
func NewModel(opts Options) *Model {
	defaults := DefaultOptions()
	if opts.Context == nil {
		opts.Context = defaults.Context
	}
	if len(opts.Stages) == 0 {
		opts.Stages = defaults.Stages
	}
	if opts.Step <= 0 {
		opts.Step = defaults.Step
	}
	if opts.Interval <= 0 {
		opts.Interval = defaults.Interval
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if len(opts.Rules.Extensions) == 0 && opts.Rules.MaxSize == 0 {
		opts.Rules = defaults.Rules
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	m := &Model{
		ctx:    opts.Context,
		opts:   opts,
		styles: GetStyles(),
		log:    opts.Logger.WithComponent("ui"),
	}
	m.controller = workflow.NewController(opts.Provider,
		workflow.WithNotifier(workflow.NotifierFunc(m.pushNotice)),
		workflow.WithLogger(opts.Logger),
	)
	m.acceptor = upload.NewAcceptor(m.controller, opts.Logger)
	return m
}

// Controller exposes the workflow for callers that inspect the final state
func (m *Model) Controller() *workflow.Controller {
	return m.controller
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.opts.DropEvents != nil {
		cmds = append(cmds, waitForDrop(m.opts.DropEvents))
	}
	if m.opts.InitialPath != "" {
		cmds = append(cmds, pick(m.opts.InitialPath))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and schedules toast expiry for new notices
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	if m.noticeDirty {
		m.noticeDirty = false
		cmd = tea.Batch(cmd, expireNotice(m.noticeSeq, noticeTTL))
	}
	return model, cmd
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case progressTickMsg:
		return m.handleProgressTick(msg)
	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)
	case pickMsg:
		return m.handlePick(msg.paths)
	case dropMsg:
		return m.handleDropZone(msg)
	case dropClosedMsg:
		m.log.Debug("drop zone closed")
		return m, nil
	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	if m.report != nil {
		m.report.SetSize(m.contentWidth(), m.reportHeight())
	}
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if m.picking {
		return m.handlePickerKey(msg)
	}

	// terminals deliver a dragged file as pasted text
	if msg.Paste {
		return m.handlePaste(string(msg.Runes))
	}

	if msg.String() == "q" {
		return m.quit()
	}

	switch m.controller.State() {
	case workflow.StateUpload:
		return m.handleUploadKey(msg)
	case workflow.StateResults:
		return m.handleResultsKey(msg)
	}
	return m, nil
}

func (m *Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "o":
		m.picking = true
		m.pickerInput = ""
	case "x", "delete":
		if err := m.controller.Remove(); err != nil {
			m.log.Debug("remove: %v", err)
		}
		m.advisories = nil
	case "enter", "s":
		return m.startAnalysis()
	}
	return m, nil
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := 0
	if m.report != nil {
		lines = m.report.LineCount()
	}

	switch msg.String() {
	case "n":
		return m.resetAnalysis()
	case "d":
		m.pushNotice(workflow.Notice{Level: workflow.NoticeInfo, Message: "Download is not available in this demo"})
	case "S":
		m.pushNotice(workflow.Notice{Level: workflow.NoticeInfo, Message: "Sharing is not available in this demo"})
	case "up", "k":
		m.scroll(-1)
	case "down", "j":
		m.scroll(1)
	case "pgup":
		m.scroll(-m.reportHeight())
	case "pgdown", " ":
		m.scroll(m.reportHeight())
	case "home", "g":
		m.scroll(-lines)
	case "end", "G":
		m.scroll(lines)
	case "tab", "]":
		if m.report != nil {
			m.report.NextSection()
		}
	case "shift+tab", "[":
		if m.report != nil {
			m.report.PreviousSection()
		}
	}
	return m, nil
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.picking = false
		m.pickerInput = ""
		return m, nil
	case tea.KeyEnter:
		input := m.pickerInput
		m.picking = false
		m.pickerInput = ""
		return m.handlePick(pickerPaths(input))
	case tea.KeyBackspace:
		if r := []rune(m.pickerInput); len(r) > 0 {
			m.pickerInput = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.pickerInput += " "
		return m, nil
	case tea.KeyRunes:
		m.pickerInput += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m *Model) handlePaste(payload string) (tea.Model, tea.Cmd) {
	if m.controller.State() != workflow.StateUpload {
		m.log.Debug("ignoring drop while %s", m.controller.State())
		return m, nil
	}
	m.accept(upload.SourceDrop, upload.ParseDropPayload(payload))
	return m, nil
}

func (m *Model) handlePick(paths []string) (tea.Model, tea.Cmd) {
	if m.controller.State() != workflow.StateUpload {
		return m, nil
	}
	m.accept(upload.SourcePicker, paths)
	return m, nil
}

func (m *Model) handleDropZone(msg dropMsg) (tea.Model, tea.Cmd) {
	if m.controller.State() == workflow.StateUpload {
		m.accept(upload.SourceDrop, []string{msg.path})
	} else {
		m.log.Debug("ignoring dropped %s while %s", msg.path, m.controller.State())
	}
	return m, waitForDrop(m.opts.DropEvents)
}

func (m *Model) accept(source upload.Source, paths []string) {
	var (
		file compliance.UploadedFile
		ok   bool
		err  error
	)
	if source == upload.SourcePicker {
		file, ok, err = m.acceptor.AcceptPicker(paths)
	} else {
		file, ok, err = m.acceptor.AcceptDrop(paths)
	}
	if err != nil {
		m.log.Warn("upload rejected: %v", err)
		return
	}
	if ok {
		m.advisories = upload.Advisories(file, m.opts.Rules)
	}
}

func (m *Model) startAnalysis() (tea.Model, tea.Cmd) {
	if err := m.controller.Start(); err != nil {
		m.log.Debug("start: %v", err)
		return m, nil
	}

	run := m.controller.Run()
	m.sim = progress.New(m.opts.Stages, m.opts.Step)
	m.frame = 0
	return m, tea.Batch(
		progressTick(run, m.opts.Interval),
		analysisTimer(run, m.opts.Delay),
	)
}

// handleProgressTick advances the simulator. A tick from another run, or
// one that arrives after the workflow left Analyzing, is dropped and not
// rearmed.
func (m *Model) handleProgressTick(msg progressTickMsg) (tea.Model, tea.Cmd) {
	if !m.currentRun(msg.run) || m.sim == nil {
		return m, nil
	}

	m.sim.Advance()
	m.frame++
	if m.sim.Done() {
		return m, nil
	}
	return m, progressTick(msg.run, m.opts.Interval)
}

func (m *Model) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	if !m.currentRun(msg.run) {
		return m, nil
	}

	if err := m.controller.Complete(m.ctx); err != nil {
		m.log.Error("analysis failed: %v", err)
		m.sim = nil
		return m, nil
	}

	m.sim = nil
	m.report = components.NewReportView(m.controller.Result(), m.contentWidth(), m.reportHeight(), m.styles.Palette())
	if m.opts.DateFormat != "" {
		m.report.SetDateFormat(m.opts.DateFormat)
	}
	return m, nil
}

func (m *Model) resetAnalysis() (tea.Model, tea.Cmd) {
	if err := m.controller.Reset(); err != nil {
		m.log.Debug("reset: %v", err)
		return m, nil
	}
	m.report = nil
	m.advisories = nil
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) currentRun(run int) bool {
	return m.controller.State() == workflow.StateAnalyzing && run == m.controller.Run()
}

func (m *Model) pushNotice(n workflow.Notice) {
	m.notice = &n
	m.noticeSeq++
	m.noticeDirty = true
}

func (m *Model) scroll(n int) {
	if m.report == nil {
		return
	}
	if n < 0 {
		m.report.ScrollUp(-n)
	} else {
		m.report.ScrollDown(n)
	}
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(20, m.width-8)
}

// reportHeight leaves room for the header, stepper and help line
func (m *Model) reportHeight() int {
	if m.height <= 0 {
		return 0
	}
	return max(5, m.height-12)
}

// pickerPaths interprets what was typed at the picker prompt. Quoted,
// escaped or file:// input is parsed like a drop; anything else is one path.
func pickerPaths(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if upload.HasDropSyntax(input) {
		return upload.ParseDropPayload(input)
	}
	return []string{config.ExpandPath(input)}
}
