// Package workflow drives the upload -> analyzing -> results flow of a
// single compliance review. The controller is a synchronous state
// machine; timing is left to the caller, which calls Complete once its
// analysis delay has elapsed.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/yildizm/PRDCheck/internal/compliance"
	"github.com/yildizm/PRDCheck/internal/logger"
)

var (
	// ErrNoDocument is returned by Start when no file is attached
	ErrNoDocument = errors.New("no document attached")

	// ErrInvalidTransition is returned for events the current state does not accept
	ErrInvalidTransition = errors.New("invalid workflow transition")
)

// Notice messages
const (
	MsgNoDocument       = "Please upload a document first"
	MsgAnalysisComplete = "Compliance analysis completed"
	MsgAnalysisFailed   = "Compliance analysis failed"
)

// UploadedMessage is the success notice for an attached document
func UploadedMessage(name string) string {
	return fmt.Sprintf("Document %q uploaded successfully", name)
}

// Controller owns the workflow state, the attached file and the result.
// It is not safe for concurrent use; the UI event loop owns it.
type Controller struct {
	state    State
	file     *compliance.UploadedFile
	result   *compliance.AnalysisResult
	run      int
	provider compliance.Provider
	notifier Notifier
	log      *logger.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithNotifier sets where notices go
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the controller logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l.WithComponent("workflow")
		}
	}
}

// NewController creates a controller in the upload state
func NewController(provider compliance.Provider, opts ...Option) *Controller {
	if provider == nil {
		provider = compliance.NewMockProvider(nil)
	}
	c := &Controller{
		state:    StateUpload,
		provider: provider,
		notifier: discardNotifier{},
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the active state
func (c *Controller) State() State {
	return c.state
}

// File returns the attached file, if any
func (c *Controller) File() (compliance.UploadedFile, bool) {
	if c.file == nil {
		return compliance.UploadedFile{}, false
	}
	return *c.file, true
}

// Result returns a copy of the finished result; nil unless in results
func (c *Controller) Result() *compliance.AnalysisResult {
	return c.result.Clone()
}

// Run returns the number of the current (or last) analysis run. Drivers
// tag their timers with it and drop callbacks from older runs.
func (c *Controller) Run() int {
	return c.run
}

// Provider returns the analysis provider
func (c *Controller) Provider() compliance.Provider {
	return c.provider
}

// Attach sets the document to analyze. It replaces any earlier file and
// keeps the workflow in the upload state.
func (c *Controller) Attach(file compliance.UploadedFile) error {
	if err := c.expect(StateUpload, "attach"); err != nil {
		return err
	}

	c.file = &file
	c.log.DebugWithFields("document attached", []logger.Field{
		logger.F("name", file.Name),
		logger.F("size", file.Size),
	})
	c.notify(NoticeSuccess, UploadedMessage(file.Name))
	return nil
}

// Remove detaches the current document
func (c *Controller) Remove() error {
	if err := c.expect(StateUpload, "remove"); err != nil {
		return err
	}
	if c.file != nil {
		c.log.Debug("document removed: %s", c.file.Name)
	}
	c.file = nil
	return nil
}

// Start moves to the analyzing state. Without an attached document it
// stays in upload, emits an error notice and returns ErrNoDocument.
func (c *Controller) Start() error {
	if err := c.expect(StateUpload, "start"); err != nil {
		return err
	}
	if c.file == nil {
		c.notify(NoticeError, MsgNoDocument)
		return ErrNoDocument
	}

	c.run++
	c.result = nil
	c.transition(StateAnalyzing)
	c.log.InfoWithFields("analysis started", []logger.Field{
		logger.F("run", c.run),
		logger.F("document", c.file.Name),
		logger.F("provider", c.provider.Name()),
	})
	return nil
}

// Complete asks the provider for the result and moves to results. With
// the mock provider this cannot fail. If another provider fails, the
// workflow falls back to upload with the file still attached.
func (c *Controller) Complete(ctx context.Context) error {
	if err := c.expect(StateAnalyzing, "complete"); err != nil {
		return err
	}

	result, err := c.provider.Analyze(ctx, *c.file)
	if err == nil && result == nil {
		err = compliance.NewProviderError(c.provider.Name(), "provider returned no result", nil)
	}
	if err == nil {
		if verr := result.Validate(); verr != nil {
			err = compliance.NewProviderError(c.provider.Name(), "provider returned an invalid result", verr)
		}
	}
	if err != nil {
		c.log.WarnWithFields("analysis failed", []logger.Field{logger.F("run", c.run), logger.Error(err)})
		c.transition(StateUpload)
		c.notify(NoticeError, MsgAnalysisFailed)
		return fmt.Errorf("analysis run %d: %w", c.run, err)
	}

	c.result = result.Clone()
	c.transition(StateResults)
	c.log.InfoWithFields("analysis completed", []logger.Field{
		logger.F("run", c.run),
		logger.F("result_id", result.ID),
		logger.F("score", result.ComplianceScore),
	})
	c.notify(NoticeSuccess, MsgAnalysisComplete)
	return nil
}

// Reset returns from results to upload, clearing the file and result
func (c *Controller) Reset() error {
	if err := c.expect(StateResults, "reset"); err != nil {
		return err
	}
	c.file = nil
	c.result = nil
	c.transition(StateUpload)
	return nil
}

func (c *Controller) expect(want State, event string) error {
	if c.state != want {
		return fmt.Errorf("%w: cannot %s in %s state (requires %s)", ErrInvalidTransition, event, c.state, want)
	}
	return nil
}

func (c *Controller) transition(to State) {
	c.log.DebugWithFields("state change", []logger.Field{logger.State(c.state, to)})
	c.state = to
}

func (c *Controller) notify(level NoticeLevel, msg string) {
	c.notifier.Notify(Notice{Level: level, Message: msg})
}
