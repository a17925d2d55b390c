// Package upload accepts documents from drop and picker gestures and
// hands the first one to the workflow.
package upload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yildizm/PRDCheck/internal/compliance"
	"github.com/yildizm/PRDCheck/internal/logger"
)

// Source identifies the gesture a file arrived through
type Source string

const (
	SourceDrop   Source = "drop"
	SourcePicker Source = "picker"
)

// Attacher receives the accepted file; workflow.Controller implements it
type Attacher interface {
	Attach(file compliance.UploadedFile) error
}

// Acceptor turns a list of paths into an attached document
type Acceptor struct {
	target Attacher
	stat   func(string) (os.FileInfo, error)
	log    *logger.Logger
}

// NewAcceptor creates an acceptor forwarding to target
func NewAcceptor(target Attacher, log *logger.Logger) *Acceptor {
	if log == nil {
		log = logger.Nop()
	}
	return &Acceptor{
		target: target,
		stat:   os.Stat,
		log:    log.WithComponent("upload"),
	}
}

// AcceptDrop handles files dropped onto the terminal or the drop zone
func (a *Acceptor) AcceptDrop(paths []string) (compliance.UploadedFile, bool, error) {
	return a.accept(SourceDrop, paths)
}

// AcceptPicker handles files chosen through the picker prompt
func (a *Acceptor) AcceptPicker(paths []string) (compliance.UploadedFile, bool, error) {
	return a.accept(SourcePicker, paths)
}

// accept uses only the first path. An empty list, or a first entry that
// is not a readable regular file, counts as no file at all: nothing is
// attached and ok is false. err is only set when the target rejects the
// file.
func (a *Acceptor) accept(source Source, paths []string) (file compliance.UploadedFile, ok bool, err error) {
	if len(paths) == 0 {
		return compliance.UploadedFile{}, false, nil
	}
	if len(paths) > 1 {
		a.log.Debug("%d files received via %s, using the first", len(paths), source)
	}

	file, ok = a.describe(paths[0])
	if !ok {
		return compliance.UploadedFile{}, false, nil
	}

	if err := a.target.Attach(file); err != nil {
		return compliance.UploadedFile{}, false, fmt.Errorf("attach %s: %w", file.Name, err)
	}

	a.log.DebugWithFields("document accepted", []logger.Field{
		logger.F("source", source),
		logger.F("name", file.Name),
		logger.F("size", file.Size),
	})
	return file, true, nil
}

// describe resolves a path to the name and size of a regular file
func (a *Acceptor) describe(path string) (compliance.UploadedFile, bool) {
	if path == "" {
		return compliance.UploadedFile{}, false
	}
	clean := filepath.Clean(path)

	info, err := a.stat(clean)
	if err != nil {
		a.log.WarnWithFields("ignoring unreadable file", []logger.Field{logger.F("path", clean), logger.Error(err)})
		return compliance.UploadedFile{}, false
	}
	if info.IsDir() {
		a.log.Warn("ignoring directory %s", clean)
		return compliance.UploadedFile{}, false
	}

	return compliance.UploadedFile{
		Name: info.Name(),
		Size: info.Size(),
		Path: clean,
	}, true
}
