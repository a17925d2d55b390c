package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type staticChecker bool

func (s staticChecker) IsVerbose() bool { return bool(s) }

func TestVerboseGating(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "quiet", verbose: false, wantDebug: false},
		{name: "verbose", verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter("workflow", staticChecker(tt.verbose), &buf)

			log.Debug("debug line")
			log.Info("info line")
			log.Warn("warn line")

			out := buf.String()
			if strings.Contains(out, "debug line") != tt.wantDebug {
				t.Errorf("debug visibility = %v, want %v", strings.Contains(out, "debug line"), tt.wantDebug)
			}
			if strings.Contains(out, "info line") != tt.wantDebug {
				t.Errorf("info visibility = %v, want %v", strings.Contains(out, "info line"), tt.wantDebug)
			}
			if !strings.Contains(out, "WARN [workflow] warn line") {
				t.Errorf("warn line missing: %q", out)
			}
		})
	}
}

func TestFieldsAndComponent(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("", staticChecker(true), &buf)
	log := base.WithComponent("upload")

	log.DebugWithFields("accepted %s", []Field{F("size", 42), Error(errors.New("boom"))}, "spec.pdf")

	out := buf.String()
	if !strings.Contains(out, "DEBUG [upload] accepted spec.pdf [size=42 error=boom]") {
		t.Errorf("unexpected line: %q", out)
	}

	buf.Reset()
	base.Error("plain")
	if !strings.Contains(buf.String(), "ERROR [main] plain") {
		t.Errorf("expected default component main, got %q", buf.String())
	}
}

func TestSetOutputShared(t *testing.T) {
	var first, second bytes.Buffer
	base := NewWithWriter("cli", nil, &first)
	child := base.WithComponent("ui")

	base.SetOutput(&second)
	child.Warn("moved")

	if first.Len() != 0 {
		t.Errorf("expected nothing on the old writer, got %q", first.String())
	}
	if !strings.Contains(second.String(), "moved") {
		t.Errorf("expected child logger to follow SetOutput, got %q", second.String())
	}
}

func TestMessageWithoutArgsKeepsPercent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("x", nil, &buf)
	log.Warn("100% complete")
	if !strings.Contains(buf.String(), "100% complete") {
		t.Errorf("unexpected line: %q", buf.String())
	}
}
