package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// progressTickMsg advances the simulator for one analysis run
type progressTickMsg struct {
	run int
}

// analysisDoneMsg fires when the simulated analysis time has passed
type analysisDoneMsg struct {
	run int
}

// pickMsg carries paths chosen through the picker or the command line
type pickMsg struct {
	paths []string
}

// dropMsg carries a file that appeared in the watched drop directory
type dropMsg struct {
	path string
}

// dropClosedMsg reports that the drop directory is no longer watched
type dropClosedMsg struct{}

// noticeExpiredMsg hides the notice with the given sequence number
type noticeExpiredMsg struct {
	seq int
}

// progressTick schedules the next simulator step for run
func progressTick(run int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return progressTickMsg{run: run}
	})
}

// analysisTimer schedules completion of run after delay
func analysisTimer(run int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return analysisDoneMsg{run: run}
	})
}

// expireNotice hides notice seq after ttl
func expireNotice(seq int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// waitForDrop blocks on the drop zone channel and turns the next path into a message
func waitForDrop(events <-chan string) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-events
		if !ok {
			return dropClosedMsg{}
		}
		return dropMsg{path: path}
	}
}

// pick turns command line paths into a picker selection
func pick(paths ...string) tea.Cmd {
	return func() tea.Msg {
		return pickMsg{paths: paths}
	}
}
