package tui

import "github.com/interpretive-systems/jumpback/internal/history"

// tickMsg drives the periodic refresh and the liveness probe.
type tickMsg struct{}

// countTimeoutMsg fires when the pending count expires. gen stamps the
// generation the timer was armed with; stale generations are ignored.
type countTimeoutMsg struct {
	gen int
}

// historyMsg carries a reloaded record list.
type historyMsg struct {
	records []history.Record
	err     error
}

// previewMsg carries the file content for the preview pane.
type previewMsg struct {
	path  string
	line  int
	lines []string
	err   error
}
