package tui

import (
	"bufio"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/jumpback/internal/history"
)

// previewMaxLines caps how much of a file the preview will read.
const previewMaxLines = 2000

// loadHistory reloads records through the injected loader.
func loadHistory(load func() ([]history.Record, error)) tea.Cmd {
	return func() tea.Msg {
		records, err := load()
		return historyMsg{records: records, err: err}
	}
}

// loadPreview reads the file backing a record for the preview pane.
func loadPreview(path string, line int) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return previewMsg{path: path, line: line, err: err}
		}
		defer f.Close()

		var lines []string
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() && len(lines) < previewMaxLines {
			lines = append(lines, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return previewMsg{path: path, line: line, err: err}
		}
		return previewMsg{path: path, line: line, lines: lines}
	}
}

// tickOnce schedules the next refresh/liveness tick.
func tickOnce() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// countTick arms the count expiry timer for the given generation.
func countTick(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return countTimeoutMsg{gen: gen}
	})
}
