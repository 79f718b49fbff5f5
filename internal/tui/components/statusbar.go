package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/jumpback/internal/session"
	"github.com/interpretive-systems/jumpback/internal/theme"
)

// StatusBar manages the bottom status bar.
type StatusBar struct {
	theme       theme.Theme
	lastRefresh time.Time
	errText     string
}

// NewStatusBar creates a new status bar.
func NewStatusBar(t theme.Theme) *StatusBar {
	return &StatusBar{theme: t}
}

// SetLastRefresh updates the refresh timestamp.
func (s *StatusBar) SetLastRefresh(t time.Time) {
	s.lastRefresh = t
}

// SetError shows a failure notice until the next successful action.
func (s *StatusBar) SetError(msg string) {
	s.errText = msg
}

// ClearError removes the failure notice.
func (s *StatusBar) ClearError() {
	s.errText = ""
}

// Render renders the status bar for the given snapshot.
func (s *StatusBar) Render(snap session.Snapshot, width int) string {
	var left string
	switch {
	case s.errText != "":
		left = s.theme.ErrorText("error: " + s.errText)
	case snap.PendingCount != "":
		left = "count: " + snap.PendingCount
	default:
		left = "?: help"
	}
	if f := filterLabel(snap); f != "" {
		left += "  |  " + f
	}

	leftStyled := lipgloss.NewStyle().Faint(true).Render(left)

	pos := "–"
	if snap.SelectedIndex > 0 {
		pos = fmt.Sprintf("%d/%d", snap.SelectedIndex, len(snap.Items))
	}
	right := lipgloss.NewStyle().Faint(true).
		Render(fmt.Sprintf("%s  refreshed: %s", pos, s.lastRefresh.Format("15:04:05")))

	// Ensure the right part is always visible; truncate left if needed.
	rightW := lipgloss.Width(right)
	if rightW >= width {
		return ansi.Truncate(right, width, "…")
	}
	avail := width - rightW - 1
	if lipgloss.Width(leftStyled) > avail {
		leftStyled = ansi.Truncate(leftStyled, avail, "…")
	} else if lipgloss.Width(leftStyled) < avail {
		leftStyled = leftStyled + strings.Repeat(" ", avail-lipgloss.Width(leftStyled))
	}
	return leftStyled + " " + right
}

func filterLabel(snap session.Snapshot) string {
	var tags []string
	if snap.Filters.FileOnly {
		tags = append(tags, "file")
	}
	if snap.Filters.CwdOnly {
		tags = append(tags, "cwd")
	}
	if snap.Filters.ShowHidden {
		tags = append(tags, "+hidden")
	}
	if len(tags) == 0 {
		return ""
	}
	return "filters: " + strings.Join(tags, ",")
}
