package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/jumpback/internal/history"
	"github.com/interpretive-systems/jumpback/internal/session"
	"github.com/interpretive-systems/jumpback/internal/theme"
)

// RecordList renders the jump list pane from a session snapshot. The
// session owns selection and the visible window; this component only
// formats rows.
type RecordList struct {
	theme theme.Theme
}

// NewRecordList creates a record list renderer.
func NewRecordList(t theme.Theme) *RecordList {
	return &RecordList{theme: t}
}

// Render formats the visible window into lines of the given width.
func (l *RecordList) Render(snap session.Snapshot, width, height int) []string {
	lines := make([]string, 0, height)
	if len(snap.Items) == 0 {
		lines = append(lines, lipgloss.NewStyle().Faint(true).Render("No jumps to show"))
		return lines
	}

	from, to := snap.VisibleFrom, snap.VisibleTo
	if from < 1 {
		from = 1
	}
	if to > len(snap.Items) {
		to = len(snap.Items)
	}
	for i := from; i <= to; i++ {
		lines = append(lines, l.renderRow(snap.Items[i-1], i == snap.SelectedIndex, width))
		if len(lines) >= height {
			break
		}
	}
	return lines
}

func (l *RecordList) renderRow(r history.Record, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = "> "
	}

	offset := fmt.Sprintf("%+3d", r.Offset)
	if r.IsCurrent {
		offset = "  ●"
	}

	tag := " "
	if r.Hidden {
		tag = "H"
	}

	location := fmt.Sprintf("%s:%d:%d", r.Path, r.Line, r.Col)
	line := fmt.Sprintf("%s%s %s %s", marker, offset, tag, location)
	line = truncateRow(line, width)

	switch {
	case selected:
		return l.theme.SelectedText(line)
	case r.Hidden:
		return l.theme.HiddenText(line)
	case r.IsCurrent:
		return l.theme.CurrentText(line)
	default:
		return line
	}
}

// StatusLabel summarizes a record for the top bar.
func StatusLabel(r *history.Record) string {
	if r == nil {
		return ""
	}
	var tags []string
	if r.IsCurrent {
		tags = append(tags, "current")
	}
	if r.Hidden {
		tags = append(tags, "hidden")
	}
	loc := fmt.Sprintf("%s:%d:%d", r.Path, r.Line, r.Col)
	if len(tags) == 0 {
		return loc
	}
	return fmt.Sprintf("%s (%s)", loc, strings.Join(tags, ","))
}

func truncateRow(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
