package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/jumpback/internal/theme"
)

// Layout manages screen layout calculations.
type Layout struct {
	width     int
	height    int
	leftWidth int
}

// NewLayout creates a new layout manager.
func NewLayout() *Layout {
	return &Layout{}
}

// SetSize updates the layout dimensions.
func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
	if l.leftWidth == 0 {
		l.leftWidth = width / 3
	}
}

// Width returns the total width.
func (l *Layout) Width() int {
	return l.width
}

// LeftWidth returns the list pane width in split mode.
func (l *Layout) LeftWidth() int {
	if l.leftWidth < 24 {
		return 24
	}
	return l.leftWidth
}

// RightWidth returns the preview pane width in split mode.
func (l *Layout) RightWidth() int {
	rightW := l.width - l.LeftWidth() - 1 // 1 for divider
	if rightW < 1 {
		rightW = 1
	}
	return rightW
}

// ContentHeight returns the rows available for content after the top
// bar, the rules, the bottom bar, and any overlay.
func (l *Layout) ContentHeight(overlayHeight int) int {
	h := l.height - 4 - overlayHeight
	if h < 1 {
		h = 1
	}
	return h
}

// AdjustLeftWidth adjusts the list pane width by delta.
func (l *Layout) AdjustLeftWidth(delta int) {
	newWidth := l.leftWidth + delta
	if newWidth < 24 {
		newWidth = 24
	}
	maxLeft := l.width - 20
	if maxLeft < 24 {
		maxLeft = 24
	}
	if newWidth > maxLeft {
		newWidth = maxLeft
	}
	l.leftWidth = newWidth
}

// RenderFrame renders the top bar, rules, content (one column, or two
// when rightLines is non-nil), overlay, and bottom bar.
func (l *Layout) RenderFrame(
	topLeft, topRight string,
	leftLines, rightLines []string,
	overlayLines []string,
	bottomBar string,
	t theme.Theme,
) string {
	var b strings.Builder

	b.WriteString(l.renderTopBar(topLeft, topRight))
	b.WriteByte('\n')
	b.WriteString(t.DividerText(strings.Repeat("─", l.width)))
	b.WriteByte('\n')

	contentHeight := l.ContentHeight(len(overlayLines))
	split := rightLines != nil
	leftW := l.width
	if split {
		leftW = l.LeftWidth()
	}
	sep := t.DividerText("│")
	rightW := l.RightWidth()

	for i := 0; i < contentHeight; i++ {
		var left string
		if i < len(leftLines) {
			left = padToWidth(leftLines[i], leftW)
		} else {
			left = strings.Repeat(" ", leftW)
		}
		b.WriteString(left)
		if split {
			var right string
			if i < len(rightLines) {
				right = rightLines[i]
			}
			b.WriteString(sep)
			b.WriteString(padToWidth(right, rightW))
		}
		b.WriteByte('\n')
	}

	for _, line := range overlayLines {
		b.WriteString(padToWidth(line, l.width))
		b.WriteByte('\n')
	}

	b.WriteString(t.DividerText(strings.Repeat("─", l.width)))
	b.WriteByte('\n')
	b.WriteString(bottomBar)
	return b.String()
}

func (l *Layout) renderTopBar(left, right string) string {
	rightW := lipgloss.Width(right)
	if rightW >= l.width {
		return ansi.Truncate(right, l.width, "…")
	}
	avail := l.width - rightW - 1
	if lipgloss.Width(left) > avail {
		left = ansi.Truncate(left, avail, "…")
	} else if lipgloss.Width(left) < avail {
		left = left + strings.Repeat(" ", avail-lipgloss.Width(left))
	}
	return left + " " + right
}

func padToWidth(s string, w int) string {
	width := lipgloss.Width(s)
	if width == w {
		return s
	}
	if width < w {
		return s + strings.Repeat(" ", w-width)
	}
	return ansi.Truncate(s, w, "…")
}
