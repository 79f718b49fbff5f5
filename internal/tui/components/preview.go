package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/jumpback/internal/theme"
)

// Preview shows the selected record's file content around its line in
// a scrollable viewport.
type Preview struct {
	theme   theme.Theme
	vp      viewport.Model
	loaded  bool
	path    string
	line    int
	content []string
}

// NewPreview creates a preview pane.
func NewPreview(t theme.Theme) *Preview {
	return &Preview{theme: t}
}

// SetSize updates the viewport dimensions and re-centers on the target
// line.
func (p *Preview) SetSize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
	p.refill()
}

// SetContent replaces the preview with the file's lines, centred on
// the 1-based target line.
func (p *Preview) SetContent(path string, line int, lines []string) {
	p.path = path
	p.line = line
	p.content = lines
	p.loaded = true
	p.refill()
}

// SetEmpty clears the preview, e.g. when nothing is selected.
func (p *Preview) SetEmpty() {
	p.loaded = false
	p.path = ""
	p.content = nil
	p.vp.SetContent("")
}

// ScrollDown scrolls the preview by n lines.
func (p *Preview) ScrollDown(n int) {
	p.vp.LineDown(n)
}

// ScrollUp scrolls the preview by n lines.
func (p *Preview) ScrollUp(n int) {
	p.vp.LineUp(n)
}

// Render returns the viewport lines, padded to height.
func (p *Preview) Render(height int) []string {
	if !p.loaded {
		return []string{lipgloss.NewStyle().Faint(true).Render("Loading preview…")}
	}
	view := p.vp.View()
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return lines
}

func (p *Preview) refill() {
	if !p.loaded || p.vp.Width <= 0 {
		return
	}
	rendered := make([]string, 0, len(p.content))
	numW := len(fmt.Sprintf("%d", len(p.content)))
	for i, text := range p.content {
		ln := i + 1
		prefix := fmt.Sprintf("%*d │ ", numW, ln)
		row := prefix + text
		if ln == p.line {
			row = p.theme.SelectedText(row)
		}
		rendered = append(rendered, row)
	}
	p.vp.SetContent(strings.Join(rendered, "\n"))
	p.centerOnLine()
}

// centerOnLine scrolls so the target line sits mid-viewport.
func (p *Preview) centerOnLine() {
	if p.vp.Height <= 0 {
		return
	}
	top := p.line - 1 - p.vp.Height/2
	if top < 0 {
		top = 0
	}
	p.vp.SetYOffset(top)
}
