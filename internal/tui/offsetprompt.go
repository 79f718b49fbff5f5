package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OffsetPrompt is a one-line overlay for requesting an explicit signed
// offset, resolved through the same matching as the session start.
type OffsetPrompt struct {
	input  textinput.Model
	active bool
	errMsg string
}

// NewOffsetPrompt creates the prompt.
func NewOffsetPrompt() *OffsetPrompt {
	ti := textinput.New()
	ti.Placeholder = "signed offset, e.g. -3"
	ti.Prompt = ": "
	ti.CharLimit = 8
	return &OffsetPrompt{input: ti}
}

// Active reports whether the prompt owns the keyboard.
func (p *OffsetPrompt) Active() bool {
	return p.active
}

// Activate opens the prompt.
func (p *OffsetPrompt) Activate() {
	p.active = true
	p.errMsg = ""
	p.input.SetValue("")
	p.input.Focus()
}

// Deactivate closes the prompt.
func (p *OffsetPrompt) Deactivate() {
	p.active = false
	p.input.Blur()
}

// HandleKey processes a keystroke while the prompt is open. When the
// user submits a valid offset, ok is true and target carries it.
func (p *OffsetPrompt) HandleKey(msg tea.KeyMsg) (target int, ok bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.Deactivate()
		return 0, false, nil
	case "enter":
		raw := strings.TrimSpace(p.input.Value())
		n, err := strconv.Atoi(raw)
		if err != nil {
			p.errMsg = "not an integer: " + raw
			return 0, false, nil
		}
		p.Deactivate()
		return n, true, nil
	}
	var c tea.Cmd
	p.input, c = p.input.Update(msg)
	return 0, false, c
}

// OverlayLines renders the prompt overlay.
func (p *OffsetPrompt) OverlayLines(width int) []string {
	if !p.active {
		return nil
	}
	lines := make([]string, 0, 3)
	lines = append(lines, strings.Repeat("─", width))
	lines = append(lines, p.input.View())
	status := "Negative jumps back, positive forward (enter: go, esc: close)"
	if p.errMsg != "" {
		status = p.errMsg
	}
	lines = append(lines, lipgloss.NewStyle().Faint(true).Render(status))
	return lines
}
