package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpBindings describes the default keys for the help overlay.
var helpBindings = []key.Binding{
	key.NewBinding(key.WithKeys("j", "k", "down", "up"), key.WithHelp("j/k", "move selection")),
	key.NewBinding(key.WithKeys("g", "G"), key.WithHelp("g/G", "top / bottom")),
	key.NewBinding(key.WithKeys("1"), key.WithHelp("1-9", "repeat count for the next move")),
	key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jump to selection")),
	key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle same-file filter")),
	key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle same-directory filter")),
	key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle hidden entries")),
	key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hide / unhide entry")),
	key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "toggle preview")),
	key.NewBinding(key.WithKeys("J", "K"), key.WithHelp("J/K", "scroll preview")),
	key.NewBinding(key.WithKeys("<", ">"), key.WithHelp("</>", "resize split")),
	key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "jump to offset")),
	key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh now")),
	key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "cancel")),
}

// helpOverlayLines returns the bottom overlay lines for the help view.
func helpOverlayLines(width int) []string {
	lines := make([]string, 0, len(helpBindings)+2)
	lines = append(lines, strings.Repeat("─", width))
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Help (press '?' or Esc to close)"))
	for _, b := range helpBindings {
		h := b.Help()
		lines = append(lines, "  "+padHelpKey(h.Key)+h.Desc)
	}
	return lines
}

func padHelpKey(k string) string {
	const col = 10
	if len(k) >= col {
		return k + " "
	}
	return k + strings.Repeat(" ", col-len(k))
}
