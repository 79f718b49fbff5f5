// Package theme holds the color scheme used by the TUI surfaces.
package theme

import (
	"encoding/json"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines customizable colors for rendering.
type Theme struct {
	SelectedColor string `json:"selectedColor"`
	CurrentColor  string `json:"currentColor"`
	HiddenColor   string `json:"hiddenColor"`
	OffsetColor   string `json:"offsetColor"`
	DividerColor  string `json:"dividerColor"`
	ErrorColor    string `json:"errorColor"`
}

// DefaultTheme returns the dark default.
func DefaultTheme() Theme {
	return Theme{
		SelectedColor: "212",
		CurrentColor:  "34",
		HiddenColor:   "240",
		OffsetColor:   "63",
		DividerColor:  "240",
		ErrorColor:    "196",
	}
}

// LoadTheme merges a JSON theme file over the default, keeping
// defaults for empty fields. A missing or malformed file yields the
// default.
func LoadTheme(path string) Theme {
	t := DefaultTheme()
	if path == "" {
		return t
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return t
	}
	var u Theme
	if err := json.Unmarshal(b, &u); err != nil {
		return t
	}
	if u.SelectedColor != "" {
		t.SelectedColor = u.SelectedColor
	}
	if u.CurrentColor != "" {
		t.CurrentColor = u.CurrentColor
	}
	if u.HiddenColor != "" {
		t.HiddenColor = u.HiddenColor
	}
	if u.OffsetColor != "" {
		t.OffsetColor = u.OffsetColor
	}
	if u.DividerColor != "" {
		t.DividerColor = u.DividerColor
	}
	if u.ErrorColor != "" {
		t.ErrorColor = u.ErrorColor
	}
	return t
}

// SelectedText styles the selected row.
func (t Theme) SelectedText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.SelectedColor)).Bold(true).Render(s)
}

// CurrentText styles the offset-0 row marker.
func (t Theme) CurrentText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.CurrentColor)).Render(s)
}

// HiddenText dims rows the user has hidden.
func (t Theme) HiddenText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.HiddenColor)).Faint(true).Render(s)
}

// OffsetText styles the signed offset column.
func (t Theme) OffsetText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.OffsetColor)).Render(s)
}

// DividerText styles frame lines and separators.
func (t Theme) DividerText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.DividerColor)).Render(s)
}

// ErrorText styles failure notices.
func (t Theme) ErrorText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.ErrorColor)).Render(s)
}
