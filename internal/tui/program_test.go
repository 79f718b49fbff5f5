package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/jumpback/internal/filter"
	"github.com/interpretive-systems/jumpback/internal/hidestore"
	"github.com/interpretive-systems/jumpback/internal/history"
	"github.com/interpretive-systems/jumpback/internal/session"
	"github.com/interpretive-systems/jumpback/internal/theme"
)

type memPersist struct {
	keys map[string]struct{}
}

func (m *memPersist) LoadAll() (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(m.keys))
	for k := range m.keys {
		out[k] = struct{}{}
	}
	return out, nil
}

func (m *memPersist) SaveAll(keys map[string]struct{}) error {
	m.keys = make(map[string]struct{}, len(keys))
	for k := range keys {
		m.keys[k] = struct{}{}
	}
	return nil
}

func sampleRecords() []history.Record {
	return []history.Record{
		{Path: "/proj/a.go", Line: 10, Col: 1, Offset: 2},
		{Path: "/proj/b.go", Line: 20, Col: 5, Offset: 1},
		{Path: "/proj/c.go", Line: 30, Col: 2, Offset: 0, IsCurrent: true},
		{Path: "/proj/d.go", Line: 40, Col: 3, Offset: -1},
	}
}

func baseModelForTest(t *testing.T) Program {
	t.Helper()
	store, err := hidestore.Open(&memPersist{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	km, err := session.BuildKeymap(session.DefaultBindings())
	if err != nil {
		t.Fatalf("build keymap: %v", err)
	}
	sess := session.New(sampleRecords(), filter.NewContext("", "/proj"), store, km, session.Config{
		WrapEdges:      true,
		CountTimeoutMs: 800,
	})
	sess.Start()

	m := newProgram(sess, func() ([]history.Record, error) {
		return sampleRecords(), nil
	}, nil, theme.DefaultTheme(), 800*time.Millisecond)
	curTime, _ := time.Parse(time.TimeOnly, "12:34:56")
	m.status.SetLastRefresh(curTime)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 16})
	return next.(Program)
}

func TestView_ListRender(t *testing.T) {
	m := baseModelForTest(t)

	plain := ansi.Strip(m.View())

	if !strings.HasPrefix(plain, "Jumps (4)") {
		t.Fatalf("unexpected header: %q", strings.SplitN(plain, "\n", 2)[0])
	}
	// Initial target offset 0 selects the current entry.
	if !strings.Contains(plain, ">   ●   /proj/c.go:30:2") {
		t.Fatalf("expected selected current row, got:\n%s", plain)
	}
	if !strings.Contains(plain, " +2   /proj/a.go:10:1") {
		t.Fatalf("expected offset column, got:\n%s", plain)
	}
	if !strings.Contains(plain, "refreshed: 12:34:56") {
		t.Fatalf("expected bottom bar timestamp, got: %q", plain)
	}
	if strings.Contains(plain, "│") {
		t.Fatalf("list mode must render a single column")
	}
}

func TestView_PendingCountInStatusBar(t *testing.T) {
	m := baseModelForTest(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	m = next.(Program)
	if cmd == nil {
		t.Fatalf("digit accumulation must schedule a count timer")
	}

	plain := ansi.Strip(m.View())
	if !strings.Contains(plain, "count: 4") {
		t.Fatalf("expected pending count in status bar, got: %q", plain)
	}
}

func TestUpdate_CountedMove(t *testing.T) {
	m := baseModelForTest(t)

	for _, r := range []rune("2j") {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Program)
	}

	// Selection started on the current entry (index 3 of 4).
	if got := m.sess.Selected(); got != 1 {
		t.Fatalf("2j with wrap from index 3: selected = %d, want 1", got)
	}
	if strings.Contains(ansi.Strip(m.View()), "count:") {
		t.Fatalf("count must be consumed after dispatch")
	}
}

func TestUpdate_AcceptQuitsWithResult(t *testing.T) {
	m := baseModelForTest(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Program)
	if cmd == nil {
		t.Fatalf("accept must return a quit command")
	}
	if m.sess.IsActive() {
		t.Fatalf("session must be destroyed after accept")
	}
	r := m.sess.Result()
	if r == nil || r.Path != "/proj/c.go" {
		t.Fatalf("result = %+v, want current entry", r)
	}
}

func TestUpdate_ProbeFailureCancels(t *testing.T) {
	m := baseModelForTest(t)
	m.probe = func() bool { return false }

	next, cmd := m.Update(tickMsg{})
	m = next.(Program)
	if cmd == nil {
		t.Fatalf("failed probe must quit")
	}
	if m.sess.IsActive() {
		t.Fatalf("failed probe must destroy the session")
	}
	if m.sess.Result() != nil {
		t.Fatalf("probe cancellation must not produce a result")
	}
}

func TestUpdate_HelpOverlay(t *testing.T) {
	m := baseModelForTest(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	m = next.(Program)
	plain := ansi.Strip(m.View())
	if !strings.Contains(plain, "Help") {
		t.Fatalf("expected help overlay, got: %q", plain)
	}

	// Keys other than the close keys are swallowed while help is open.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = next.(Program)
	if got := m.sess.Selected(); got != 3 {
		t.Fatalf("selection moved while help open: %d", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Program)
	if strings.Contains(ansi.Strip(m.View()), "Help") {
		t.Fatalf("esc must close the help overlay")
	}
}

func TestUpdate_OffsetPromptJumps(t *testing.T) {
	m := baseModelForTest(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	m = next.(Program)
	if !m.prompt.Active() {
		t.Fatalf("':' must open the offset prompt")
	}

	for _, r := range []rune("+2") {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Program)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Program)

	if m.prompt.Active() {
		t.Fatalf("enter must close the prompt")
	}
	r := m.sess.SelectedRecord()
	if r == nil || r.Offset != 2 {
		t.Fatalf("selected = %+v, want offset +2", r)
	}
}

func TestUpdate_PreviewModeSplits(t *testing.T) {
	m := baseModelForTest(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = next.(Program)

	plain := ansi.Strip(m.View())
	if !strings.Contains(plain, "│") {
		t.Fatalf("preview mode must render a split view")
	}
	if !strings.Contains(plain, "Loading preview") {
		t.Fatalf("preview pane must show a loading placeholder, got:\n%s", plain)
	}

	next, _ = m.Update(previewMsg{
		path:  "/proj/c.go",
		line:  30,
		lines: []string{"package main", "", "func main() {}"},
	})
	m = next.(Program)
	plain = ansi.Strip(m.View())
	if !strings.Contains(plain, "func main() {}") {
		t.Fatalf("expected preview content, got:\n%s", plain)
	}
}

func TestUpdate_HistoryRefreshKeepsSelection(t *testing.T) {
	m := baseModelForTest(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = next.(Program)
	if got := m.sess.SelectedRecord(); got == nil || got.Path != "/proj/d.go" {
		t.Fatalf("setup: selected %+v", got)
	}

	next, _ = m.Update(historyMsg{records: sampleRecords()})
	m = next.(Program)
	if got := m.sess.SelectedRecord(); got == nil || got.Path != "/proj/d.go" {
		t.Fatalf("refresh lost selection: %+v", got)
	}
}
