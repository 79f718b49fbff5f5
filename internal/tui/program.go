// Package tui renders the interactive jump browser. The engine in
// internal/session owns all state; this package translates terminal
// events into engine dispatches and snapshots into frames.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/jumpback/internal/history"
	"github.com/interpretive-systems/jumpback/internal/logging"
	"github.com/interpretive-systems/jumpback/internal/session"
	"github.com/interpretive-systems/jumpback/internal/theme"
	"github.com/interpretive-systems/jumpback/internal/tui/components"
)

// Program is the Bubble Tea model driving one session.
type Program struct {
	sess   *session.Session
	loader func() ([]history.Record, error)
	probe  func() bool

	theme  theme.Theme
	layout *Layout

	list    *components.RecordList
	status  *components.StatusBar
	preview *components.Preview
	prompt  *OffsetPrompt

	countTimeout time.Duration
	showHelp     bool
	previewReq   string
	width        int
	height       int
}

// Run starts the session's run loop and blocks until it terminates,
// returning the accepted record or nil on cancellation.
func Run(
	sess *session.Session,
	loader func() ([]history.Record, error),
	probe func() bool,
	t theme.Theme,
	countTimeout time.Duration,
) (*history.Record, error) {
	m := newProgram(sess, loader, probe, t, countTimeout)
	sess.Start()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	// Idempotent teardown: the quit path usually destroyed it already.
	sess.Destroy(false)
	if err != nil {
		return nil, fmt.Errorf("run loop: %w", err)
	}
	return sess.Result(), nil
}

func newProgram(
	sess *session.Session,
	loader func() ([]history.Record, error),
	probe func() bool,
	t theme.Theme,
	countTimeout time.Duration,
) Program {
	status := components.NewStatusBar(t)
	status.SetLastRefresh(time.Now())
	return Program{
		sess:         sess,
		loader:       loader,
		probe:        probe,
		theme:        t,
		layout:       NewLayout(),
		list:         components.NewRecordList(t),
		status:       status,
		preview:      components.NewPreview(t),
		prompt:       NewOffsetPrompt(),
		countTimeout: countTimeout,
	}
}

func (m Program) Init() tea.Cmd {
	return tickOnce()
}

func (m Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout.SetSize(msg.Width, msg.Height)
		m.syncViewport()
		return m, m.maybeLoadPreview()

	case tickMsg:
		if !m.sess.IsActive() {
			return m, nil
		}
		if m.probe != nil && !m.probe() {
			logging.Logger.Info("liveness probe requested termination")
			m.sess.RequestCancel()
			return m, tea.Quit
		}
		return m, tea.Batch(loadHistory(m.loader), tickOnce())

	case countTimeoutMsg:
		// Stale generations and destroyed sessions are no-ops.
		m.sess.CountTimeout(msg.gen)
		return m, nil

	case historyMsg:
		if msg.err != nil {
			m.status.SetError(msg.err.Error())
			logging.Logger.Error("history reload failed", "err", msg.err)
			return m, nil
		}
		m.sess.Refresh(msg.records)
		m.status.SetLastRefresh(time.Now())
		m.syncViewport()
		return m, m.maybeLoadPreview()

	case previewMsg:
		m.previewReq = ""
		if msg.err != nil {
			m.status.SetError(msg.err.Error())
			m.sess.PreviewLoaded()
			return m, nil
		}
		// Apply only if this preview still matches the selection.
		if r := m.sess.SelectedRecord(); r != nil && r.Path == msg.path && r.Line == msg.line {
			m.preview.SetContent(msg.path, msg.line, msg.lines)
			m.sess.PreviewLoaded()
			return m, nil
		}
		return m, m.maybeLoadPreview()
	}
	return m, nil
}

func (m Program) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt.Active() {
		target, ok, cmd := m.prompt.HandleKey(msg)
		if !ok {
			m.syncViewport()
			return m, cmd
		}
		m.sess.JumpToOffset(target)
		m.syncViewport()
		return m, tea.Batch(cmd, m.maybeLoadPreview())
	}
	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
			m.syncViewport()
		}
		return m, nil
	}

	// Display-only keys for the split view never reach the engine.
	if m.sess.ViewMode() == session.ViewPreview {
		switch msg.String() {
		case "<":
			m.layout.AdjustLeftWidth(-2)
			m.syncViewport()
			return m, nil
		case ">":
			m.layout.AdjustLeftWidth(2)
			m.syncViewport()
			return m, nil
		case "J", "ctrl+d":
			m.preview.ScrollDown(3)
			return m, nil
		case "K", "ctrl+u":
			m.preview.ScrollUp(3)
			return m, nil
		}
	}

	kr := m.sess.HandleKey(msg.String())
	if kr.Err != nil {
		m.status.SetError(kr.Err.Error())
		logging.Logger.Error("action failed", "action", kr.Action, "err", kr.Err)
	} else if kr.Action != "" {
		m.status.ClearError()
	}
	if kr.Quit {
		return m, tea.Quit
	}

	var cmds []tea.Cmd
	if kr.TimerGen != 0 {
		cmds = append(cmds, countTick(m.countTimeout, kr.TimerGen))
	}
	switch kr.Action {
	case session.ActionRefresh:
		cmds = append(cmds, loadHistory(m.loader))
	case session.ActionOffsetPrompt:
		m.prompt.Activate()
	case session.ActionHelp:
		m.showHelp = !m.showHelp
	}
	m.syncViewport()
	if cmd := m.maybeLoadPreview(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Program) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	snap, ok := m.sess.Snapshot()
	if !ok {
		return ""
	}

	overlay := m.overlayLines()
	contentHeight := m.layout.ContentHeight(len(overlay))

	split := snap.ViewMode == session.ViewPreview
	leftW := m.layout.Width()
	var rightLines []string
	if split {
		leftW = m.layout.LeftWidth()
		rightLines = m.preview.Render(contentHeight)
	}
	leftLines := m.list.Render(snap, leftW, contentHeight)

	top := fmt.Sprintf("Jumps (%d)", len(snap.Items))
	topRight := components.StatusLabel(m.sess.SelectedRecord())
	bottom := m.status.Render(snap, m.layout.Width())

	return m.layout.RenderFrame(top, topRight, leftLines, rightLines, overlay, bottom, m.theme)
}

// syncViewport pushes the current content geometry into the session
// and the preview pane.
func (m *Program) syncViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}
	contentHeight := m.layout.ContentHeight(len(m.overlayLines()))
	m.sess.SetViewHeight(contentHeight)
	if m.sess.ViewMode() == session.ViewPreview {
		m.preview.SetSize(m.layout.RightWidth(), contentHeight)
	}
}

// maybeLoadPreview requests file content when the preview is stale,
// deduplicating in-flight requests by location.
func (m *Program) maybeLoadPreview() tea.Cmd {
	if m.sess.ViewMode() != session.ViewPreview || !m.sess.PreviewStale() {
		return nil
	}
	r := m.sess.SelectedRecord()
	if r == nil {
		m.preview.SetEmpty()
		m.sess.PreviewLoaded()
		return nil
	}
	key := fmt.Sprintf("%s:%d", r.Path, r.Line)
	if m.previewReq == key {
		return nil
	}
	m.previewReq = key
	return loadPreview(r.Path, r.Line)
}

func (m Program) overlayLines() []string {
	if m.prompt.Active() {
		return m.prompt.OverlayLines(m.layout.Width())
	}
	if m.showHelp {
		return helpOverlayLines(m.layout.Width())
	}
	return nil
}
