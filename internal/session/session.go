// Package session implements the navigation engine: the session
// aggregate, offset resolution, selection preservation, bounded and
// circular movement, and the count-accumulation input machine.
//
// The package is deliberately free of terminal concerns. The TUI layer
// feeds keys and timer expiries in and renders snapshots out, so the
// whole state machine is testable without a terminal.
package session

import (
	"github.com/interpretive-systems/jumpback/internal/filter"
	"github.com/interpretive-systems/jumpback/internal/hidestore"
	"github.com/interpretive-systems/jumpback/internal/history"
)

// ViewMode selects the main surface layout.
type ViewMode string

const (
	ViewList    ViewMode = "list"
	ViewPreview ViewMode = "preview"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseCreated Phase = iota
	PhaseRunning
	PhaseDestroyed
)

// Config is the resolved, flat session configuration.
type Config struct {
	WrapEdges      bool
	CountTimeoutMs int
	ViewMode       ViewMode
	TargetOffset   int
}

// Session is the aggregate root: one interactive browse of the jump
// history. All mutation happens synchronously inside a dispatch step.
type Session struct {
	cfg    Config
	keymap Keymap

	allItems []history.Record
	items    []history.Record

	filters filter.State
	fctx    filter.Context

	hides *hidestore.Store

	selected    int // 1-based into items; 0 means no selection
	lastSel     *history.Record
	visibleFrom int
	visibleTo   int
	viewHeight  int
	viewMode    ViewMode

	count countState

	phase        Phase
	result       *history.Record
	previewStale bool
}

// Snapshot is the read-only render state handed to the display layer
// after every change.
type Snapshot struct {
	Items         []history.Record
	SelectedIndex int
	VisibleFrom   int
	VisibleTo     int
	ViewMode      ViewMode
	Filters       filter.State
	PendingCount  string
}

// New creates a session over the full record list. The filter context
// is frozen here for the session's lifetime, hidden flags are marked,
// and the initial selection is resolved from cfg.TargetOffset.
// Resolution runs over the displayed view, not the raw list: the
// index it yields must address a visible row, so hidden entries are
// never startup targets.
func New(all []history.Record, fctx filter.Context, hides *hidestore.Store, keymap Keymap, cfg Config) *Session {
	if cfg.ViewMode == "" {
		cfg.ViewMode = ViewList
	}
	s := &Session{
		cfg:      cfg,
		keymap:   keymap,
		allItems: all,
		fctx:     fctx,
		hides:    hides,
		viewMode: cfg.ViewMode,
		phase:    PhaseCreated,
	}
	s.hides.MarkItems(s.allItems)
	s.items = filter.Apply(s.allItems, s.filters, s.fctx)
	s.selected = ResolveOffset(s.items, cfg.TargetOffset, cfg.WrapEdges)
	s.rememberSelection()
	s.ensureVisible()
	return s
}

// Start moves the session into its running phase.
func (s *Session) Start() {
	if s.phase == PhaseCreated {
		s.phase = PhaseRunning
	}
}

// Destroy terminates the session. With accept true the currently
// selected record becomes the result. Destroy is idempotent and makes
// all further dispatch inert.
func (s *Session) Destroy(accept bool) {
	if s.phase == PhaseDestroyed {
		return
	}
	if accept {
		if r := s.SelectedRecord(); r != nil {
			cp := *r
			s.result = &cp
		}
	}
	s.phase = PhaseDestroyed
	s.count.pending = ""
	s.count.gen++ // stale out any armed timer
}

// Result returns the accepted record, or nil after cancellation.
func (s *Session) Result() *history.Record {
	return s.result
}

// IsActive reports whether the run loop should keep going.
func (s *Session) IsActive() bool {
	return s.phase == PhaseRunning
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Snapshot returns the current render state. The second return is
// false once the session is destroyed.
func (s *Session) Snapshot() (Snapshot, bool) {
	if s.phase == PhaseDestroyed {
		return Snapshot{}, false
	}
	return Snapshot{
		Items:         s.items,
		SelectedIndex: s.selected,
		VisibleFrom:   s.visibleFrom,
		VisibleTo:     s.visibleTo,
		ViewMode:      s.viewMode,
		Filters:       s.filters,
		PendingCount:  s.count.pending,
	}, true
}

// Items returns the current filtered view.
func (s *Session) Items() []history.Record {
	return s.items
}

// Selected returns the 1-based selection index, 0 when none.
func (s *Session) Selected() int {
	return s.selected
}

// SelectedRecord returns the selected record, or nil when the view is
// empty.
func (s *Session) SelectedRecord() *history.Record {
	if s.selected < 1 || s.selected > len(s.items) {
		return nil
	}
	return &s.items[s.selected-1]
}

// Filters returns the current filter state.
func (s *Session) Filters() filter.State {
	return s.filters
}

// ViewMode returns the current view mode.
func (s *Session) ViewMode() ViewMode {
	return s.viewMode
}

// ToggleViewMode switches between list and preview.
func (s *Session) ToggleViewMode() {
	if s.viewMode == ViewList {
		s.viewMode = ViewPreview
	} else {
		s.viewMode = ViewList
	}
	s.previewStale = true
}

// ToggleFileOnly flips the same-file filter and rebuilds the view.
func (s *Session) ToggleFileOnly() {
	s.filters.FileOnly = !s.filters.FileOnly
	s.rebuild()
}

// ToggleCwdOnly flips the same-directory filter and rebuilds the view.
func (s *Session) ToggleCwdOnly() {
	s.filters.CwdOnly = !s.filters.CwdOnly
	s.rebuild()
}

// ToggleShowHidden flips hidden-entry visibility and rebuilds the view.
func (s *Session) ToggleShowHidden() {
	s.filters.ShowHidden = !s.filters.ShowHidden
	s.rebuild()
}

// ToggleHidden flips the hidden state of the selected record,
// persisting through the hide store, then rebuilds the view.
func (s *Session) ToggleHidden() (bool, error) {
	r := s.SelectedRecord()
	if r == nil {
		return false, nil
	}
	hidden, err := s.hides.Toggle(*r)
	if err != nil {
		return hidden, err
	}
	s.rebuild()
	return hidden, nil
}

// JumpToOffset re-runs target-offset resolution against the current
// view, for explicit offset requests after session start.
func (s *Session) JumpToOffset(target int) {
	if len(s.items) == 0 {
		return
	}
	s.selected = ResolveOffset(s.items, target, s.cfg.WrapEdges)
	s.rememberSelection()
	s.previewStale = true
	s.ensureVisible()
}

// Refresh replaces the raw record list, e.g. after the history source
// reloads, keeping the selection by identity where possible.
func (s *Session) Refresh(all []history.Record) {
	s.allItems = all
	s.rebuild()
}

// PreviewStale reports whether the preview no longer matches the
// selection.
func (s *Session) PreviewStale() bool {
	return s.previewStale
}

// PreviewLoaded marks the preview fresh again.
func (s *Session) PreviewLoaded() {
	s.previewStale = false
}

// RequestCancel terminates the session from outside the input path,
// used by the liveness probe. A destroyed session ignores it.
func (s *Session) RequestCancel() {
	if s.phase != PhaseRunning {
		return
	}
	s.Destroy(false)
}

// SetViewHeight tells the session how many rows the list surface has,
// so the visible range can track the selection.
func (s *Session) SetViewHeight(h int) {
	if h < 1 {
		h = 1
	}
	s.viewHeight = h
	s.ensureVisible()
}

// rebuild re-marks hidden flags, re-applies filters, and preserves the
// selection across the list replacement.
func (s *Session) rebuild() {
	prev := s.lastSel
	if r := s.SelectedRecord(); r != nil {
		cp := *r
		prev = &cp
	}
	s.hides.MarkItems(s.allItems)
	s.items = filter.Apply(s.allItems, s.filters, s.fctx)
	s.selected = PreserveSelection(s.items, prev)
	s.rememberSelection()
	s.previewStale = true
	s.ensureVisible()
}

// rememberSelection keeps the last concrete selection so it can be
// restored after the view temporarily empties.
func (s *Session) rememberSelection() {
	if r := s.SelectedRecord(); r != nil {
		cp := *r
		s.lastSel = &cp
	}
}

// ensureVisible recomputes the visible window around the selection.
func (s *Session) ensureVisible() {
	n := len(s.items)
	if n == 0 || s.viewHeight < 1 {
		s.visibleFrom, s.visibleTo = 0, 0
		return
	}
	h := s.viewHeight
	if h > n {
		h = n
	}
	from := s.visibleFrom
	if from < 1 {
		from = 1
	}
	maxFrom := n - h + 1
	if from > maxFrom {
		from = maxFrom
	}
	if s.selected >= 1 {
		if s.selected < from {
			from = s.selected
		} else if s.selected > from+h-1 {
			from = s.selected - h + 1
		}
	}
	if from > maxFrom {
		from = maxFrom
	}
	if from < 1 {
		from = 1
	}
	s.visibleFrom = from
	s.visibleTo = from + h - 1
}
