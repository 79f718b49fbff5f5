package session

// MoveSelection moves the selection by a signed step that already
// incorporates any resolved count. With wrapEdges on, stepping past
// either end re-enters from the opposite one; otherwise the index is
// clamped into range. An empty view is left untouched.
func (s *Session) MoveSelection(by int) {
	n := len(s.items)
	if n == 0 {
		return
	}
	idx := s.selected + by
	if s.cfg.WrapEdges {
		if idx < 1 {
			idx = n
		} else if idx > n {
			idx = 1
		}
	} else {
		if idx < 1 {
			idx = 1
		} else if idx > n {
			idx = n
		}
	}
	if idx != s.selected {
		s.previewStale = true
	}
	s.selected = idx
	s.rememberSelection()
	s.ensureVisible()
}

// MoveTo sets the selection to an explicit index, used by the edge
// jumps. Pending counts do not apply here. The index is confined to
// the list bounds; an empty view is left untouched.
func (s *Session) MoveTo(to int) {
	n := len(s.items)
	if n == 0 {
		return
	}
	if to < 1 {
		to = 1
	} else if to > n {
		to = n
	}
	if to != s.selected {
		s.previewStale = true
	}
	s.selected = to
	s.rememberSelection()
	s.ensureVisible()
}
