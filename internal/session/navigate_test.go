package session

import "testing"

func TestMoveSelection_WrapSymmetry(t *testing.T) {
	s := newTestSession(t, offsets(2, 1, 0, -1, -2), Config{WrapEdges: true})
	n := len(s.Items())

	s.MoveTo(1)
	s.MoveSelection(-1)
	if s.Selected() != n {
		t.Errorf("wrap up from 1: got %d, want %d", s.Selected(), n)
	}

	s.MoveTo(n)
	s.MoveSelection(1)
	if s.Selected() != 1 {
		t.Errorf("wrap down from %d: got %d, want 1", n, s.Selected())
	}
}

func TestMoveSelection_ClampWithoutWrap(t *testing.T) {
	s := newTestSession(t, offsets(2, 1, 0, -1, -2), Config{WrapEdges: false})
	n := len(s.Items())

	s.MoveTo(1)
	s.MoveSelection(-1)
	if s.Selected() != 1 {
		t.Errorf("clamp at top: got %d, want 1", s.Selected())
	}

	s.MoveTo(n)
	s.MoveSelection(1)
	if s.Selected() != n {
		t.Errorf("clamp at bottom: got %d, want %d", s.Selected(), n)
	}

	// Large counted steps clamp too.
	s.MoveTo(2)
	s.MoveSelection(100)
	if s.Selected() != n {
		t.Errorf("counted step past end: got %d, want %d", s.Selected(), n)
	}
}

func TestMoveSelection_EmptyViewGuard(t *testing.T) {
	s := newTestSession(t, nil, Config{WrapEdges: true})
	s.MoveSelection(1)
	s.MoveSelection(-1)
	s.MoveTo(1)
	if s.Selected() != 0 {
		t.Fatalf("empty view: selected = %d, want 0", s.Selected())
	}
}

func TestMoveTo_EdgeJumpsIgnoreCount(t *testing.T) {
	s := newTestSession(t, offsets(2, 1, 0, -1, -2), Config{})
	s.HandleKey("3") // pending count that edge jumps must ignore
	kr := s.HandleKey("G")
	if kr.Action != ActionBottom {
		t.Fatalf("G dispatched %q", kr.Action)
	}
	if s.Selected() != len(s.Items()) {
		t.Fatalf("G: selected = %d, want %d", s.Selected(), len(s.Items()))
	}

	s.HandleKey("4")
	s.HandleKey("g")
	if s.Selected() != 1 {
		t.Fatalf("g: selected = %d, want 1", s.Selected())
	}
}

func TestMove_MarksPreviewStale(t *testing.T) {
	s := newTestSession(t, offsets(1, 0, -1), Config{ViewMode: ViewPreview})
	s.PreviewLoaded()
	s.MoveSelection(1)
	if !s.PreviewStale() {
		t.Fatal("moving must stale the preview")
	}

	s.PreviewLoaded()
	s.MoveSelection(0)
	if s.PreviewStale() {
		t.Fatal("no-op move must not stale the preview")
	}
}
