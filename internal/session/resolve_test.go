package session

import (
	"testing"

	"github.com/interpretive-systems/jumpback/internal/history"
)

// offsets builds a display list from offset values, synthesizing
// distinct paths so identity checks stay honest.
func offsets(vals ...int) []history.Record {
	out := make([]history.Record, 0, len(vals))
	for i, v := range vals {
		out = append(out, history.Record{
			Path:   "/proj/file" + string(rune('a'+i)) + ".go",
			Line:   i + 1,
			Col:    1,
			Offset: v,
		})
	}
	return out
}

func TestResolveOffset_ExactMatchWinsAlways(t *testing.T) {
	items := offsets(2, 1, 0, -1, -2)
	for target := -2; target <= 2; target++ {
		idx := ResolveOffset(items, target, true)
		if idx == 0 || items[idx-1].Offset != target {
			t.Errorf("target %d: got index %d, want exact match", target, idx)
		}
	}
}

func TestResolveOffset_DirectionalClosestForward(t *testing.T) {
	// 99 forward: no exact match, furthest forward undershoot is 2.
	items := offsets(-2, -1, 0, 1, 2)
	idx := ResolveOffset(items, 99, true)
	if idx == 0 || items[idx-1].Offset != 2 {
		t.Fatalf("target 99: got offset %d, want 2", items[idx-1].Offset)
	}
	// Wrap must not kick in while a forward item exists.
	idx = ResolveOffset(items, 99, false)
	if idx == 0 || items[idx-1].Offset != 2 {
		t.Fatalf("target 99 without wrap: got offset %d, want 2", items[idx-1].Offset)
	}
}

func TestResolveOffset_DirectionalClosestBackward(t *testing.T) {
	items := offsets(-2, -1, 0, 1, 2)
	idx := ResolveOffset(items, -99, true)
	if idx == 0 || items[idx-1].Offset != -2 {
		t.Fatalf("target -99: got offset %d, want -2", items[idx-1].Offset)
	}
}

func TestResolveOffset_UndershootNotOvershoot(t *testing.T) {
	// Requesting 3 with forward offsets {1, 5}: prefer 1, never 5.
	items := offsets(1, 5, 0, -1)
	idx := ResolveOffset(items, 3, false)
	if idx == 0 || items[idx-1].Offset != 1 {
		t.Fatalf("target 3: got offset %d, want 1", items[idx-1].Offset)
	}
}

func TestResolveOffset_OnlyOvershootFallsToCurrent(t *testing.T) {
	// Forward items exist but all overshoot: no directional match, and
	// wrap does not apply because the direction is populated.
	items := offsets(3, 5, 0, -1)
	idx := ResolveOffset(items, 1, true)
	if idx == 0 || items[idx-1].Offset != 0 {
		t.Fatalf("target 1: got offset %d, want 0 (current)", items[idx-1].Offset)
	}
}

func TestResolveOffset_WrapToOppositeEnd(t *testing.T) {
	// No forward items at all: wrap selects the furthest backward.
	items := offsets(0, -1, -3, -2)
	idx := ResolveOffset(items, 2, true)
	if idx == 0 || items[idx-1].Offset != -3 {
		t.Fatalf("forward wrap: got offset %d, want -3", items[idx-1].Offset)
	}

	// No backward items: wrap selects the furthest forward.
	items = offsets(0, 1, 4, 2)
	idx = ResolveOffset(items, -2, true)
	if idx == 0 || items[idx-1].Offset != 4 {
		t.Fatalf("backward wrap: got offset %d, want 4", items[idx-1].Offset)
	}
}

func TestResolveOffset_NoWrapFallsBackToCurrent(t *testing.T) {
	items := offsets(0, -1, -2)
	idx := ResolveOffset(items, 2, false)
	if idx == 0 || items[idx-1].Offset != 0 {
		t.Fatalf("got offset %d, want 0", items[idx-1].Offset)
	}
}

func TestResolveOffset_FallbackToFirstWithoutCurrent(t *testing.T) {
	items := offsets(-4, -6)
	idx := ResolveOffset(items, 3, false)
	if idx != 1 {
		t.Fatalf("got index %d, want 1", idx)
	}
}

func TestResolveOffset_TieBreakFirstOccurrence(t *testing.T) {
	// Two items share the best same-direction offset; first in display
	// order must win.
	items := offsets(-3, 1, 0, 1)
	idx := ResolveOffset(items, 5, false)
	if idx != 2 {
		t.Fatalf("tie-break: got index %d, want 2 (first occurrence)", idx)
	}
}

func TestResolveOffset_Empty(t *testing.T) {
	if idx := ResolveOffset(nil, 3, true); idx != 0 {
		t.Fatalf("empty list: got %d, want 0", idx)
	}
}

func TestPreserveSelection_ByPathAndLine(t *testing.T) {
	oldItems := offsets(1, 0, -1)
	prev := oldItems[2]

	newItems := []history.Record{oldItems[1], oldItems[2]}
	idx := PreserveSelection(newItems, &prev)
	if idx != 2 {
		t.Fatalf("got index %d, want 2", idx)
	}
}

func TestPreserveSelection_ClosestOffsetWhenIdentityGone(t *testing.T) {
	prev := history.Record{Path: "/gone.go", Line: 99, Offset: -2}
	items := offsets(2, 0, -1)
	idx := PreserveSelection(items, &prev)
	if idx == 0 || items[idx-1].Offset != -1 {
		t.Fatalf("got offset %d, want -1 (closest to -2)", items[idx-1].Offset)
	}
}

func TestPreserveSelection_ClosestOffsetTieFirstOccurrence(t *testing.T) {
	prev := history.Record{Path: "/gone.go", Line: 99, Offset: 0}
	items := offsets(1, -1)
	idx := PreserveSelection(items, &prev)
	if idx != 1 {
		t.Fatalf("got index %d, want 1 (first occurrence on tie)", idx)
	}
}

func TestPreserveSelection_EmptyIsNone(t *testing.T) {
	prev := history.Record{Path: "/a.go", Line: 1}
	if idx := PreserveSelection(nil, &prev); idx != 0 {
		t.Fatalf("got %d, want 0", idx)
	}
}

func TestPreserveSelection_NoPreviousPicksCurrent(t *testing.T) {
	items := offsets(1, 0, -1)
	if idx := PreserveSelection(items, nil); idx != 2 {
		t.Fatalf("got %d, want 2 (offset 0)", idx)
	}
}
