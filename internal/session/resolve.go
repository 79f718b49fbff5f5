package session

import "github.com/interpretive-systems/jumpback/internal/history"

// ResolveOffset picks the 1-based index of the item best matching the
// requested offset, or 0 for an empty list. The candidate order is
// fixed: exact match, then closest same-direction undershoot, then the
// wrap fallback, then the current position, then the first item. Ties
// between equally good candidates go to the first in display order.
func ResolveOffset(items []history.Record, target int, wrapEdges bool) int {
	if len(items) == 0 {
		return 0
	}

	for i, it := range items {
		if it.Offset == target {
			return i + 1
		}
	}

	// Closest available in the requested direction, undershooting
	// rather than crossing to the wrong side of the target.
	best, bestOff := 0, 0
	switch {
	case target > 0:
		for i, it := range items {
			if it.Offset > 0 && it.Offset <= target && (best == 0 || it.Offset > bestOff) {
				best, bestOff = i+1, it.Offset
			}
		}
	case target < 0:
		for i, it := range items {
			if it.Offset < 0 && it.Offset >= target && (best == 0 || it.Offset < bestOff) {
				best, bestOff = i+1, it.Offset
			}
		}
	}
	if best != 0 {
		return best
	}

	if wrapEdges {
		if target > 0 && !hasDirection(items, +1) {
			return extremeIndex(items, -1)
		}
		if target < 0 && !hasDirection(items, -1) {
			return extremeIndex(items, +1)
		}
	}

	for i, it := range items {
		if it.Offset == 0 {
			return i + 1
		}
	}
	return 1
}

// PreserveSelection relocates a previous selection inside a replaced
// list: first by (path, line) identity, then by nearest offset, with
// ties going to the first occurrence. An empty list yields 0.
func PreserveSelection(items []history.Record, prev *history.Record) int {
	if len(items) == 0 {
		return 0
	}
	if prev == nil {
		for i, it := range items {
			if it.Offset == 0 {
				return i + 1
			}
		}
		return 1
	}
	for i, it := range items {
		if it.Path == prev.Path && it.Line == prev.Line {
			return i + 1
		}
	}
	best, bestDiff := 0, 0
	for i, it := range items {
		d := it.Offset - prev.Offset
		if d < 0 {
			d = -d
		}
		if best == 0 || d < bestDiff {
			best, bestDiff = i+1, d
		}
	}
	return best
}

// hasDirection reports whether any item lies in the given direction
// (sign of dir) from the current position.
func hasDirection(items []history.Record, dir int) bool {
	for _, it := range items {
		if dir > 0 && it.Offset > 0 {
			return true
		}
		if dir < 0 && it.Offset < 0 {
			return true
		}
	}
	return false
}

// extremeIndex returns the 1-based index of the furthest item in the
// given direction: dir < 0 means most negative offset, dir > 0 most
// positive. First occurrence wins on ties.
func extremeIndex(items []history.Record, dir int) int {
	best, bestOff := 0, 0
	for i, it := range items {
		take := best == 0 ||
			(dir < 0 && it.Offset < bestOff) ||
			(dir > 0 && it.Offset > bestOff)
		if take {
			best, bestOff = i+1, it.Offset
		}
	}
	return best
}
