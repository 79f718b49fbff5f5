package session

import (
	"fmt"
	"strconv"
)

// countState accumulates digit keystrokes into a pending repeat count.
// gen stamps the armed expiry timer; bumping it stales out any timer
// already in flight, so a late expiry becomes a no-op.
type countState struct {
	pending string
	gen     int
}

// KeyResult describes what a keystroke did and what the caller owes:
// scheduling the count-expiry timer, re-rendering, or quitting.
type KeyResult struct {
	// Action is the dispatched action name, empty if none ran.
	Action string
	// Count is the repeat count the action was dispatched with.
	Count int
	// Quit is set when the dispatched action terminates the session.
	Quit bool
	// Err carries a handler failure; the loop reports it and goes on.
	Err error
	// Rerender is set when visible state changed.
	Rerender bool
	// TimerGen, when non-zero, asks the caller to schedule the count
	// expiry timer stamped with this generation.
	TimerGen int
}

// HandleKey classifies one keystroke through the count machine and
// dispatches the bound action, if any. A destroyed session is inert.
func (s *Session) HandleKey(key string) KeyResult {
	if s.phase != PhaseRunning {
		return KeyResult{}
	}

	if isDigitKey(key) && (s.count.pending != "" || key != "0") {
		s.count.pending += key
		s.count.gen++
		return KeyResult{Rerender: true, TimerGen: s.count.gen}
	}
	// A lone '0' with nothing pending falls through as a normal key.

	count := 1
	if s.count.pending != "" {
		if n, err := strconv.Atoi(s.count.pending); err == nil {
			count = n
		}
	}
	hadPending := s.count.pending != ""
	s.count.pending = ""
	s.count.gen++

	act, ok := s.keymap[key]
	if !ok {
		return KeyResult{Rerender: hadPending}
	}
	if act.Name == ActionCancel && hadPending {
		// Cancel while a count is pending only clears the count.
		return KeyResult{Rerender: true}
	}

	quit, err := s.dispatch(act, count)
	if quit {
		s.Destroy(act.Name == ActionAccept)
	}
	return KeyResult{
		Action:   act.Name,
		Count:    count,
		Quit:     quit,
		Err:      err,
		Rerender: true,
	}
}

// CountTimeout handles the expiry timer firing. Stale generations and
// destroyed sessions are ignored. It reports whether a re-render is
// needed so an on-screen count indicator can disappear.
func (s *Session) CountTimeout(gen int) bool {
	if s.phase != PhaseRunning || gen != s.count.gen || s.count.pending == "" {
		return false
	}
	s.count.pending = ""
	return true
}

// PendingCount returns the digits accumulated so far, empty when idle.
func (s *Session) PendingCount() string {
	return s.count.pending
}

// dispatch runs a handler with panic containment: a panicking handler
// fails that action but never tears down the session.
func (s *Session) dispatch(act Action, count int) (quit bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			quit = false
			err = fmt.Errorf("action %s panicked: %v", act.Name, r)
		}
	}()
	return act.Handler(s, count)
}

func isDigitKey(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}
