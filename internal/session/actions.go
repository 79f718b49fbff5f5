package session

import (
	"fmt"
	"sort"
)

// Action names. The count machine treats ActionCancel specially (a
// pending count absorbs one cancel); everything else is just a name.
const (
	ActionAccept       = "accept"
	ActionCancel       = "cancel"
	ActionMoveDown     = "move-down"
	ActionMoveUp       = "move-up"
	ActionTop          = "top"
	ActionBottom       = "bottom"
	ActionFileFilter   = "toggle-file-filter"
	ActionCwdFilter    = "toggle-cwd-filter"
	ActionShowHidden   = "toggle-show-hidden"
	ActionHide         = "toggle-hide"
	ActionPreview      = "toggle-preview"
	ActionRefresh      = "refresh"
	ActionOffsetPrompt = "offset-prompt"
	ActionHelp         = "help"
)

// Action binds a name to a handler. Handlers report whether the
// session should terminate; errors are surfaced and the loop goes on.
type Action struct {
	Name    string
	Handler func(s *Session, count int) (quit bool, err error)
}

// Keymap maps key identities (bubbletea key strings) to actions.
type Keymap map[string]Action

// registry holds every known action. Refresh, the offset prompt and
// help have no engine-side effect; the display layer reacts to their
// names in the dispatch result.
var registry = map[string]Action{
	ActionAccept: {Name: ActionAccept, Handler: func(s *Session, _ int) (bool, error) {
		return true, nil
	}},
	ActionCancel: {Name: ActionCancel, Handler: func(s *Session, _ int) (bool, error) {
		return true, nil
	}},
	ActionMoveDown: {Name: ActionMoveDown, Handler: func(s *Session, count int) (bool, error) {
		s.MoveSelection(count)
		return false, nil
	}},
	ActionMoveUp: {Name: ActionMoveUp, Handler: func(s *Session, count int) (bool, error) {
		s.MoveSelection(-count)
		return false, nil
	}},
	ActionTop: {Name: ActionTop, Handler: func(s *Session, _ int) (bool, error) {
		s.MoveTo(1)
		return false, nil
	}},
	ActionBottom: {Name: ActionBottom, Handler: func(s *Session, _ int) (bool, error) {
		s.MoveTo(len(s.items))
		return false, nil
	}},
	ActionFileFilter: {Name: ActionFileFilter, Handler: func(s *Session, _ int) (bool, error) {
		s.ToggleFileOnly()
		return false, nil
	}},
	ActionCwdFilter: {Name: ActionCwdFilter, Handler: func(s *Session, _ int) (bool, error) {
		s.ToggleCwdOnly()
		return false, nil
	}},
	ActionShowHidden: {Name: ActionShowHidden, Handler: func(s *Session, _ int) (bool, error) {
		s.ToggleShowHidden()
		return false, nil
	}},
	ActionHide: {Name: ActionHide, Handler: func(s *Session, _ int) (bool, error) {
		_, err := s.ToggleHidden()
		return false, err
	}},
	ActionPreview: {Name: ActionPreview, Handler: func(s *Session, _ int) (bool, error) {
		s.ToggleViewMode()
		return false, nil
	}},
	ActionRefresh:      {Name: ActionRefresh, Handler: noop},
	ActionOffsetPrompt: {Name: ActionOffsetPrompt, Handler: noop},
	ActionHelp:         {Name: ActionHelp, Handler: noop},
}

func noop(*Session, int) (bool, error) {
	return false, nil
}

// DefaultBindings returns the built-in key-to-action mapping.
func DefaultBindings() map[string]string {
	return map[string]string{
		"enter":  ActionAccept,
		"q":      ActionCancel,
		"esc":    ActionCancel,
		"ctrl+c": ActionCancel,
		"j":      ActionMoveDown,
		"down":   ActionMoveDown,
		"k":      ActionMoveUp,
		"up":     ActionMoveUp,
		"g":      ActionTop,
		"G":      ActionBottom,
		"f":      ActionFileFilter,
		"c":      ActionCwdFilter,
		"s":      ActionShowHidden,
		"x":      ActionHide,
		"p":      ActionPreview,
		"r":      ActionRefresh,
		":":      ActionOffsetPrompt,
		"?":      ActionHelp,
	}
}

// BuildKeymap resolves a key-to-action-name mapping against the action
// registry. Unknown action names abort setup.
func BuildKeymap(bindings map[string]string) (Keymap, error) {
	km := make(Keymap, len(bindings))
	for key, name := range bindings {
		act, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("keymap[%q]: unknown action %q (known: %v)", key, name, ActionNames())
		}
		km[key] = act
	}
	return km, nil
}

// ActionNames lists every registered action name, sorted.
func ActionNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
