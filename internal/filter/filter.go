// Package filter provides pure filter predicates over jump records.
// All functions are simple: []Record in, []Record out. No side effects,
// and no reads of live host state: comparisons always use the frozen
// Context captured at session start.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/interpretive-systems/jumpback/internal/history"
)

// State holds the three independent filter toggles. All default off.
type State struct {
	FileOnly   bool
	CwdOnly    bool
	ShowHidden bool
}

// Context is the file/directory snapshot taken once when the session
// starts. Paths are stored pre-resolved.
type Context struct {
	OriginalFile string
	OriginalCwd  string
}

// NewContext resolves and freezes the given file and working directory.
func NewContext(file, cwd string) Context {
	return Context{
		OriginalFile: Resolve(file),
		OriginalCwd:  Resolve(cwd),
	}
}

// Apply returns the records passing every enabled filter. An empty
// result is ordinary data, not an error.
func Apply(items []history.Record, s State, ctx Context) []history.Record {
	out := make([]history.Record, 0, len(items))
	for _, it := range items {
		if s.FileOnly && Resolve(it.Path) != ctx.OriginalFile {
			continue
		}
		if s.CwdOnly && !underDir(filepath.Dir(Resolve(it.Path)), ctx.OriginalCwd) {
			continue
		}
		if !s.ShowHidden && it.Hidden {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Resolve normalizes a path to an absolute, symlink-resolved,
// trailing-slash-free form. Plain string comparison on unresolved
// paths would desync on symlinks and relative paths.
func Resolve(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if len(abs) > 1 {
		abs = strings.TrimSuffix(abs, string(filepath.Separator))
	}
	return abs
}

// underDir reports whether dir equals root or sits beneath it. Both
// arguments must already be resolved.
func underDir(dir, root string) bool {
	if root == "" {
		return false
	}
	if dir == root {
		return true
	}
	// The filesystem root already ends in the separator.
	if root == string(filepath.Separator) {
		return strings.HasPrefix(dir, root)
	}
	return strings.HasPrefix(dir, root+string(filepath.Separator))
}
