// Package history loads the recorded jump history and converts it into
// offset-annotated records ready for display.
package history

import (
	"encoding/json"
	"fmt"
	"os"
)

// RawEntry is one position as recorded by the host integration.
type RawEntry struct {
	Buffer int    `json:"buffer"`
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Col    int    `json:"col"`
}

// Record is one jump annotated with its signed offset from the current
// position. Offset 0 marks "now"; negative offsets recede into the
// past, positive ones run forward.
type Record struct {
	Buffer      int
	Path        string
	Line        int
	Col         int
	SourceIndex int
	IsCurrent   bool
	Offset      int
	Hidden      bool
}

// Source provides the raw jump history and can test whether an entry
// still points at addressable content.
type Source interface {
	Load() (entries []RawEntry, current int, err error)
	Listed(e RawEntry) bool
}

// BuildRecords annotates the raw history with signed offsets relative
// to current (the 1-based position of "now"; 0 means before the first
// entry) and reverses the result so the most recent entries come
// first. Entries with no path, or rejected by listed, are dropped.
func BuildRecords(entries []RawEntry, current int, listed func(RawEntry) bool) []Record {
	out := make([]Record, 0, len(entries))
	for idx, e := range entries {
		i := idx + 1
		if e.Path == "" {
			continue
		}
		if listed != nil && !listed(e) {
			continue
		}
		var offset int
		switch {
		case i <= current:
			offset = -(current - i + 1)
		case i == current+1:
			offset = 0
		default:
			offset = i - current - 1
		}
		out = append(out, Record{
			Buffer:      e.Buffer,
			Path:        e.Path,
			Line:        e.Line,
			Col:         e.Col,
			SourceIndex: i,
			IsCurrent:   offset == 0,
			Offset:      offset,
		})
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// historyFile is the on-disk shape written by the host integration.
type historyFile struct {
	Entries []RawEntry `json:"entries"`
	Current int        `json:"current"`
}

// FileSource reads the history from a JSON file.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the given history file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and decodes the history file. A missing file is an empty
// history, not an error.
func (f *FileSource) Load() ([]RawEntry, int, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("read history %s: %w", f.path, err)
	}
	var hf historyFile
	if err := json.Unmarshal(b, &hf); err != nil {
		return nil, 0, fmt.Errorf("parse history %s: %w", f.path, err)
	}
	if hf.Current < 0 {
		hf.Current = 0
	}
	if hf.Current > len(hf.Entries) {
		hf.Current = len(hf.Entries)
	}
	return hf.Entries, hf.Current, nil
}

// Listed reports whether the entry's file still exists as a regular
// file. Entries pointing at removed files are dropped from the view.
func (f *FileSource) Listed(e RawEntry) bool {
	info, err := os.Stat(e.Path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
