// Package hidestore tracks which jump locations the user has hidden.
//
// Identity is the deterministic location key "path:line:col". Storage
// goes through the Persistence port; the store itself never touches a
// medium directly.
package hidestore

import (
	"fmt"

	"github.com/interpretive-systems/jumpback/internal/history"
)

// Key returns the location identity used to persist hidden state.
func Key(path string, line, col int) string {
	return fmt.Sprintf("%s:%d:%d", path, line, col)
}

// RecordKey returns the location key for a record.
func RecordKey(r history.Record) string {
	return Key(r.Path, r.Line, r.Col)
}

// Persistence is the storage port. LoadAll returns the full key set;
// SaveAll replaces it. Cross-session mechanics belong entirely to the
// implementation.
type Persistence interface {
	LoadAll() (map[string]struct{}, error)
	SaveAll(keys map[string]struct{}) error
}

// Store is the in-session hidden-key set backed by a Persistence port.
type Store struct {
	hidden map[string]struct{}
	port   Persistence
}

// Open loads the persisted key set through the port.
func Open(port Persistence) (*Store, error) {
	keys, err := port.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load hidden locations: %w", err)
	}
	if keys == nil {
		keys = make(map[string]struct{})
	}
	return &Store{hidden: keys, port: port}, nil
}

// Get reports whether the key is hidden.
func (s *Store) Get(key string) bool {
	_, ok := s.hidden[key]
	return ok
}

// Toggle flips the hidden state of the record's location, persists the
// new set before returning, and reports the new state.
func (s *Store) Toggle(r history.Record) (bool, error) {
	key := RecordKey(r)
	_, was := s.hidden[key]
	if was {
		delete(s.hidden, key)
	} else {
		s.hidden[key] = struct{}{}
	}
	if err := s.port.SaveAll(s.hidden); err != nil {
		// Roll back so memory and storage stay in agreement.
		if was {
			s.hidden[key] = struct{}{}
		} else {
			delete(s.hidden, key)
		}
		return was, fmt.Errorf("save hidden locations: %w", err)
	}
	return !was, nil
}

// MarkItems sets the Hidden field on each record in place. Ordering
// and length are untouched; calling it twice is a no-op.
func (s *Store) MarkItems(items []history.Record) {
	for i := range items {
		items[i].Hidden = s.Get(RecordKey(items[i]))
	}
}

// Len returns the number of hidden locations.
func (s *Store) Len() int {
	return len(s.hidden)
}
