package hidestore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// SQLite persists hidden location keys in a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and
// applies the schema.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create hide db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open hide db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	schema := `
	CREATE TABLE IF NOT EXISTS hidden_locations (
		key        TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate hide db: %w", err)
	}
	return &SQLite{db: db}, nil
}

// LoadAll returns every persisted hidden location key.
func (s *SQLite) LoadAll() (map[string]struct{}, error) {
	rows, err := s.db.Query("SELECT key FROM hidden_locations")
	if err != nil {
		return nil, fmt.Errorf("query hidden locations: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan hidden location: %w", err)
		}
		keys[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hidden locations: %w", err)
	}
	return keys, nil
}

// SaveAll replaces the persisted set with keys, atomically.
func (s *SQLite) SaveAll(keys map[string]struct{}) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM hidden_locations"); err != nil {
		return fmt.Errorf("clear hidden locations: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO hidden_locations (key) VALUES (?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for key := range keys {
		if _, err := stmt.Exec(key); err != nil {
			return fmt.Errorf("insert hidden location: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
