// Package config resolves the flat runtime configuration from
// defaults, an optional JSON config file, and command-line flags.
//
// Validation is strict: a malformed field aborts setup with an error
// naming the field and the value's actual type. Nothing is silently
// corrected.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config is the fully resolved configuration handed to the session.
type Config struct {
	HistoryPath    string
	HideDBPath     string
	Offset         int
	WrapEdges      bool
	CountTimeoutMs int
	ViewMode       string
	Keymap         map[string]string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HistoryPath:    defaultStatePath("history.json"),
		HideDBPath:     defaultStatePath("hide.db"),
		WrapEdges:      true,
		CountTimeoutMs: 800,
		ViewMode:       "list",
		Keymap:         map[string]string{},
	}
}

// fileConfig is the raw on-disk shape. Raw messages let validation
// report the actual JSON type of a malformed field instead of a bare
// decode failure.
type fileConfig struct {
	HistoryPath    *string                    `json:"historyPath"`
	HideDBPath     *string                    `json:"hideDbPath"`
	WrapEdges      *bool                      `json:"wrapEdges"`
	CountTimeoutMs *int                       `json:"countTimeoutMs"`
	ViewMode       *string                    `json:"viewMode"`
	Keymap         map[string]json.RawMessage `json:"keymap"`
}

// LoadFile merges the JSON config at path over base. A missing file
// leaves base untouched.
func LoadFile(base Config, path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(b, &fc); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.HistoryPath != nil {
		base.HistoryPath = *fc.HistoryPath
	}
	if fc.HideDBPath != nil {
		base.HideDBPath = *fc.HideDBPath
	}
	if fc.WrapEdges != nil {
		base.WrapEdges = *fc.WrapEdges
	}
	if fc.CountTimeoutMs != nil {
		base.CountTimeoutMs = *fc.CountTimeoutMs
	}
	if fc.ViewMode != nil {
		base.ViewMode = *fc.ViewMode
	}
	for key, raw := range fc.Keymap {
		var action string
		if err := json.Unmarshal(raw, &action); err != nil {
			return base, fmt.Errorf("keymap[%q]: expected string, got %s", key, jsonTypeName(raw))
		}
		base.Keymap[key] = action
	}
	return base, nil
}

// Validate checks the resolved configuration.
func (c Config) Validate() error {
	switch c.ViewMode {
	case "list", "preview":
	default:
		return fmt.Errorf("viewMode: expected \"list\" or \"preview\", got %q", c.ViewMode)
	}
	if c.CountTimeoutMs <= 0 {
		return fmt.Errorf("countTimeoutMs: expected a positive integer, got %d", c.CountTimeoutMs)
	}
	if c.HistoryPath == "" {
		return fmt.Errorf("historyPath: expected a file path, got empty string")
	}
	if c.HideDBPath == "" {
		return fmt.Errorf("hideDbPath: expected a file path, got empty string")
	}
	return nil
}

// jsonTypeName names the JSON type of a raw value for error messages.
func jsonTypeName(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "empty value"
	}
	switch s[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

func defaultStatePath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "jumpback", name)
}
