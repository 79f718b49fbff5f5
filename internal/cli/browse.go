package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/jumpback/internal/filter"
	"github.com/interpretive-systems/jumpback/internal/hidestore"
	"github.com/interpretive-systems/jumpback/internal/history"
	"github.com/interpretive-systems/jumpback/internal/logging"
	"github.com/interpretive-systems/jumpback/internal/session"
	"github.com/interpretive-systems/jumpback/internal/theme"
	"github.com/interpretive-systems/jumpback/internal/tui"
)

// ErrCancelled is returned when the user leaves without picking a jump.
var ErrCancelled = errors.New("cancelled")

func runBrowse(cmd *cobra.Command, args []string) error {
	if err := logging.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "logging disabled:", err)
	}
	defer logging.Close()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	src := history.NewFileSource(cfg.HistoryPath)
	entries, current, err := src.Load()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	records := history.BuildRecords(entries, current, src.Listed)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve cwd: %w", err)
	}
	fctx := filter.NewContext(currentFile(records), cwd)

	db, err := hidestore.OpenSQLite(cfg.HideDBPath)
	if err != nil {
		return fmt.Errorf("open hide db: %w", err)
	}
	defer db.Close()
	hides, err := hidestore.Open(db)
	if err != nil {
		return err
	}

	km, err := buildKeymap(cfg.Keymap)
	if err != nil {
		return err
	}

	t := theme.DefaultTheme()
	if path := mustGetStringFlag(cmd, "theme"); path != "" {
		t = theme.LoadTheme(path)
	}

	sess := session.New(records, fctx, hides, km, session.Config{
		WrapEdges:      cfg.WrapEdges,
		CountTimeoutMs: cfg.CountTimeoutMs,
		ViewMode:       session.ViewMode(cfg.ViewMode),
		TargetOffset:   cfg.Offset,
	})

	loader := func() ([]history.Record, error) {
		entries, current, err := src.Load()
		if err != nil {
			return nil, err
		}
		return history.BuildRecords(entries, current, src.Listed), nil
	}

	logging.Logger.Info("session starting",
		"records", len(records), "offset", cfg.Offset, "viewMode", cfg.ViewMode)

	picked, err := tui.Run(sess, loader, parentProbe(), t,
		time.Duration(cfg.CountTimeoutMs)*time.Millisecond)
	if err != nil {
		return err
	}
	if picked == nil {
		return ErrCancelled
	}
	fmt.Printf("%s:%d:%d\n", picked.Path, picked.Line, picked.Col)
	return nil
}

// currentFile returns the path of the zero-offset entry, if any. It
// anchors the same-file filter for the whole session.
func currentFile(records []history.Record) string {
	for _, r := range records {
		if r.IsCurrent {
			return r.Path
		}
	}
	return ""
}

// buildKeymap applies config overrides to the default bindings. An
// empty action string unbinds the key.
func buildKeymap(overrides map[string]string) (session.Keymap, error) {
	bindings := session.DefaultBindings()
	for key, action := range overrides {
		if action == "" {
			delete(bindings, key)
			continue
		}
		bindings[key] = action
	}
	return session.BuildKeymap(bindings)
}

// parentProbe reports whether the launching process is still around.
// Editors spawn the picker and read its stdout; once the parent dies
// the session has nobody to report to.
func parentProbe() func() bool {
	ppid := os.Getppid()
	return func() bool {
		return os.Getppid() == ppid
	}
}
