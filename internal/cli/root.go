// Package cli wires flags, config, storage, and the TUI together.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/jumpback/internal/config"
)

// Execute builds and runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "jumpback",
		Short:         "Interactive picker for your editor jump history",
		Long:          "Jumpback: browse recent cursor positions, filter and hide entries,\nand print the chosen location as path:line:col.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBrowse,
	}

	flags := root.Flags()
	flags.String("config", defaultConfigPath(), "Path to the JSON config file")
	flags.String("history", "", "Path to the jump history file (overrides config)")
	flags.String("hide-db", "", "Path to the hidden-locations database (overrides config)")
	flags.String("theme", "", "Path to a JSON theme file")
	flags.IntP("offset", "o", 0, "Signed offset to select at startup (negative is back in time)")
	flags.Bool("wrap", true, "Wrap selection movement at the list edges")
	flags.Int("count-timeout", 0, "Pending count expiry in milliseconds (overrides config)")
	flags.Bool("preview", false, "Start with the preview pane open")

	if err := root.Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

// resolveConfig layers the config file and flag overrides over the
// built-in defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	cfg, err := config.LoadFile(cfg, mustGetStringFlag(cmd, "config"))
	if err != nil {
		return cfg, err
	}

	if v := mustGetStringFlag(cmd, "history"); v != "" {
		cfg.HistoryPath = v
	}
	if v := mustGetStringFlag(cmd, "hide-db"); v != "" {
		cfg.HideDBPath = v
	}
	if cmd.Flags().Changed("offset") {
		cfg.Offset, _ = cmd.Flags().GetInt("offset")
	}
	if cmd.Flags().Changed("wrap") {
		cfg.WrapEdges, _ = cmd.Flags().GetBool("wrap")
	}
	if cmd.Flags().Changed("count-timeout") {
		cfg.CountTimeoutMs, _ = cmd.Flags().GetInt("count-timeout")
	}
	if v, _ := cmd.Flags().GetBool("preview"); v {
		cfg.ViewMode = "preview"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(dir, "jumpback", "config.json")
}

func mustGetStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "flag error:", err)
		os.Exit(2)
	}
	return v
}
