package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gmex/internal/paths"
	"github.com/mesh-intelligence/gmex/pkg/gmex"
)

const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagLogLevel  string
)

// Values loaded from config.yaml by the persistent pre-run hook.
var (
	configDataDir string
	configQuery   string
	configLimit   int
)

var rootCmd = &cobra.Command{
	Use:   "gmex",
	Short: "Archive Gmail messages as plain files",
	Long: `gmex extracts email messages into a local archive of plain files.

Each message is stored as a date-stamped metadata file plus a JSON body,
so the archive can be listed, inspected, and exported with nothing but
the filesystem. Messages arrive either from the Gmail API (sync) or from
a local mbox file (import).`,
	Version:       gmex.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configDataDir = cfg.GetString(cfgKeyDataDir)
		configQuery = cfg.GetString(cfgKeyQuery)
		configLimit = cfg.GetInt(cfgKeyLimit)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ./"+paths.DefaultConfigDirName+")")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "archive data directory (overrides config and environment)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "print machine-readable JSON output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(sidecarCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
}

func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

func setupLogger() {
	var level slog.Level
	switch strings.ToLower(flagLogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
