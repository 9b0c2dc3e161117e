package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration directory and archive",
	Long: `Init creates the configuration directory with a default config.yaml
and the archive data directory, then prints the effective configuration.
Both are safe to run repeatedly; existing files are left alone.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	effective, err := yaml.Marshal(map[string]any{
		cfgKeyQuery:   configQuery,
		cfgKeyLimit:   configLimit,
		cfgKeyDataDir: store.Root(),
	})
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config:  %s\n", filepath.Join(configDir, configFileExt))
	fmt.Fprintf(cmd.OutOrStdout(), "Archive: %s\n\n", store.Root())
	fmt.Fprint(cmd.OutOrStdout(), string(effective))
	return nil
}
