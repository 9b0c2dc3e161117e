package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gmex/internal/gmail"
	"github.com/mesh-intelligence/gmex/internal/paths"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the Gmail API credential",
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show where the credential file lives and whether it exists",
	Args:  cobra.NoArgs,
	RunE:  runTokenShow,
}

var tokenImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Install a credential file from a file or stdin",
	Long: `Import validates a token JSON document and installs it at the
resolved credential path with owner-only permissions. The document is
read from the file argument, or from stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenImport,
}

func init() {
	tokenCmd.AddCommand(tokenShowCmd)
	tokenCmd.AddCommand(tokenImportCmd)
}

func runTokenShow(cmd *cobra.Command, args []string) error {
	path, err := paths.ResolveTokenPath()
	if err != nil {
		return err
	}

	status := gmail.GetTokenStatus(path)
	if flagJSON {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"path":   status.Path,
			"exists": status.Exists,
			"size":   status.Size,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Token: %s\n", status.Path)
	if status.Exists {
		fmt.Fprintf(cmd.OutOrStdout(), "Status: present (%d bytes)\n", status.Size)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Status: missing")
	}
	return nil
}

func runTokenImport(cmd *cobra.Command, args []string) error {
	path, err := paths.ResolveTokenPath()
	if err != nil {
		return err
	}

	var raw []byte
	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read token file: %w", err)
		}
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	if err := gmail.ImportToken(path, raw); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Token installed at %s\n", path)
	return nil
}
