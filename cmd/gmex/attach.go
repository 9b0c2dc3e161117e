package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gmex/pkg/types"
)

var attachCmd = &cobra.Command{
	Use:   "attach <id> <key> [file]",
	Short: "Attach a sidecar file to an archived message",
	Long: `Attach stores extra data next to an archived message under the given
sidecar key. Data is read from the file argument, or from stdin when no
file is given. Keys ending in ".json" must contain valid JSON and are
stored pretty-printed; all other keys are stored verbatim.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runAttach,
}

func runAttach(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	id, key := args[0], args[1]

	var data []byte
	if len(args) == 3 {
		data, err = os.ReadFile(args[2])
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	var payload any = data
	if strings.HasSuffix(key, ".json") {
		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return fmt.Errorf("parse JSON payload: %w", err)
		}
		payload = decoded
	}

	if err := store.Attach(id, key, payload); err != nil {
		if errors.Is(err, types.ErrRecordNotFound) {
			return fmt.Errorf("message %q not found", id)
		}
		return fmt.Errorf("attach sidecar: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Attached %q to %s\n", key, id)
	return nil
}
