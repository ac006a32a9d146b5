package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireDatasetPath validates that exactly one dataset_path argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireDatasetPath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <dataset_path>

Usage: %s <dataset_path>

Example:
  %s ./data/records.jsonl`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
