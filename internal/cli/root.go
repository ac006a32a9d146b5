package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `   _ _ _
  (_) | |__
  | | | '_ \
  | | | |_) |
 _/ |_|_.__/
|__/`

var rootCmd = &cobra.Command{
	Use:   "jlb",
	Short: "JSON-lines dataset browser",
	Long: asciiLogo + `

jlb indexes a JSON-lines dataset once, then serves individual records by
index without rescanning the file. Browse records interactively, summarize
a dataset, or bulk-load it into PostgreSQL for SQL-side analysis.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  12 - Dataset not found or unreadable
  13 - Database load failed`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for jlb")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
