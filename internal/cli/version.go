package cli

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		printVersionInfo()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// resolveVersionInfo falls back to module build info when the binary was
// installed with `go install` and ldflags were not set.
func resolveVersionInfo() (string, string) {
	if version != "dev" {
		return version, commit
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit
	}

	v := version
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		v = info.Main.Version
	}

	c := commit
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			c = setting.Value
			break
		}
	}
	return v, c
}

// printVersionInfo prints version information.
// Version string goes to stdout for pipeline consumption.
// Decorative content goes to stderr.
func printVersionInfo() {
	fmt.Fprintln(os.Stderr, asciiLogo)
	fmt.Fprintln(os.Stderr)
	v, c := resolveVersionInfo()
	// Machine-parseable version to stdout
	fmt.Printf("jlb %s (%s, %s) %s/%s\n", v, c, date, runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(os.Stderr, "JSON-lines dataset browser")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Repository: https://github.com/vvka-141/jlb")
}
