package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vvka-141/jlb/internal/browse"
	"github.com/vvka-141/jlb/internal/config"
	"github.com/vvka-141/jlb/internal/dataset"
	"github.com/vvka-141/jlb/internal/logging"
	"github.com/vvka-141/jlb/internal/render"
	"github.com/vvka-141/jlb/pkg/jlb"
)

var browseCmd = &cobra.Command{
	Use:   "browse <dataset_path>",
	Short: "Browse a JSON-lines dataset interactively",
	Long: `Browse indexes the dataset once, then serves records by index from an
interactive prompt without rescanning the file.

At the prompt, enter:
  <index>    Show the record at that zero-based index
  random     Show a uniformly random record
  quit       Exit the session

Blank lines in the dataset are skipped and do not count as records.
Records are pretty-printed down to --depth nesting levels; deeper values
are collapsed to a single compact line.

Examples:
  # Browse a dataset
  jlb browse ./data/records.jsonl

  # Expand three levels of nesting, no ANSI colors
  jlb browse ./data/records.jsonl --depth 3 --no-color

  # Reproducible 'random' selections
  jlb browse ./data/records.jsonl --seed 42`,
	Args: RequireDatasetPath,
	RunE: runBrowse,
}

type browseFlagValues struct {
	depth   int
	noColor bool
	seed    uint64
}

var browseFlags browseFlagValues

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().IntVar(&browseFlags.depth, "depth", jlb.DefaultRenderDepth,
		"Nesting level below which values are rendered on one line")
	browseCmd.Flags().BoolVar(&browseFlags.noColor, "no-color", false,
		"Disable ANSI styling")
	browseCmd.Flags().Uint64Var(&browseFlags.seed, "seed", 0,
		"Seed for deterministic 'random' selection (0 uses a random seed)")
}

// buildBrowseConfig merges flags with jlb.yaml defaults from the dataset
// directory. Flags take precedence over the file.
func buildBrowseConfig(cmd *cobra.Command, datasetPath string, verbose bool) (jlb.BrowseConfig, error) {
	browseConfig := jlb.BrowseConfig{
		DatasetPath: datasetPath,
		RenderDepth: browseFlags.depth,
		NoColor:     browseFlags.noColor,
		Seed:        browseFlags.seed,
		Verbose:     verbose,
	}

	projectCfg, err := config.Load(filepath.Dir(datasetPath))
	if err != nil && err != config.ErrConfigNotFound {
		return jlb.BrowseConfig{}, fmt.Errorf("load %s: %w", config.ConfigFileName, err)
	}
	if projectCfg != nil {
		if !cmd.Flags().Changed("depth") && projectCfg.Browse.Depth > 0 {
			browseConfig.RenderDepth = projectCfg.Browse.Depth
		}
		if !cmd.Flags().Changed("no-color") && projectCfg.Browse.NoColor {
			browseConfig.NoColor = true
		}
	}

	if err := browseConfig.Validate(); err != nil {
		return jlb.BrowseConfig{}, err
	}
	return browseConfig, nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	browseConfig, err := buildBrowseConfig(cmd, args[0], verbose)
	if err != nil {
		return err
	}

	var opts []dataset.Option
	if browseConfig.Seed != 0 {
		opts = append(opts, dataset.WithSeed(browseConfig.Seed))
	}

	ds, err := dataset.Open(browseConfig.DatasetPath, opts...)
	if err != nil {
		return err
	}
	defer ds.Close()

	color := !browseConfig.NoColor && os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stdout.Fd()))
	renderer := render.New(browseConfig.RenderDepth, color)
	logger := logging.NewConsoleLogger(verbose)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	session := browse.NewSession(ds, renderer, os.Stdin, os.Stdout, logger)
	return session.Run(ctx)
}
