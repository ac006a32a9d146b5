package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/jlb/internal/dataset"
	"github.com/vvka-141/jlb/internal/stats"
	"github.com/vvka-141/jlb/pkg/jlb"
)

var statsCmd = &cobra.Command{
	Use:   "stats <dataset_path>",
	Short: "Summarize a dataset",
	Long: `Stats reads every record and reports totals, top-level key frequencies,
the distribution of value kinds, the line numbers of records that are not
valid JSON, and a random sample of record previews.

Malformed lines are reported, not fatal: stats describes a dirty dataset
rather than refusing it.

Examples:
  # Summarize a dataset
  jlb stats ./data/records.jsonl

  # More sample previews, reproducible selection
  jlb stats ./data/records.jsonl --sample 10 --seed 42`,
	Args: RequireDatasetPath,
	RunE: runStats,
}

type statsFlagValues struct {
	samples int
	seed    uint64
}

var statsFlags statsFlagValues

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().IntVar(&statsFlags.samples, "sample", jlb.DefaultStatsSampleSize,
		"Number of random record previews in the report")
	statsCmd.Flags().Uint64Var(&statsFlags.seed, "seed", 0,
		"Seed for deterministic sampling (0 uses a random seed)")
}

func runStats(cmd *cobra.Command, args []string) error {
	statsConfig := jlb.StatsConfig{
		DatasetPath: args[0],
		SampleSize:  statsFlags.samples,
		Seed:        statsFlags.seed,
		Verbose:     getVerboseFlag(cmd),
	}
	if err := statsConfig.Validate(); err != nil {
		return err
	}

	ds, err := dataset.Open(statsConfig.DatasetPath)
	if err != nil {
		return err
	}
	defer ds.Close()

	report, err := stats.Collect(ds, statsConfig)
	if err != nil {
		return err
	}

	report.Write(os.Stdout)
	return nil
}
