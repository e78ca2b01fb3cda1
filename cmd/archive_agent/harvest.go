package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/archive-analyst/internal/pipeline"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Crawl the archive index and download every discovered document",
	Long: `Walks the paginated archive index breadth-first from the seed URL, downloading
each linked document exactly once. Documents already present in the document
directory are skipped, so an interrupted harvest can be re-run safely.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runHarvestCmd,
}

var (
	harvestConfigPath string
	harvestSeedURL    string
	harvestDocDir     string
	harvestOutDir     string
	harvestIntervalMS int
	harvestVerbose    bool
)

func init() {
	harvestCmd.Flags().StringVar(&harvestConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	harvestCmd.Flags().StringVarP(&harvestSeedURL, "seed-url", "u", "", "Archive listing page to start crawling from")
	harvestCmd.Flags().StringVar(&harvestDocDir, "doc-dir", "", "Directory for downloaded documents (default: documents)")
	harvestCmd.Flags().StringVar(&harvestOutDir, "out-dir", "", "Directory for run artifacts (default: output)")
	harvestCmd.Flags().IntVar(&harvestIntervalMS, "archive-interval-ms", 0, "Minimum milliseconds between requests to the archive host (default: 1000)")
	harvestCmd.Flags().BoolVarP(&harvestVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(harvestCmd)
}

func runHarvestCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfigFile(harvestConfigPath)
	if err != nil {
		return err
	}

	// Command-line args take priority over config file values
	if cmd.Flags().Changed("seed-url") {
		cfg.SeedURL = harvestSeedURL
	}
	if cmd.Flags().Changed("doc-dir") {
		cfg.DocDir = harvestDocDir
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.OutDir = harvestOutDir
	}
	if cmd.Flags().Changed("archive-interval-ms") {
		cfg.ArchiveIntervalMS = harvestIntervalMS
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = harvestVerbose
	}

	cfg = cfg.MergeWithDefaults(defaultConfig())
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.SeedURL == "" {
		return fmt.Errorf("--seed-url is required (via flag or config)")
	}

	_, err = pipeline.RunHarvest(context.Background(), pipelineOptions(cfg))
	return err
}
