package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/archive-analyst/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Harvest the archive and analyze the full corpus end-to-end",
	Long: `Runs the complete pipeline: crawl the archive index and download every
document, then extract, chunk, and analyze the stored corpus and synthesize
the final research report.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath         string
	runSeedURL            string
	runDocDir             string
	runOutDir             string
	runQuestion           string
	runModel              string
	runCallStyle          string
	runChunkSize          int
	runOverlap            int
	runWorkers            int
	runArchiveIntervalMS  int
	runAnalyzerIntervalMS int
	runAPIKey             string
	runVerbose            bool
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	runCommand.Flags().StringVarP(&runSeedURL, "seed-url", "u", "", "Archive listing page to start crawling from")
	runCommand.Flags().StringVar(&runDocDir, "doc-dir", "", "Directory for downloaded documents (default: documents)")
	runCommand.Flags().StringVar(&runOutDir, "out-dir", "", "Directory for run artifacts (default: output)")
	runCommand.Flags().StringVarP(&runQuestion, "question", "q", "", "Research question driving the analysis")
	runCommand.Flags().StringVar(&runModel, "model", "", "Analyzer model name (default: gemini-2.5-flash)")
	runCommand.Flags().StringVar(&runCallStyle, "call-style", "", "Prompt assembly style: direct or chained (default: direct)")
	runCommand.Flags().IntVar(&runChunkSize, "chunk-size", 0, "Window size in words (default: 4000)")
	runCommand.Flags().IntVar(&runOverlap, "chunk-overlap", 0, "Overlap between consecutive windows in words (default: 200)")
	runCommand.Flags().IntVar(&runWorkers, "workers", 0, "Concurrent document analyses (default: 4)")
	runCommand.Flags().IntVar(&runArchiveIntervalMS, "archive-interval-ms", 0, "Minimum milliseconds between requests to the archive host (default: 1000)")
	runCommand.Flags().IntVar(&runAnalyzerIntervalMS, "analyzer-interval-ms", 0, "Minimum milliseconds between analyzer requests (default: 2000)")
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfigFile(runConfigPath)
	if err != nil {
		return err
	}

	// Command-line args take priority over config file values
	if cmd.Flags().Changed("seed-url") {
		cfg.SeedURL = runSeedURL
	}
	if cmd.Flags().Changed("doc-dir") {
		cfg.DocDir = runDocDir
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.OutDir = runOutDir
	}
	if cmd.Flags().Changed("question") {
		cfg.Question = runQuestion
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = runModel
	}
	if cmd.Flags().Changed("call-style") {
		cfg.CallStyle = runCallStyle
	}
	if cmd.Flags().Changed("chunk-size") {
		cfg.ChunkSize = runChunkSize
	}
	if cmd.Flags().Changed("chunk-overlap") {
		cfg.ChunkOverlap = runOverlap
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = runWorkers
	}
	if cmd.Flags().Changed("archive-interval-ms") {
		cfg.ArchiveIntervalMS = runArchiveIntervalMS
	}
	if cmd.Flags().Changed("analyzer-interval-ms") {
		cfg.AnalyzerIntervalMS = runAnalyzerIntervalMS
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	cfg = cfg.MergeWithDefaults(defaultConfig())
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.SeedURL == "" {
		return fmt.Errorf("--seed-url is required (via flag or config)")
	}
	if err := resolveAPIKey(&cfg); err != nil {
		return err
	}

	return pipeline.Run(context.Background(), pipelineOptions(cfg))
}
