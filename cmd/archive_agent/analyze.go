package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/archive-analyst/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the stored documents and synthesize a corpus report",
	Long: `Extracts the text of every stored document, splits it into overlapping word
windows, analyzes each window against the research question, and synthesizes
one corpus-wide report. Writes timestamped JSON and Markdown artifacts to the
output directory.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath string
	analyzeDocDir     string
	analyzeOutDir     string
	analyzeQuestion   string
	analyzeModel      string
	analyzeCallStyle  string
	analyzeChunkSize  int
	analyzeOverlap    int
	analyzeWorkers    int
	analyzeIntervalMS int
	analyzeAPIKey     string
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCmd.Flags().StringVar(&analyzeDocDir, "doc-dir", "", "Directory holding downloaded documents (default: documents)")
	analyzeCmd.Flags().StringVar(&analyzeOutDir, "out-dir", "", "Directory for run artifacts (default: output)")
	analyzeCmd.Flags().StringVarP(&analyzeQuestion, "question", "q", "", "Research question driving the analysis")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Analyzer model name (default: gemini-2.5-flash)")
	analyzeCmd.Flags().StringVar(&analyzeCallStyle, "call-style", "", "Prompt assembly style: direct or chained (default: direct)")
	analyzeCmd.Flags().IntVar(&analyzeChunkSize, "chunk-size", 0, "Window size in words (default: 4000)")
	analyzeCmd.Flags().IntVar(&analyzeOverlap, "chunk-overlap", 0, "Overlap between consecutive windows in words (default: 200)")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Concurrent document analyses (default: 4)")
	analyzeCmd.Flags().IntVar(&analyzeIntervalMS, "analyzer-interval-ms", 0, "Minimum milliseconds between analyzer requests (default: 2000)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfigFile(analyzeConfigPath)
	if err != nil {
		return err
	}

	// Command-line args take priority over config file values
	if cmd.Flags().Changed("doc-dir") {
		cfg.DocDir = analyzeDocDir
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.OutDir = analyzeOutDir
	}
	if cmd.Flags().Changed("question") {
		cfg.Question = analyzeQuestion
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = analyzeModel
	}
	if cmd.Flags().Changed("call-style") {
		cfg.CallStyle = analyzeCallStyle
	}
	if cmd.Flags().Changed("chunk-size") {
		cfg.ChunkSize = analyzeChunkSize
	}
	if cmd.Flags().Changed("chunk-overlap") {
		cfg.ChunkOverlap = analyzeOverlap
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = analyzeWorkers
	}
	if cmd.Flags().Changed("analyzer-interval-ms") {
		cfg.AnalyzerIntervalMS = analyzeIntervalMS
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}

	cfg = cfg.MergeWithDefaults(defaultConfig())
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := resolveAPIKey(&cfg); err != nil {
		return err
	}

	_, err = pipeline.RunAnalysis(context.Background(), pipelineOptions(cfg))
	return err
}
