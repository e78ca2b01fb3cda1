package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jonathan/archive-analyst/internal/analysis"
	"github.com/jonathan/archive-analyst/internal/chunking"
	"github.com/jonathan/archive-analyst/internal/config"
	"github.com/jonathan/archive-analyst/internal/llm"
	"github.com/jonathan/archive-analyst/internal/pipeline"
)

// defaultQuestion drives the analysis when no research question is configured.
const defaultQuestion = "What new information do these documents reveal about the events they describe?"

// defaultConfig returns the baseline configuration applied under config file
// values and CLI flags.
func defaultConfig() config.Config {
	return config.Config{
		DocDir:             "documents",
		OutDir:             "output",
		Question:           defaultQuestion,
		Model:              llm.DefaultModel,
		CallStyle:          string(llm.StyleDirect),
		ChunkSize:          chunking.DefaultChunkSize,
		ChunkOverlap:       chunking.DefaultOverlap,
		Workers:            analysis.DefaultWorkers,
		ArchiveIntervalMS:  1000,
		AnalyzerIntervalMS: 2000,
	}
}

// loadConfigFile loads and validates a config file, or returns a zero config
// when no path was given.
func loadConfigFile(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

// resolveAPIKey fills the API key from the environment when unset and errors
// if none is available.
func resolveAPIKey(cfg *config.Config) error {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	return nil
}

// pipelineOptions converts a merged config into pipeline options.
func pipelineOptions(cfg config.Config) pipeline.RunOptions {
	return pipeline.RunOptions{
		SeedURL:          cfg.SeedURL,
		DocDir:           cfg.DocDir,
		OutDir:           cfg.OutDir,
		Question:         cfg.Question,
		APIKey:           cfg.APIKey,
		Model:            cfg.Model,
		CallStyle:        cfg.CallStyle,
		ChunkSize:        cfg.ChunkSize,
		ChunkOverlap:     cfg.ChunkOverlap,
		Workers:          cfg.Workers,
		ArchiveInterval:  time.Duration(cfg.ArchiveIntervalMS) * time.Millisecond,
		AnalyzerInterval: time.Duration(cfg.AnalyzerIntervalMS) * time.Millisecond,
		Verbose:          cfg.Verbose,
	}
}
