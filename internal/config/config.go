// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Harvest
	SeedURL string `json:"seed_url,omitempty" validate:"omitempty,url"` // Archive listing page to start crawling from
	DocDir  string `json:"doc_dir,omitempty"`                           // Directory for downloaded documents
	OutDir  string `json:"out_dir,omitempty"`                           // Directory for run artifacts

	// Analysis
	Question     string `json:"question,omitempty"`                                       // Research question driving the analysis
	Model        string `json:"model,omitempty"`                                          // Analyzer model name
	CallStyle    string `json:"call_style,omitempty" validate:"omitempty,oneof=direct chained"` // Prompt assembly style
	ChunkSize    int    `json:"chunk_size,omitempty" validate:"omitempty,gt=0"`           // Window size in words
	ChunkOverlap int    `json:"chunk_overlap,omitempty" validate:"omitempty,gte=0"`       // Overlap between consecutive windows in words
	Workers      int    `json:"workers,omitempty" validate:"omitempty,gt=0"`              // Concurrent document analyses

	// Pacing, in milliseconds between consecutive requests
	ArchiveIntervalMS  int `json:"archive_interval_ms,omitempty" validate:"omitempty,gte=0"`
	AnalyzerIntervalMS int `json:"analyzer_interval_ms,omitempty" validate:"omitempty,gte=0"`

	// Behavior
	APIKey  string `json:"api_key,omitempty"` // Gemini API key
	Verbose bool   `json:"verbose,omitempty"` // Print detailed progress information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// A window that never advances would loop forever.
	if c.ChunkSize > 0 && c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("config error: 'chunk_overlap' (%d) must be smaller than 'chunk_size' (%d)",
			c.ChunkOverlap, c.ChunkSize)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.SeedURL == "" {
		result.SeedURL = defaults.SeedURL
	}
	if result.DocDir == "" {
		result.DocDir = defaults.DocDir
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.Question == "" {
		result.Question = defaults.Question
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.CallStyle == "" {
		result.CallStyle = defaults.CallStyle
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}

	// Int fields: use default if zero
	if result.ChunkSize == 0 {
		result.ChunkSize = defaults.ChunkSize
	}
	if result.ChunkOverlap == 0 {
		result.ChunkOverlap = defaults.ChunkOverlap
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.ArchiveIntervalMS == 0 {
		result.ArchiveIntervalMS = defaults.ArchiveIntervalMS
	}
	if result.AnalyzerIntervalMS == 0 {
		result.AnalyzerIntervalMS = defaults.AnalyzerIntervalMS
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
