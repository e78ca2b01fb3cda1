// Package llm provides the Analyzer abstraction over LLM providers used to
// analyze document chunks and synthesize corpus-level reports.
package llm

import "context"

// CallStyle selects how prompts are assembled before being sent to the model.
type CallStyle string

const (
	// StyleDirect renders the full prompt template on every call.
	StyleDirect CallStyle = "direct"
	// StyleChained binds the research question into the templates once at
	// construction and fills in only the document text per call.
	StyleChained CallStyle = "chained"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Default generation temperatures. Chunk analysis favors fidelity to the
// excerpt; synthesis gets a little more room to organize the material.
const (
	DefaultChunkTemperature     = 0.2
	DefaultSynthesisTemperature = 0.3
)

// Analyzer analyzes document excerpts and synthesizes analyses into a report.
type Analyzer interface {
	// AnalyzeChunk analyzes a single document excerpt against the
	// configured research question.
	AnalyzeChunk(ctx context.Context, text string) (string, error)
	// Synthesize combines the labeled per-document analyses into a single
	// corpus-level report.
	Synthesize(ctx context.Context, text string) (string, error)
	// Close releases any resources held by the analyzer.
	Close() error
}

// Options configures an Analyzer.
type Options struct {
	// Model is the provider model name. Defaults to DefaultModel.
	Model string
	// Question is the research question driving the analysis.
	Question string
	// Style selects prompt assembly. Defaults to StyleDirect.
	Style CallStyle
	// ChunkTemperature is the generation temperature for chunk analysis.
	ChunkTemperature float32
	// SynthesisTemperature is the generation temperature for synthesis.
	SynthesisTemperature float32
	// MaxOutputTokens caps the response length when positive.
	MaxOutputTokens int32
}

func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.Style == "" {
		o.Style = StyleDirect
	}
	if o.ChunkTemperature == 0 {
		o.ChunkTemperature = DefaultChunkTemperature
	}
	if o.SynthesisTemperature == 0 {
		o.SynthesisTemperature = DefaultSynthesisTemperature
	}
	return o
}
