package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/archive-analyst/internal/prompts"
)

const promptFile = "analysis.json"

// GeminiAnalyzer implements Analyzer for Google Gemini.
type GeminiAnalyzer struct {
	client *genai.Client
	opts   Options

	// Templates still carry a {{.Text}} placeholder. In chained style the
	// research question is already bound in.
	chunkTemplate     string
	synthesisTemplate string
}

// NewGeminiAnalyzer creates a Gemini-backed Analyzer.
func NewGeminiAnalyzer(ctx context.Context, apiKey string, opts Options) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	opts = opts.withDefaults()

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	a := &GeminiAnalyzer{client: client, opts: opts}
	if err := a.loadTemplates(); err != nil {
		client.Close()
		return nil, err
	}
	return a, nil
}

func (a *GeminiAnalyzer) loadTemplates() error {
	chunk, err := prompts.Get(promptFile, "chunk-analysis")
	if err != nil {
		return err
	}
	synthesis, err := prompts.Get(promptFile, "corpus-synthesis")
	if err != nil {
		return err
	}

	if a.opts.Style == StyleChained {
		bound := map[string]string{"Question": a.opts.Question}
		chunk = prompts.Format(chunk, bound)
		synthesis = prompts.Format(synthesis, bound)
	}

	a.chunkTemplate = chunk
	a.synthesisTemplate = synthesis
	return nil
}

// render fills the remaining placeholders for one call.
func (a *GeminiAnalyzer) render(template, text string) string {
	data := map[string]string{"Text": text}
	if a.opts.Style == StyleDirect {
		data["Question"] = a.opts.Question
	}
	return prompts.Format(template, data)
}

// AnalyzeChunk analyzes a single document excerpt.
func (a *GeminiAnalyzer) AnalyzeChunk(ctx context.Context, text string) (string, error) {
	return a.generate(ctx, a.render(a.chunkTemplate, text), a.opts.ChunkTemperature)
}

// Synthesize combines labeled document analyses into one report.
func (a *GeminiAnalyzer) Synthesize(ctx context.Context, text string) (string, error) {
	return a.generate(ctx, a.render(a.synthesisTemplate, text), a.opts.SynthesisTemperature)
}

// Close releases resources held by the analyzer.
func (a *GeminiAnalyzer) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

func (a *GeminiAnalyzer) generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	model := a.client.GenerativeModel(a.opts.Model)
	model.SetTemperature(temperature)
	if a.opts.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(a.opts.MaxOutputTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
