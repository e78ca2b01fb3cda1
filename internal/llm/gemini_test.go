package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_WithDefaults(t *testing.T) {
	opts := Options{}.withDefaults()

	assert.Equal(t, DefaultModel, opts.Model)
	assert.Equal(t, StyleDirect, opts.Style)
	assert.InDelta(t, DefaultChunkTemperature, opts.ChunkTemperature, 0.001)
	assert.InDelta(t, DefaultSynthesisTemperature, opts.SynthesisTemperature, 0.001)
}

func TestOptions_WithDefaults_KeepsExplicitValues(t *testing.T) {
	opts := Options{
		Model:                "gemini-2.5-pro",
		Style:                StyleChained,
		ChunkTemperature:     0.7,
		SynthesisTemperature: 0.9,
		MaxOutputTokens:      4096,
	}.withDefaults()

	assert.Equal(t, "gemini-2.5-pro", opts.Model)
	assert.Equal(t, StyleChained, opts.Style)
	assert.InDelta(t, 0.7, opts.ChunkTemperature, 0.001)
	assert.InDelta(t, 0.9, opts.SynthesisTemperature, 0.001)
	assert.Equal(t, int32(4096), opts.MaxOutputTokens)
}

func TestLoadTemplates_DirectKeepsQuestionPlaceholder(t *testing.T) {
	a := &GeminiAnalyzer{opts: Options{Style: StyleDirect, Question: "What happened?"}.withDefaults()}
	require.NoError(t, a.loadTemplates())

	assert.Contains(t, a.chunkTemplate, "{{.Question}}")
	assert.Contains(t, a.chunkTemplate, "{{.Text}}")

	rendered := a.render(a.chunkTemplate, "excerpt body")
	assert.Contains(t, rendered, "What happened?")
	assert.Contains(t, rendered, "excerpt body")
	assert.NotContains(t, rendered, "{{.")
}

func TestLoadTemplates_ChainedBindsQuestionOnce(t *testing.T) {
	a := &GeminiAnalyzer{opts: Options{Style: StyleChained, Question: "What happened?"}.withDefaults()}
	require.NoError(t, a.loadTemplates())

	assert.NotContains(t, a.chunkTemplate, "{{.Question}}")
	assert.Contains(t, a.chunkTemplate, "What happened?")
	assert.Contains(t, a.chunkTemplate, "{{.Text}}")

	rendered := a.render(a.synthesisTemplate, "combined analyses")
	assert.Contains(t, rendered, "combined analyses")
	assert.NotContains(t, rendered, "{{.")
}

func TestNewGeminiAnalyzer_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiAnalyzer(context.Background(), "", Options{})
	assert.Error(t, err)
}

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text("first "), genai.Text("second")},
				},
			},
		},
	}

	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "first second", text)
}

func TestExtractTextFromResponse_Empty(t *testing.T) {
	_, err := extractTextFromResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	})
	assert.Error(t, err)
}
