package aggregate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/archive-analyst/internal/types"
)

type fakeSynthesizer struct {
	input string
	fail  bool
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text string) (string, error) {
	f.input = text
	if f.fail {
		return "", errors.New("model overloaded")
	}
	return "corpus report", nil
}

func TestBuildCombinedInput(t *testing.T) {
	analyses := []*types.DocumentAnalysis{
		{Document: "a.pdf", Chunks: []string{"finding one", "finding two"}},
		{Document: "b.pdf", Chunks: []string{"finding three"}},
	}

	input := BuildCombinedInput(analyses)

	assert.Contains(t, input, "=== ANALYSIS OF DOCUMENT: a.pdf ===")
	assert.Contains(t, input, "=== ANALYSIS OF DOCUMENT: b.pdf ===")
	assert.Contains(t, input, "finding one\n\nfinding two")
	assert.Less(t, strings.Index(input, "a.pdf"), strings.Index(input, "b.pdf"))
}

func TestBuildCombinedInput_SkipsEmptyAnalyses(t *testing.T) {
	analyses := []*types.DocumentAnalysis{
		{Document: "a.pdf", Chunks: []string{"finding"}},
		{Document: "empty.pdf", ChunksFailed: 3},
	}

	input := BuildCombinedInput(analyses)

	assert.Contains(t, input, "a.pdf")
	assert.NotContains(t, input, "empty.pdf")
}

func TestSynthesize(t *testing.T) {
	synth := &fakeSynthesizer{}
	agg := NewAggregator(synth, nil)

	report := agg.Synthesize(context.Background(), "run-1", []*types.DocumentAnalysis{
		{Document: "a.pdf", Chunks: []string{"finding"}},
	})

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, "corpus report", report.Body)
	assert.False(t, report.SynthesisFailed)
	assert.NotEmpty(t, report.GeneratedAt)
	assert.Contains(t, synth.input, "a.pdf")
}

func TestSynthesize_FailureStillProducesReport(t *testing.T) {
	synth := &fakeSynthesizer{fail: true}
	var log strings.Builder
	agg := NewAggregator(synth, &log)

	report := agg.Synthesize(context.Background(), "run-1", []*types.DocumentAnalysis{
		{Document: "a.pdf", Chunks: []string{"finding"}},
	})

	require.NotNil(t, report)
	assert.True(t, report.SynthesisFailed)
	assert.Equal(t, failureBody, report.Body)
	assert.Contains(t, log.String(), "synthesis failed")
}

func TestSynthesize_NoAnalyses(t *testing.T) {
	synth := &fakeSynthesizer{}
	agg := NewAggregator(synth, nil)

	report := agg.Synthesize(context.Background(), "run-1", nil)

	require.NotNil(t, report)
	assert.False(t, report.SynthesisFailed)
	assert.Empty(t, synth.input)
	assert.Contains(t, report.Body, "No document analyses")
}
