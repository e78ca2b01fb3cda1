package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentAnalysis_Combined(t *testing.T) {
	analysis := &DocumentAnalysis{
		Document: "doc104-10001-10002.pdf",
		Chunks:   []string{"first chunk analysis", "second chunk analysis"},
	}

	assert.Equal(t, "first chunk analysis\n\nsecond chunk analysis", analysis.Combined())
}

func TestDocumentAnalysis_Combined_SingleChunk(t *testing.T) {
	analysis := &DocumentAnalysis{
		Document: "report.pdf",
		Chunks:   []string{"only chunk"},
	}

	assert.Equal(t, "only chunk", analysis.Combined())
}

func TestDocumentAnalysis_Empty(t *testing.T) {
	withChunks := &DocumentAnalysis{Document: "a.pdf", Chunks: []string{"x"}}
	assert.False(t, withChunks.Empty())

	// Every chunk failed: recorded but empty.
	allFailed := &DocumentAnalysis{Document: "b.pdf", ChunksFailed: 3}
	assert.True(t, allFailed.Empty())
	assert.Equal(t, "", allFailed.Combined())
}
