// Package chunking splits document text into overlapping fixed-size windows
// for a bounded-input analyzer.
//
// The unit is the word (whitespace-delimited token): word counts track
// analyzer token budgets closely enough, and word boundaries never split a
// term in half the way a character window can. Character-based chunking is
// deliberately not offered; mixing units changes chunk counts and analyzer
// input sizes.
package chunking

import (
	"fmt"
	"strings"

	"github.com/jonathan/archive-analyst/internal/types"
)

// Default window geometry, sized for a ~4k-token analyzer input bound.
const (
	DefaultChunkSize = 4000
	DefaultOverlap   = 200
)

// ConfigError reports invalid window geometry. It is a configuration error
// surfaced before any work begins, never discovered mid-run.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("chunking config error: %s", e.Message)
}

// Splitter produces overlapping word windows of at most Size words, with
// consecutive windows sharing exactly Overlap words.
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter validates the window geometry and returns a Splitter.
// overlap must be smaller than size or the window would never advance.
func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, &ConfigError{Message: fmt.Sprintf("chunk size must be positive, got %d", size)}
	}
	if overlap < 0 {
		return nil, &ConfigError{Message: fmt.Sprintf("overlap must be non-negative, got %d", overlap)}
	}
	if overlap >= size {
		return nil, &ConfigError{Message: fmt.Sprintf("overlap %d must be smaller than chunk size %d", overlap, size)}
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Split returns the ordered chunk sequence for text. Text at most size words
// long yields a single chunk containing the original text verbatim. The
// window advances by (size - overlap) words per step and the final window is
// clipped at the text end. Chunk order carries narrative context and must be
// preserved through analysis.
func (s *Splitter) Split(text string) []types.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	if len(words) <= s.size {
		return []types.Chunk{{Index: 0, Total: 1, Text: text}}
	}

	step := s.size - s.overlap
	chunks := make([]types.Chunk, 0, (len(words)-s.overlap+step-1)/step)

	pos := 0
	for {
		end := min(pos+s.size, len(words))
		chunks = append(chunks, types.Chunk{
			Index: len(chunks),
			Text:  strings.Join(words[pos:end], " "),
		})
		if end >= len(words) {
			break
		}
		pos += step
	}

	for i := range chunks {
		chunks[i].Total = len(chunks)
	}
	return chunks
}
