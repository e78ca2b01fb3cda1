// Package types provides type definitions for structured data used throughout the archive-analyst system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// DocumentRef identifies a downloadable archive document by its resolved
// absolute URL and the sanitized filename it is stored under locally.
type DocumentRef struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Chunk is one bounded window of a document's text. Consecutive chunks from
// the same document overlap by a fixed number of words so cross-boundary
// context survives analysis. Index is zero-based; Total is the chunk count
// for the whole document.
type Chunk struct {
	Index int
	Total int
	Text  string
}

// DocumentAnalysis holds the ordered per-chunk analyses for one document.
// Failed chunks are dropped, so Chunks may be shorter than the number of
// chunks the document was split into; ChunksFailed records the difference.
type DocumentAnalysis struct {
	Document     string   `json:"document"`
	Chunks       []string `json:"chunks"`
	ChunksFailed int      `json:"chunks_failed,omitempty"`
}

// Combined returns the chunk analyses joined in chunk order, separated by
// blank lines.
func (d *DocumentAnalysis) Combined() string {
	return strings.Join(d.Chunks, "\n\n")
}

// Empty reports whether no chunk of this document produced an analysis.
func (d *DocumentAnalysis) Empty() bool {
	return len(d.Chunks) == 0
}

// HarvestStats counts the outcomes of one crawl run. Every skipped unit of
// work is counted so operators can detect systemic failure from skip rates.
type HarvestStats struct {
	PagesVisited    int `json:"pages_visited"`
	PagesFailed     int `json:"pages_failed"`
	Downloaded      int `json:"downloaded"`
	DownloadsFailed int `json:"downloads_failed"`
	SkippedExisting int `json:"skipped_existing"`
	DuplicateNames  int `json:"duplicate_names"`
}

// AnalysisStats counts the outcomes of one analysis run.
type AnalysisStats struct {
	Documents        int `json:"documents"`
	DocumentsSkipped int `json:"documents_skipped"`
	ChunksAnalyzed   int `json:"chunks_analyzed"`
	ChunksFailed     int `json:"chunks_failed"`
}

// CorpusReport is the final synthesized report for a run.
type CorpusReport struct {
	RunID           string `json:"run_id"`
	GeneratedAt     string `json:"generated_at"` // RFC3339 format
	Body            string `json:"body"`
	SynthesisFailed bool   `json:"synthesis_failed,omitempty"`
}
