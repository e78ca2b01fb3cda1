// Package analysis runs stored documents through extraction, chunking, and
// per-chunk LLM analysis.
package analysis

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/archive-analyst/internal/chunking"
	"github.com/jonathan/archive-analyst/internal/extraction"
	"github.com/jonathan/archive-analyst/internal/types"
)

// DefaultWorkers bounds concurrent document analysis. The shared analyzer
// limiter paces requests, so workers mostly overlap extraction with waiting.
const DefaultWorkers = 4

// Document is one stored document to analyze.
type Document struct {
	Name string
	Path string
}

// ChunkAnalyzer analyzes a single document excerpt.
type ChunkAnalyzer interface {
	AnalyzeChunk(ctx context.Context, text string) (string, error)
}

// WaitLimiter blocks until the next analyzer request is allowed.
type WaitLimiter interface {
	Wait(ctx context.Context) error
}

// Pipeline turns stored documents into per-document chunk analyses. A chunk
// or document failure is logged and counted, never fatal to the run.
type Pipeline struct {
	extractor extraction.Extractor
	splitter  *chunking.Splitter
	analyzer  ChunkAnalyzer
	limiter   WaitLimiter
	workers   int
	log       io.Writer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLimiter sets the shared analyzer rate limiter.
func WithLimiter(l WaitLimiter) Option {
	return func(p *Pipeline) { p.limiter = l }
}

// WithWorkers sets the number of documents analyzed concurrently.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLog sets the destination for progress and warning output.
func WithLog(w io.Writer) Option {
	return func(p *Pipeline) { p.log = w }
}

// NewPipeline creates a Pipeline.
func NewPipeline(extractor extraction.Extractor, splitter *chunking.Splitter, analyzer ChunkAnalyzer, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor: extractor,
		splitter:  splitter,
		analyzer:  analyzer,
		workers:   DefaultWorkers,
		log:       io.Discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AnalyzeDocument extracts, chunks, and analyzes one document. Chunks whose
// analysis fails are dropped and counted; a document where every chunk fails
// still yields an (empty) analysis so the corpus records it was processed.
// Only extraction failure and context cancellation return an error.
func (p *Pipeline) AnalyzeDocument(ctx context.Context, doc Document) (*types.DocumentAnalysis, error) {
	text, err := p.extractor.Extract(doc.Path)
	if err != nil {
		return nil, err
	}

	chunks := p.splitter.Split(text)
	result := &types.DocumentAnalysis{Document: doc.Name, Chunks: make([]string, 0, len(chunks))}

	for _, chunk := range chunks {
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		out, err := p.analyzer.AnalyzeChunk(ctx, chunk.Text)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Fprintf(p.log, "Warning: analysis failed for %s chunk %d/%d: %v\n",
				doc.Name, chunk.Index+1, chunk.Total, err)
			result.ChunksFailed++
			continue
		}
		result.Chunks = append(result.Chunks, out)
	}

	return result, nil
}

// Run analyzes docs with bounded concurrency and returns the analyses in the
// same order as docs. Documents that fail extraction are skipped and counted;
// the run aborts only on context cancellation.
func (p *Pipeline) Run(ctx context.Context, docs []Document) ([]*types.DocumentAnalysis, *types.AnalysisStats, error) {
	results := make([]*types.DocumentAnalysis, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, doc := range docs {
		g.Go(func() error {
			fmt.Fprintf(p.log, "Analyzing %s\n", doc.Name)

			analysis, err := p.AnalyzeDocument(gctx, doc)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				fmt.Fprintf(p.log, "Warning: skipping %s: %v\n", doc.Name, err)
				return nil
			}
			results[i] = analysis
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats := &types.AnalysisStats{}
	analyses := make([]*types.DocumentAnalysis, 0, len(docs))
	for _, r := range results {
		if r == nil {
			stats.DocumentsSkipped++
			continue
		}
		stats.Documents++
		stats.ChunksAnalyzed += len(r.Chunks)
		stats.ChunksFailed += r.ChunksFailed
		analyses = append(analyses, r)
	}

	return analyses, stats, nil
}
