// Package pipeline provides the high-level orchestration for harvesting an
// archive and analyzing the harvested corpus.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/archive-analyst/internal/aggregate"
	"github.com/jonathan/archive-analyst/internal/analysis"
	"github.com/jonathan/archive-analyst/internal/chunking"
	"github.com/jonathan/archive-analyst/internal/crawling"
	"github.com/jonathan/archive-analyst/internal/download"
	"github.com/jonathan/archive-analyst/internal/extraction"
	"github.com/jonathan/archive-analyst/internal/fetch"
	"github.com/jonathan/archive-analyst/internal/llm"
	"github.com/jonathan/archive-analyst/internal/observability"
	"github.com/jonathan/archive-analyst/internal/ratelimit"
	"github.com/jonathan/archive-analyst/internal/report"
	"github.com/jonathan/archive-analyst/internal/store"
	"github.com/jonathan/archive-analyst/internal/types"
)

// documentExt is the document type harvested from the archive.
const documentExt = ".pdf"

// Default pacing between consecutive requests to each remote service.
const (
	DefaultArchiveInterval  = time.Second
	DefaultAnalyzerInterval = 2 * time.Second
)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	SeedURL          string
	DocDir           string
	OutDir           string
	Question         string
	APIKey           string
	Model            string
	CallStyle        string
	ChunkSize        int
	ChunkOverlap     int
	Workers          int
	ArchiveInterval  time.Duration
	AnalyzerInterval time.Duration
	Verbose          bool

	// Out receives progress output. Defaults to os.Stdout.
	Out io.Writer
}

func (o RunOptions) withDefaults() RunOptions {
	if o.ChunkSize == 0 {
		o.ChunkSize = chunking.DefaultChunkSize
	}
	if o.ChunkOverlap == 0 {
		o.ChunkOverlap = chunking.DefaultOverlap
	}
	if o.Workers == 0 {
		o.Workers = analysis.DefaultWorkers
	}
	if o.ArchiveInterval == 0 {
		o.ArchiveInterval = DefaultArchiveInterval
	}
	if o.AnalyzerInterval == 0 {
		o.AnalyzerInterval = DefaultAnalyzerInterval
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	return o
}

// RunHarvest crawls the archive index from the seed URL and downloads every
// newly discovered document into the document directory.
func RunHarvest(ctx context.Context, opts RunOptions) (*types.HarvestStats, error) {
	opts = opts.withDefaults()

	if opts.SeedURL == "" {
		return nil, fmt.Errorf("no seed URL provided")
	}

	st := store.New(opts.DocDir, opts.OutDir)
	if err := st.EnsureDirs(); err != nil {
		return nil, err
	}

	existing, err := st.ListDocuments(documentExt)
	if err != nil {
		return nil, err
	}

	fetcher := fetch.New(nil)
	crawler := crawling.NewCrawler(
		fetcher,
		download.New(fetcher, st.DocDir),
		crawling.WithLimiter(ratelimit.NewInterval(opts.ArchiveInterval)),
		crawling.WithExistingFiles(existing),
		crawling.WithLog(opts.Out),
	)

	fmt.Fprintf(opts.Out, "Harvesting archive from %s...\n", opts.SeedURL)
	saved, stats, err := crawler.Crawl(ctx, opts.SeedURL)
	if err != nil {
		return stats, err
	}

	fmt.Fprintf(opts.Out, "Harvest complete: %d new documents\n", len(saved))
	if opts.Verbose {
		observability.NewPrinter(opts.Out).PrintHarvestStats(stats)
	}
	return stats, nil
}

// RunAnalysis analyzes every stored document against the research question
// and writes the timestamped analyses and report artifacts.
func RunAnalysis(ctx context.Context, opts RunOptions) (*types.AnalysisStats, error) {
	opts = opts.withDefaults()

	analyzer, err := llm.NewGeminiAnalyzer(ctx, opts.APIKey, llm.Options{
		Model:    opts.Model,
		Question: opts.Question,
		Style:    llm.CallStyle(opts.CallStyle),
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = analyzer.Close() }()

	return runAnalysis(ctx, opts, analyzer, extraction.PDFExtractor{})
}

// runAnalysis is the provider-independent body of RunAnalysis.
func runAnalysis(ctx context.Context, opts RunOptions, analyzer llm.Analyzer, extractor extraction.Extractor) (*types.AnalysisStats, error) {
	st := store.New(opts.DocDir, opts.OutDir)
	if err := st.EnsureDirs(); err != nil {
		return nil, err
	}

	names, err := st.ListDocuments(documentExt)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		fmt.Fprintf(opts.Out, "Warning: no documents found in %s\n", st.DocDir)
	}

	splitter, err := chunking.NewSplitter(opts.ChunkSize, opts.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	docs := make([]analysis.Document, len(names))
	for i, name := range names {
		docs[i] = analysis.Document{Name: name, Path: st.DocumentPath(name)}
	}

	fmt.Fprintf(opts.Out, "Analyzing %d documents...\n", len(docs))
	p := analysis.NewPipeline(extractor, splitter, analyzer,
		analysis.WithLimiter(ratelimit.NewInterval(opts.AnalyzerInterval)),
		analysis.WithWorkers(opts.Workers),
		analysis.WithLog(opts.Out),
	)
	analyses, stats, err := p.Run(ctx, docs)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	fmt.Fprintf(opts.Out, "Synthesizing corpus report (run %s)...\n", runID)
	rep := aggregate.NewAggregator(analyzer, opts.Out).Synthesize(ctx, runID, analyses)

	now := time.Now()
	analysesPath := st.AnalysesPath(now)
	reportPath := st.ReportPath(now)

	if err := report.WriteAnalyses(analysesPath, analyses); err != nil {
		return stats, err
	}
	if err := report.WriteReport(reportPath, opts.Question, rep, stats); err != nil {
		return stats, err
	}

	printer := observability.NewPrinter(opts.Out)
	if opts.Verbose {
		printer.PrintAnalysisStats(stats)
	}
	printer.PrintArtifacts(analysesPath, reportPath)

	return stats, nil
}

// Run harvests the archive and then analyzes the full stored corpus.
func Run(ctx context.Context, opts RunOptions) error {
	if _, err := RunHarvest(ctx, opts); err != nil {
		return err
	}
	if _, err := RunAnalysis(ctx, opts); err != nil {
		return err
	}
	return nil
}
