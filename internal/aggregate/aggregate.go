// Package aggregate combines per-document analyses into one corpus-level
// report via the analyzer's synthesis call.
package aggregate

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/archive-analyst/internal/types"
)

// documentHeader labels each document's section in the combined synthesis
// input so the report can cite sources.
const documentHeader = "=== ANALYSIS OF DOCUMENT: %s ==="

// failureBody is recorded as the report body when synthesis itself fails,
// so a run always produces a report artifact.
const failureBody = "Synthesis failed; the per-document analyses were saved and synthesis can be retried from them."

// Synthesizer produces a corpus-level report from combined analyses.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// BuildCombinedInput concatenates the non-empty document analyses, each under
// a header naming its source document, preserving document order. Documents
// whose every chunk failed are left out; they contribute nothing to cite.
func BuildCombinedInput(analyses []*types.DocumentAnalysis) string {
	var b strings.Builder
	for _, a := range analyses {
		if a.Empty() {
			continue
		}
		fmt.Fprintf(&b, documentHeader+"\n\n%s\n\n", a.Document, a.Combined())
	}
	return b.String()
}

// Aggregator synthesizes the final corpus report.
type Aggregator struct {
	synthesizer Synthesizer
	log         io.Writer
}

// NewAggregator creates an Aggregator. log may be nil.
func NewAggregator(synthesizer Synthesizer, log io.Writer) *Aggregator {
	if log == nil {
		log = io.Discard
	}
	return &Aggregator{synthesizer: synthesizer, log: log}
}

// Synthesize builds the combined input from analyses and asks the analyzer
// for a corpus report. A synthesis failure still yields a report, with a
// fixed failure body and SynthesisFailed set, so the run's artifacts are
// complete either way.
func (a *Aggregator) Synthesize(ctx context.Context, runID string, analyses []*types.DocumentAnalysis) *types.CorpusReport {
	report := &types.CorpusReport{
		RunID:       runID,
		GeneratedAt: time.Now().Format(time.RFC3339),
	}

	input := BuildCombinedInput(analyses)
	if input == "" {
		fmt.Fprintln(a.log, "Warning: no document analyses to synthesize")
		report.Body = "No document analyses were available for synthesis."
		return report
	}

	body, err := a.synthesizer.Synthesize(ctx, input)
	if err != nil {
		fmt.Fprintf(a.log, "Warning: corpus synthesis failed: %v\n", err)
		report.Body = failureBody
		report.SynthesisFailed = true
		return report
	}

	report.Body = body
	return report
}
