// Package report writes the analysis run's artifacts: the per-document
// analyses as JSON and the synthesized corpus report as Markdown.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/jonathan/archive-analyst/internal/types"
)

// WriteAnalyses writes the per-document chunk analyses to path as JSON,
// keyed by document filename. The file is the raw material for re-running
// synthesis without re-analyzing the corpus.
func WriteAnalyses(path string, analyses []*types.DocumentAnalysis) error {
	out := make(map[string][]string, len(analyses))
	for _, a := range analyses {
		out[a.Document] = a.Chunks
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analyses: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write analyses file: %w", err)
	}
	return nil
}

// WriteReport writes the corpus report to path as Markdown, with a run
// information table ahead of the synthesized body.
func WriteReport(path, question string, rep *types.CorpusReport, stats *types.AnalysisStats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	md := markdown.NewMarkdown(f)

	md.H1("Archive Analysis Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + rep.RunID + "`"},
			{"Generated", rep.GeneratedAt},
			{"Research Question", question},
			{"Documents Analyzed", strconv.Itoa(stats.Documents)},
			{"Documents Skipped", strconv.Itoa(stats.DocumentsSkipped)},
			{"Chunks Analyzed", strconv.Itoa(stats.ChunksAnalyzed)},
			{"Chunks Failed", strconv.Itoa(stats.ChunksFailed)},
		},
	})
	md.PlainText("")

	if rep.SynthesisFailed {
		md.Warningf("Corpus synthesis failed. Re-run synthesis from the saved analyses file.")
		md.PlainText("")
	}

	md.H2("Synthesis")
	md.PlainText("")
	md.PlainText(rep.Body)

	if err := md.Build(); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
