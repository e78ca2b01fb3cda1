// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/archive-analyst/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintHarvestStats outputs a human-readable summary of a crawl run.
func (p *Printer) PrintHarvestStats(stats *types.HarvestStats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pages visited:     %d\n", stats.PagesVisited))
	sb.WriteString(fmt.Sprintf("Pages failed:      %d\n", stats.PagesFailed))
	sb.WriteString(fmt.Sprintf("Downloaded:        %d\n", stats.Downloaded))
	sb.WriteString(fmt.Sprintf("Downloads failed:  %d\n", stats.DownloadsFailed))
	sb.WriteString(fmt.Sprintf("Skipped existing:  %d\n", stats.SkippedExisting))
	sb.WriteString(fmt.Sprintf("Duplicate names:   %d", stats.DuplicateNames))

	p.printBox("HARVEST SUMMARY", sb.String())
}

// PrintAnalysisStats outputs a human-readable summary of an analysis run.
func (p *Printer) PrintAnalysisStats(stats *types.AnalysisStats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Documents analyzed:  %d\n", stats.Documents))
	sb.WriteString(fmt.Sprintf("Documents skipped:   %d\n", stats.DocumentsSkipped))
	sb.WriteString(fmt.Sprintf("Chunks analyzed:     %d\n", stats.ChunksAnalyzed))
	sb.WriteString(fmt.Sprintf("Chunks failed:       %d", stats.ChunksFailed))

	p.printBox("ANALYSIS SUMMARY", sb.String())
}

// PrintArtifacts outputs the paths of the run's written artifacts.
func (p *Printer) PrintArtifacts(analysesPath, reportPath string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analyses: %s\n", analysesPath))
	sb.WriteString(fmt.Sprintf("Report:   %s", reportPath))

	p.printBox("ARTIFACTS", sb.String())
}
