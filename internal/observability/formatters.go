// Package observability provides formatted progress output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/scorerank/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for the ranking and submission commands
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

// PrintFolderRanking outputs the ranking for one processed folder and where it was written.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFolderRanking(report *types.FolderReport, topN int, outPath string) {
	if report == nil {
		return
	}

	fmt.Fprintf(p.out, "\n[%s] Top %d:\n", report.Folder, topN)
	for i, rec := range report.Ranked {
		fmt.Fprintf(p.out, "  %d. %.3f  %s\n", i+1, rec.Score, rec.Description)
	}
	fmt.Fprintf(p.out, "  -> wrote %s\n", outPath)
}

// PrintRunDone outputs the final processed/skipped counts.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRunDone(summary *types.RunSummary) {
	if summary == nil {
		return
	}
	fmt.Fprintf(p.out, "\nDone. Processed: %d folders. Skipped (no usable scores): %d folders.\n",
		summary.Processed, summary.Skipped)
}

// PrintRunOverview outputs a box with the best record of each processed folder.
func (p *Printer) PrintRunOverview(summary *types.RunSummary) {
	if summary == nil || len(summary.Reports) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Folders ranked: %d (skipped %d)\n\n", summary.Processed, summary.Skipped))

	count := min(len(summary.Reports), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := summary.Reports[i]
		if len(entry.Ranked) == 0 {
			continue
		}
		best := entry.Ranked[0]
		sb.WriteString(fmt.Sprintf("%-20s %10.3f  %s\n", entry.Folder, best.Score, best.Description))
	}

	if len(summary.Reports) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more folders\n", len(summary.Reports)-maxItemsToShow))
	}

	p.printBox("BEST PER FOLDER", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSubmissionStart announces how many inputs will be submitted.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSubmissionStart(count int) {
	fmt.Fprintf(p.out, "Found %d PDB(s). Submitting one SLURM array job per PDB...\n", count)
}

// PrintSubmission outputs the outcome of one submission.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSubmission(result types.SubmitResult) {
	if result.OK() {
		fmt.Fprintf(p.out, "  %s -> job %s\n", result.Input, result.JobID)
		return
	}
	fmt.Fprintf(p.out, "  %s -> FAILED: %v\n", result.Input, result.Err)
}
