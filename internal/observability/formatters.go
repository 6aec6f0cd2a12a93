// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/workhive/workhive/internal/ingest"
	"github.com/workhive/workhive/internal/matching"
	"github.com/workhive/workhive/internal/skills"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

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

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSkills outputs the skills extracted from a resume along with the
// fallback stage that produced them.
func (p *Printer) PrintSkills(extraction *skills.Extraction) {
	if extraction == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s\n\n", extraction.Source))

	writeList := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(label + ":\n")
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}
	writeList("Hard Skills", extraction.Skills.HardSkills)
	writeList("Soft Skills", extraction.Skills.SoftSkills)

	if extraction.Skills.Empty() {
		sb.WriteString("No skills extracted.\n")
	}

	p.printBox("EXTRACTED SKILLS", strings.TrimRight(sb.String(), "\n"))
}

// PrintMatches outputs a page of ranked match results.
func (p *Printer) PrintMatches(resp *matching.Response) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Processed: %d jobs, matched %d\n",
		resp.TotalJobsProcessed, resp.MatchedJobsCount))
	sb.WriteString(fmt.Sprintf("Page:      %d of %d\n\n", resp.CurrentPage, resp.TotalPages))

	for i, mj := range resp.FilteredJobs {
		sb.WriteString(fmt.Sprintf("%2d. [%5.1f] %s at %s\n",
			i+1, mj.MatchScore, mj.Job.JobTitle, mj.Job.CompanyName))
		if len(mj.MatchedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("      via %s\n", strings.Join(mj.MatchedSkills, ", ")))
		}
	}
	if len(resp.FilteredJobs) == 0 {
		sb.WriteString("No matches on this page.\n")
	}
	if resp.Message != "" {
		sb.WriteString("\n" + resp.Message + "\n")
	}

	p.printBox("MATCH RESULTS", strings.TrimRight(sb.String(), "\n"))
}

// PrintIngestSummary outputs the outcome of an ingestion run.
func (p *Printer) PrintIngestSummary(summary ingest.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Written:  %d\n", summary.Written))
	sb.WriteString(fmt.Sprintf("Failed:   %d\n", summary.Failed))

	if len(summary.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		count := min(len(summary.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", summary.Errors[i]))
		}
		if len(summary.Errors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(summary.Errors)-maxItemsToShow))
		}
	}

	p.printBox("INGEST SUMMARY", strings.TrimRight(sb.String(), "\n"))
}
