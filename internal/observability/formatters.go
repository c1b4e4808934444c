// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/nanotecnologista/jobradar/internal/types"
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

// PrintSession outputs a human-readable summary of a finished scrape session.
func (p *Printer) PrintSession(session *types.ScrapeSession) {
	if session == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session:  %s\n", session.ID))
	sb.WriteString(fmt.Sprintf("Job type: %s\n", session.JobType))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", session.Status))
	if !session.FinishedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Duration: %s\n", session.FinishedAt.Sub(session.StartedAt).Round(time.Second)))
	}
	sb.WriteString("\n")

	if len(session.JobCounts) > 0 {
		sb.WriteString("Postings per platform:\n")
		platforms := make([]string, 0, len(session.JobCounts))
		for platform := range session.JobCounts {
			platforms = append(platforms, platform)
		}
		sort.Strings(platforms)
		for _, platform := range platforms {
			sb.WriteString(fmt.Sprintf("  • %-12s %d\n", platform, session.JobCounts[platform]))
		}
	}
	if session.DedupRemoved > 0 {
		sb.WriteString(fmt.Sprintf("Duplicates removed: %d\n", session.DedupRemoved))
	}

	if len(session.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		count := min(len(session.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := session.Errors[i]
			message := e.Message
			if len(message) > 40 {
				message = message[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("  ⚠ %s/%s: %s\n", e.Platform, e.Stage, message))
		}
		if len(session.Errors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(session.Errors)-maxItemsToShow))
		}
	}

	p.printBox("SCRAPE SESSION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs the aggregate analysis for a scored batch.
func (p *Printer) PrintBatchSummary(summary *types.BatchSummary) {
	if summary == nil || summary.Total == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO POSTINGS TO SUMMARIZE")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total analyzed: %d\n", summary.Total))
	sb.WriteString(fmt.Sprintf("Average score:  %.1f\n", summary.AverageScore))
	sb.WriteString(fmt.Sprintf("Worth applying: %d\n", summary.ShouldApply))
	sb.WriteString("\n")

	sb.WriteString("By tier:\n")
	for _, tier := range []types.Priority{
		types.PriorityHigh, types.PriorityMedium, types.PriorityLow, types.PriorityVeryLow,
	} {
		sb.WriteString(fmt.Sprintf("  %-9s %d\n", tier, summary.TierCounts[tier]))
	}

	p.printBox("ANALYSIS SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTopJobs outputs the highest-scored postings with their priorities.
func (p *Printer) PrintTopJobs(scored []types.ScoredJob) {
	if len(scored) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(scored), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := scored[i]
		title := s.Job.Title
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    %.1f [%s]  %s\n",
			s.Result.CompatibilityScore, s.Result.Recommendations.Priority, s.Job.Company))
		if s.Job.URL != "" {
			url := s.Job.URL
			if len(url) > 50 {
				url = url[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", url))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(scored) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more postings", len(scored)-maxItemsToShow))
	}

	p.printBox("TOP POSTINGS", sb.String())
}

// PrintPlatformStatus outputs each platform's condition after a run.
func (p *Printer) PrintPlatformStatus(status map[string]string) {
	if len(status) == 0 {
		return
	}

	platforms := make([]string, 0, len(status))
	for platform := range status {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	var sb strings.Builder
	for _, platform := range platforms {
		marker := "✓"
		if status[platform] != "ok" {
			marker = "⚠"
		}
		sb.WriteString(fmt.Sprintf("%s %-12s %s\n", marker, platform, status[platform]))
	}

	p.printBox("PLATFORM STATUS", strings.TrimSuffix(sb.String(), "\n"))
}
