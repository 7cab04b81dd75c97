// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/rfp-proposal/internal/types"
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

// printBox prints a formatted box with a title and content. Widths count runes so Arabic
// lines are never cut inside a character.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(line string) string {
	r := []rune(line)
	if len(r) > boxWidth-4 {
		return string(r[:boxWidth-7]) + "..."
	}
	return line
}

func writeList(sb *strings.Builder, label string, items []string) {
	if types.IsNotAvailable(items) {
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
}

// PrintCriteria outputs the weighted criteria grouped in extraction order.
func (p *Printer) PrintCriteria(set *types.CriteriaSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Criteria: %d\n\n", len(set.Criteria)))
	count := min(len(set.Criteria), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		c := set.Criteria[i]
		weight := "-"
		if c.Weight != nil {
			weight = fmt.Sprintf("%.4f", *c.Weight)
		}
		sb.WriteString(fmt.Sprintf("%2d. [%s] %s (%s)\n", i+1, c.Category, c.Name, weight))
	}
	if len(set.Criteria) > count {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(set.Criteria)-count))
	}

	p.printBox("EVALUATION CRITERIA", sb.String())
}

// PrintCompanyProfile outputs a human-readable summary of the company profile.
func (p *Printer) PrintCompanyProfile(profile *types.CompanyProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.CompanyName))
	sb.WriteString(fmt.Sprintf("English:  %s\n", profile.EnglishName))
	sb.WriteString(fmt.Sprintf("Founded:  %s\n", profile.FoundedYear))
	sb.WriteString("\n")

	writeList(&sb, "Services", profile.Services)
	writeList(&sb, "Licenses", profile.Licenses)
	writeList(&sb, "Partners", profile.Partners)
	writeList(&sb, "Phones", profile.Contact.Phones)
	writeList(&sb, "Emails", profile.Contact.Emails)

	if len(profile.Sources) > 0 {
		sb.WriteString(fmt.Sprintf("\nSources: %d pages\n", len(profile.Sources)))
	}

	p.printBox("COMPANY PROFILE", sb.String())
}

// PrintGapReport outputs bucket counts and the requirements that need clarification.
func (p *Printer) PrintGapReport(report *types.GapReport) {
	if report == nil {
		return
	}

	s := report.Summary
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total:        %d\n", s.TotalRequirements))
	sb.WriteString(fmt.Sprintf("Covered:      %d\n", s.Covered))
	sb.WriteString(fmt.Sprintf("Not covered:  %d\n", s.NotCovered))
	sb.WriteString(fmt.Sprintf("Unclear:      %d\n", s.Unclear))
	if s.Unrecognized > 0 {
		sb.WriteString(fmt.Sprintf("Unrecognized: %d\n", s.Unrecognized))
	}

	if missing := report.MissingRequirements(); len(missing) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Needs clarification", missing)
	}

	title := "GAP ANALYSIS"
	if s.NotCovered == 0 && s.Unclear == 0 {
		title = "GAP ANALYSIS - ALL REQUIREMENTS COVERED"
	}
	p.printBox(title, sb.String())
}

// PrintQuestions outputs the clarification questions.
func (p *Printer) PrintQuestions(questions []string) {
	if len(questions) == 0 {
		p.printBox("CLARIFICATION QUESTIONS", "None")
		return
	}
	var sb strings.Builder
	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, q))
	}
	p.printBox("CLARIFICATION QUESTIONS", sb.String())
}

// PrintProposal outputs the proposal title and section names with their sizes.
func (p *Printer) PrintProposal(proposal *types.Proposal) {
	if proposal == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Sections: %d\n\n", len(proposal.Sections)))
	for i, s := range proposal.Sections {
		sb.WriteString(fmt.Sprintf("%2d. %s (%d chars)\n", i+1, s.Name, len([]rune(s.Body))))
	}

	p.printBox(proposal.Title, sb.String())
}
