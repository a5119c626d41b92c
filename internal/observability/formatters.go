// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/prep-readiness/internal/skills"
	"github.com/jonathan/prep-readiness/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs the headline of an analysis: title, score and extracted skills.
func (p *Printer) PrintAnalysis(v *types.View) {
	if v == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s\n", v.ID))
	if v.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", v.Company))
	}
	if v.Role != "" {
		sb.WriteString(fmt.Sprintf("Role:     %s\n", v.Role))
	}
	sb.WriteString(fmt.Sprintf("Score:    %d/100 (base %d)\n", v.ReadinessScore, v.BaseScore))
	sb.WriteString("\n")

	if len(v.ExtractedSkills.CategoryIDs) == 0 {
		sb.WriteString("Skills: General fresher stack\n")
	} else {
		sb.WriteString("Skills:\n")
		for _, id := range v.ExtractedSkills.CategoryIDs {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", skills.Label(id), strings.Join(v.ExtractedSkills.ByCategory[id], ", ")))
		}
	}
	if len(v.ExtractedSkills.OtherSkills) > 0 {
		sb.WriteString(fmt.Sprintf("  • Other: %s\n", strings.Join(v.ExtractedSkills.OtherSkills, ", ")))
	}

	if len(v.TopWeakSkills) > 0 {
		sb.WriteString(fmt.Sprintf("\nFocus next: %s\n", strings.Join(v.TopWeakSkills, ", ")))
	}

	p.printBox("JD ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCompanyProfile outputs the inferred company profile.
func (p *Printer) PrintCompanyProfile(profile *types.CompanyProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", profile.CompanyName))
	sb.WriteString(fmt.Sprintf("Industry: %s\n", profile.Industry))
	sb.WriteString(fmt.Sprintf("Size:     %s\n", profile.SizeLabel))
	sb.WriteString("\n")
	sb.WriteString(wrap(profile.TypicalHiringFocus, boxWidth-4))

	p.printBox("COMPANY INTEL (heuristic)", sb.String())
}

// PrintRoundMapping outputs the expected interview rounds.
func (p *Printer) PrintRoundMapping(mapping *types.RoundMapping) {
	if mapping == nil || len(mapping.Rounds) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range mapping.Rounds {
		sb.WriteString(r.Name + "\n")
		if r.Description != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", r.Description))
		}
		if i < len(mapping.Rounds)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("EXPECTED ROUNDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHistory outputs one line per analysis, newest first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintHistory(items []types.View, corrupted int) {
	if len(items) == 0 && corrupted == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("No analyses yet", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d analyses\n", len(items)))
	if corrupted > 0 {
		sb.WriteString(fmt.Sprintf("⚠ %d entries could not be loaded\n", corrupted))
	}
	sb.WriteString("\n")
	for _, v := range items {
		title := strings.TrimSpace(strings.Join([]string{v.Company, v.Role}, " "))
		if title == "" {
			title = "JD Analysis"
		}
		sb.WriteString(fmt.Sprintf("%3d  %s  %s\n", v.ReadinessScore, v.CreatedAt.Format("2006-01-02"), truncate(title, 30)))
		sb.WriteString(fmt.Sprintf("     %s\n", v.ID))
	}

	p.printBox("HISTORY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs non-fatal warnings, if any.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(p.out, "⚠ %s\n", w)
	}
}

// PrintList outputs a titled bulleted list, truncated to maxItemsToShow unless all is set.
func (p *Printer) PrintList(title string, items []string, all bool) {
	if len(items) == 0 {
		return
	}

	count := len(items)
	if !all {
		count = min(count, maxItemsToShow)
	}
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", items[i]))
	}
	if count < len(items) {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(items)-count))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// wrap breaks text into lines of at most width runes on word boundaries
func wrap(text string, width int) string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
