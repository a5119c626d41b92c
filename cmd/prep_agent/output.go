package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/prep-readiness/internal/export"
	"github.com/jonathan/prep-readiness/internal/observability"
	"github.com/jonathan/prep-readiness/internal/types"
)

// writeJSON prints v as indented JSON
func writeJSON(out io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(jsonBytes))
	return err
}

// printView prints the headline, intel, rounds and guidance lists of one analysis
func printView(out io.Writer, v types.View, all bool) {
	p := observability.NewPrinter(out)
	p.PrintAnalysis(&v)
	p.PrintCompanyProfile(v.CompanyIntel)
	p.PrintRoundMapping(v.RoundMapping)
	p.PrintList("7-DAY PLAN", planTitles(v.Plan), all)
	p.PrintList("LIKELY INTERVIEW QUESTIONS", v.Questions, all)
	if v.InferenceDerived {
		_, _ = fmt.Fprintf(out, "Company intel was derived on read; run 'prep_agent backfill %s' to save it.\n", v.ID)
	}
}

func planTitles(plan []types.DayPlan) []string {
	titles := make([]string, 0, len(plan))
	for _, day := range plan {
		titles = append(titles, day.Title)
	}
	return titles
}

// printSection prints a single export section
func printSection(out io.Writer, v types.View, section string) error {
	var text string
	switch section {
	case "plan":
		text = export.Plan(v.Plan)
	case "checklist":
		text = export.Checklist(v.Checklist)
	case "questions":
		text = export.Questions(v.Questions)
	case "", "report":
		report, err := export.Report(v)
		if err != nil {
			return err
		}
		text = report
	default:
		return fmt.Errorf("unknown section %q (want plan, checklist, questions or report)", section)
	}
	_, err := fmt.Fprintln(out, text)
	return err
}
