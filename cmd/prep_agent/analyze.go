package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/prep-readiness/internal/observability"
	"github.com/jonathan/prep-readiness/internal/skills"
	"github.com/jonathan/prep-readiness/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a job description and save it to history",
	Long: `Analyze a pasted job description: extract skills, build the round-wise checklist,
7-day plan and likely questions, infer company intel, and save the result to history.
Use --preview to analyze without saving.`,
	RunE: runAnalyze,
}

var (
	analyzeCompany string
	analyzeRole    string
	analyzeJD      string
	analyzeJDFile  string
	analyzePreview bool
	analyzeJSON    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeCompany, "company", "c", "", "Company name")
	analyzeCmd.Flags().StringVarP(&analyzeRole, "role", "r", "", "Role title")
	analyzeCmd.Flags().StringVar(&analyzeJD, "jd", "", "Job description text")
	analyzeCmd.Flags().StringVarP(&analyzeJDFile, "jd-file", "f", "", "Path to job description text file ('-' for stdin)")
	analyzeCmd.Flags().BoolVar(&analyzePreview, "preview", false, "Analyze without saving to history")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print JSON instead of formatted output")

	rootCmd.AddCommand(analyzeCmd)
}

// readJD returns the JD from --jd, or from --jd-file where "-" reads stdin
func readJD(jd, path string, stdin io.Reader) (string, error) {
	if jd != "" && path != "" {
		return "", fmt.Errorf("cannot use --jd with --jd-file")
	}
	switch path {
	case "":
		return jd, nil
	case "-":
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), nil
	default:
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read JD file: %w", err)
		}
		return string(content), nil
	}
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	jd, err := readJD(analyzeJD, analyzeJDFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	req := types.AnalyzeRequest{Company: analyzeCompany, Role: analyzeRole, JDText: jd}

	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()

	if analyzePreview {
		result, err := a.analyses.Analyze(req)
		if err != nil {
			return err
		}
		if analyzeJSON {
			return writeJSON(out, result)
		}
		p := observability.NewPrinter(out)
		_, _ = fmt.Fprintf(out, "Readiness score: %d/100 (preview, not saved)\n", result.ReadinessScore)
		var lines []string
		for _, id := range result.ExtractedSkills.CategoryIDs {
			lines = append(lines, fmt.Sprintf("%s: %s", skills.Label(id), strings.Join(result.ExtractedSkills.ByCategory[id], ", ")))
		}
		p.PrintList("KEY SKILLS", lines, true)
		p.PrintList("7-DAY PLAN", planTitles(result.Plan), true)
		p.PrintList("LIKELY INTERVIEW QUESTIONS", result.Questions, true)
		return nil
	}

	outcome, err := a.analyses.AnalyzeAndPersist(ctx, req)
	if err != nil {
		return err
	}
	if analyzeJSON {
		return writeJSON(out, outcome)
	}
	observability.NewPrinter(out).PrintWarnings(outcome.Warnings)
	printView(out, outcome.Analysis, false)
	return nil
}
