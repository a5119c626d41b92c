package main

import (
	"context"
	"fmt"

	"github.com/jonathan/prep-readiness/internal/observability"
	"github.com/jonathan/prep-readiness/internal/types"
	"github.com/spf13/cobra"
)

var confidenceCmd = &cobra.Command{
	Use:   "confidence <analysis-id> <skill> <know|practice>",
	Short: "Record how confident you are in one extracted skill",
	Long: `Set a skill to "know" or "practice". The live readiness score moves +2 per known
skill and -2 per skill still to practice, and the change is saved to history.`,
	Example: `  prep_agent confidence analysis-1234 React know
  prep_agent confidence analysis-1234 "CI/CD" practice`,
	Args: cobra.ExactArgs(3),
	RunE: runConfidence,
}

var confidenceJSON bool

func init() {
	confidenceCmd.Flags().BoolVar(&confidenceJSON, "json", false, "Print JSON instead of formatted output")

	rootCmd.AddCommand(confidenceCmd)
}

func runConfidence(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	outcome, err := a.analyses.SetSkillConfidence(ctx, args[0], args[1], types.Confidence(args[2]))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if confidenceJSON {
		return writeJSON(out, outcome)
	}
	observability.NewPrinter(out).PrintWarnings(outcome.Warnings)
	_, _ = fmt.Fprintf(out, "%s set to %s. Readiness score: %d/100\n", args[1], args[2], outcome.Analysis.ReadinessScore)
	return nil
}
