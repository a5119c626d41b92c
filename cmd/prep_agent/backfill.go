package main

import (
	"context"
	"fmt"

	"github.com/jonathan/prep-readiness/internal/observability"
	"github.com/spf13/cobra"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill <analysis-id>",
	Short: "Save inferred company intel and round mapping on an older analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackfill,
}

func init() {
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	outcome, err := a.analyses.BackfillInference(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := observability.NewPrinter(out)
	p.PrintWarnings(outcome.Warnings)
	p.PrintCompanyProfile(outcome.Analysis.CompanyIntel)
	p.PrintRoundMapping(outcome.Analysis.RoundMapping)
	_, _ = fmt.Fprintf(out, "Backfilled %s\n", outcome.Analysis.ID)
	return nil
}
