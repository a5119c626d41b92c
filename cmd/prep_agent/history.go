package main

import (
	"context"
	"fmt"

	"github.com/jonathan/prep-readiness/internal/observability"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved analyses, most recently updated first",
	RunE:  runHistory,
}

var (
	historyJSON  bool
	historyClear bool
)

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print JSON instead of formatted output")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete every saved analysis")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()

	if historyClear {
		if err := a.store.Clear(ctx); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, "History cleared")
		return nil
	}

	page, err := a.analyses.History(ctx)
	if err != nil {
		return err
	}
	if historyJSON {
		return writeJSON(out, page)
	}
	observability.NewPrinter(out).PrintHistory(page.Items, page.Corrupted)
	return nil
}
