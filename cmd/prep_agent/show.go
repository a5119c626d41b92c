package main

import (
	"context"

	"github.com/jonathan/prep-readiness/internal/types"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [analysis-id]",
	Short: "Show one saved analysis (the latest when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

var (
	showJSON bool
	showAll  bool
)

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print JSON instead of formatted output")
	showCmd.Flags().BoolVar(&showAll, "all", false, "Show every plan day and question")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var v types.View
	if len(args) == 1 {
		v, err = a.analyses.Get(ctx, args[0])
	} else {
		v, err = a.analyses.Latest(ctx)
	}
	if err != nil {
		return err
	}

	if showJSON {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	printView(cmd.OutOrStdout(), v, showAll)
	return nil
}
