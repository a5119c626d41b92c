package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/prep-readiness/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <analysis-id>",
	Short: "Export an analysis as plain text",
	Long: `Print one section (plan, checklist, questions) or the full report.
With --out-dir the full report is written to placement-prep-<id>.txt in that directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	exportSection string
	exportOutDir  string
)

func init() {
	exportCmd.Flags().StringVarP(&exportSection, "section", "s", "report", "Section to export: plan, checklist, questions or report")
	exportCmd.Flags().StringVarP(&exportOutDir, "out-dir", "o", "", "Write the full report file into this directory")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	v, err := a.analyses.Get(ctx, args[0])
	if err != nil {
		return err
	}

	if exportOutDir == "" {
		return printSection(cmd.OutOrStdout(), v, exportSection)
	}

	report, err := export.Report(v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(exportOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(exportOutDir, export.Filename(v.ID))
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}
