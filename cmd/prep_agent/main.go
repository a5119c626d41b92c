// Package main provides the entry point for the placement readiness CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "prep_agent",
	Short: "Placement Readiness CLI and HTTP API Server",
	Long: "Placement Readiness analyzes job descriptions into skill categories, a round-wise checklist, " +
		"a 7-day plan, likely interview questions and a readiness score, and keeps a local history of analyses.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: prep.yaml in ., ./configs or ~/.prep)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
