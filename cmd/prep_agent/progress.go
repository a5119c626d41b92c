package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/prep-readiness/internal/progress"
	"github.com/jonathan/prep-readiness/internal/storage"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Track build steps, the manual test checklist and proof links",
	RunE:  runProgressStatus,
}

var progressStepCmd = &cobra.Command{
	Use:   "step <step-id>",
	Short: "Mark a build step complete (use --undo to clear it)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressStep,
}

var progressTestCmd = &cobra.Command{
	Use:   "test <test-id>",
	Short: "Mark a manual test passed (use --undo to clear it)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressTest,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset-tests",
	Short: "Clear the manual test checklist",
	Args:  cobra.NoArgs,
	RunE:  runProgressReset,
}

var progressSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Set proof links and print the final submission",
	Args:  cobra.NoArgs,
	RunE:  runProgressSubmit,
}

var (
	progressUndo     bool
	progressLovable  string
	progressGithub   string
	progressDeployed string
)

func init() {
	progressStepCmd.Flags().BoolVar(&progressUndo, "undo", false, "Mark as not done")
	progressTestCmd.Flags().BoolVar(&progressUndo, "undo", false, "Mark as not passed")
	progressSubmitCmd.Flags().StringVar(&progressLovable, "lovable", "", "Lovable project link")
	progressSubmitCmd.Flags().StringVar(&progressGithub, "github", "", "GitHub repository link")
	progressSubmitCmd.Flags().StringVar(&progressDeployed, "deployed", "", "Deployed URL")

	progressCmd.AddCommand(progressStepCmd, progressTestCmd, progressResetCmd, progressSubmitCmd)
	rootCmd.AddCommand(progressCmd)
}

// warnUnsaved prints a warning for a failed write and passes other errors through
func warnUnsaved(out io.Writer, err error) error {
	if err == nil {
		return nil
	}
	if storage.IsWriteFailure(err) {
		_, _ = fmt.Fprintf(out, "⚠ Could not save progress: %v\n", err)
		return nil
	}
	return err
}

func runProgressStatus(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return printProgress(ctx, cmd.OutOrStdout(), a.tracker)
}

func printProgress(ctx context.Context, out io.Writer, t *progress.Tracker) error {
	status, err := t.Status(ctx)
	if err != nil {
		return err
	}
	steps, err := t.Steps(ctx)
	if err != nil {
		return err
	}
	tests, err := t.Tests(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Steps: %d/%d\n", status.StepsCompleted, status.StepsTotal)
	for _, id := range progress.StepIDs {
		_, _ = fmt.Fprintf(out, "  %s %-6s %s\n", mark(steps.Completed[id]), id, progress.StepLabels[id])
	}
	_, _ = fmt.Fprintf(out, "\nTests Passed: %d / %d\n", status.TestsPassed, status.TestsTotal)
	for _, item := range progress.TestItems {
		_, _ = fmt.Fprintf(out, "  %s %s\n", mark(tests.Checked[item.ID]), item.Label)
	}
	if status.TestsPassed < status.TestsTotal {
		_, _ = fmt.Fprintln(out, "\nFix issues before shipping.")
	}

	shipped := "In Progress"
	if status.Shipped {
		shipped = "Shipped"
	}
	_, _ = fmt.Fprintf(out, "\nStatus: %s\n", shipped)
	return nil
}

func mark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func runProgressStep(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if _, err := a.tracker.SetStep(ctx, progress.StepID(args[0]), !progressUndo); err != nil {
		if err := warnUnsaved(out, err); err != nil {
			return err
		}
	}
	return printProgress(ctx, out, a.tracker)
}

func runProgressTest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if _, err := a.tracker.SetTest(ctx, progress.TestID(args[0]), !progressUndo); err != nil {
		if err := warnUnsaved(out, err); err != nil {
			return err
		}
	}
	return printProgress(ctx, out, a.tracker)
}

func runProgressReset(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if _, err := a.tracker.ResetTests(ctx); err != nil {
		if err := warnUnsaved(out, err); err != nil {
			return err
		}
	}
	return printProgress(ctx, out, a.tracker)
}

func runProgressSubmit(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var update progress.SubmissionUpdate
	flags := cmd.Flags()
	if flags.Changed("lovable") {
		update.LovableURL = &progressLovable
	}
	if flags.Changed("github") {
		update.GithubURL = &progressGithub
	}
	if flags.Changed("deployed") {
		update.DeployedURL = &progressDeployed
	}

	out := cmd.OutOrStdout()
	if _, err := a.tracker.UpdateSubmission(ctx, update); err != nil {
		if err := warnUnsaved(out, err); err != nil {
			return err
		}
	}

	text, err := a.tracker.SubmissionText(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, text)
	return nil
}
