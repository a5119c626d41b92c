package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/prep-readiness/internal/schemas"
	"github.com/jonathan/prep-readiness/internal/storage"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate saved history against the canonical record schema",
	Long: `Validate the stored history (default), a history file (--file), a single
record given inline or on stdin (--record), or any JSON file against any JSON
Schema (--schema with --in).`,
	RunE: runValidate,
}

var (
	validateFile   string
	validateSchema string
	validateInput  string
	validateRecord string
)

func init() {
	validateCmd.Flags().StringVar(&validateFile, "file", "", "Path to an exported history JSON file")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema file (requires --in)")
	validateCmd.Flags().StringVar(&validateInput, "in", "", "Path to the JSON file to validate against --schema")
	validateCmd.Flags().StringVar(&validateRecord, "record", "", "One record as inline JSON ('-' for stdin)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if (validateSchema == "") != (validateInput == "") {
		return fmt.Errorf("--schema and --in must be used together")
	}

	var err error
	switch {
	case validateSchema != "":
		err = schemas.ValidateJSON(validateSchema, validateInput)
	case validateRecord != "":
		doc := validateRecord
		if doc == "-" {
			content, readErr := io.ReadAll(cmd.InOrStdin())
			if readErr != nil {
				return fmt.Errorf("failed to read stdin: %w", readErr)
			}
			doc = string(content)
		}
		err = schemas.ValidateJSONString(string(schemas.CanonicalRecordSchema()), doc)
	case validateFile != "":
		data, readErr := os.ReadFile(validateFile)
		if readErr != nil {
			return fmt.Errorf("failed to read history file: %w", readErr)
		}
		err = schemas.ValidateHistory(data)
	default:
		err = validateStoredHistory(cmd.Context())
	}

	return reportValidation(cmd, err)
}

// validateStoredHistory reads the raw history blob from the configured slot
func validateStoredHistory(ctx context.Context) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := a.slot.Get(ctx, storage.HistoryKey)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	return schemas.ValidateHistory(data)
}

func reportValidation(cmd *cobra.Command, err error) error {
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("validation failed with %d error(s)", len(verr.Errors))
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Valid")
	return nil
}
